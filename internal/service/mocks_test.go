package service_test

import (
	"context"
	"io"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type MockBoardStore struct {
	mock.Mock
}

func (m *MockBoardStore) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardStore) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, ownerID)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardStore) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockBoardStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockShareStore struct {
	mock.Mock
}

func (m *MockShareStore) Create(ctx context.Context, ref *model.SharedBoardRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockShareStore) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.SharedBoardRef, error) {
	args := m.Called(ctx, userID)
	refs, _ := args.Get(0).([]model.SharedBoardRef)
	return refs, args.Error(1)
}

func (m *MockShareStore) GetByUserAndBoard(ctx context.Context, userID, boardID uuid.UUID) (*model.SharedBoardRef, error) {
	args := m.Called(ctx, userID, boardID)
	ref, _ := args.Get(0).(*model.SharedBoardRef)
	return ref, args.Error(1)
}

func (m *MockShareStore) GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.SharedBoardRef, error) {
	args := m.Called(ctx, boardID)
	refs, _ := args.Get(0).([]model.SharedBoardRef)
	return refs, args.Error(1)
}

func (m *MockShareStore) UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, boardID, userID, role)
	return args.Error(0)
}

func (m *MockShareStore) UpdateStatus(ctx context.Context, boardID, userID uuid.UUID, status string) error {
	args := m.Called(ctx, boardID, userID, status)
	return args.Error(0)
}

func (m *MockShareStore) Delete(ctx context.Context, boardID, userID uuid.UUID) error {
	args := m.Called(ctx, boardID, userID)
	return args.Error(0)
}

type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*model.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationStore) ListRecent(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	ns, _ := args.Get(0).([]model.Notification)
	return ns, args.Error(1)
}

func (m *MockNotificationStore) MarkRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationStore) ResolveInvite(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockNotificationStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskStore) ListByBoard(ctx context.Context, namespaceID, boardID uuid.UUID, includeArchived bool) ([]model.Task, error) {
	args := m.Called(ctx, namespaceID, boardID, includeArchived)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskStore) Update(ctx context.Context, namespaceID, id uuid.UUID, patch map[string]interface{}) error {
	args := m.Called(ctx, namespaceID, id, patch)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, namespaceID, id uuid.UUID) error {
	args := m.Called(ctx, namespaceID, id)
	return args.Error(0)
}

func (m *MockTaskStore) SetArchived(ctx context.Context, namespaceID, id uuid.UUID, archived bool) error {
	args := m.Called(ctx, namespaceID, id, archived)
	return args.Error(0)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserDirectory) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

// fakePublisher records published topics without Redis.
type fakePublisher struct {
	topics []string
}

func (p *fakePublisher) Publish(ctx context.Context, topic string) {
	p.topics = append(p.topics, topic)
}

// fakeNotifier records emitted side-channel notifications.
type fakeNotifier struct {
	sent []sentNotification
}

type sentNotification struct {
	Recipient uuid.UUID
	Kind      string
	Title     string
	Message   string
	Board     *model.Board
	From      *model.User
}

func (n *fakeNotifier) Notify(ctx context.Context, recipientID uuid.UUID, kind, title, message string, board *model.Board, from *model.User) {
	n.sent = append(n.sent, sentNotification{
		Recipient: recipientID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		Board:     board,
		From:      from,
	})
}
