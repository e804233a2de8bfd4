package service_test

import (
	"context"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type taskFixture struct {
	svc      *service.TaskService
	tasks    *MockTaskStore
	boards   *MockBoardStore
	users    *MockUserDirectory
	notifier *fakeNotifier
	pub      *fakePublisher
}

func newTaskFixture() (*service.TaskService, *MockTaskStore, *MockBoardStore, *fakePublisher) {
	f := newTaskFixtureFull()
	return f.svc, f.tasks, f.boards, f.pub
}

func newTaskFixtureFull() *taskFixture {
	f := &taskFixture{
		tasks:    new(MockTaskStore),
		boards:   new(MockBoardStore),
		users:    new(MockUserDirectory),
		notifier: &fakeNotifier{},
		pub:      &fakePublisher{},
	}
	f.svc = service.NewTaskService(f.tasks, f.boards, f.users, f.notifier, f.pub, testLogger())
	return f
}

func TestCreate_RoutesToBoardOwnerNamespace(t *testing.T) {
	// Collaborator B creates a task on A's board: the row must land in
	// A's namespace, not B's.
	svc, tasks, boards, _ := newTaskFixture()

	ownerA := uuid.New()
	collaboratorB := uuid.New()
	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID, OwnerID: ownerA}, nil)
	tasks.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	task, err := svc.Create(context.Background(), collaboratorB, boardID, service.TaskInput{Title: "Fix login"})

	assert.NoError(t, err)
	assert.Equal(t, ownerA, task.NamespaceID)
	assert.Equal(t, collaboratorB, task.CreatedBy)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
}

func TestMutations_TargetOwnerNamespace(t *testing.T) {
	// Arrange: a task on A's board, acted on by any caller.
	svc, tasks, _, _ := newTaskFixture()

	ownerA := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()
	task := &model.Task{ID: taskID, NamespaceID: ownerA, BoardID: boardID, Title: "Fix login"}
	tasks.On("GetByID", mock.Anything, taskID).Return(task, nil)
	tasks.On("Update", mock.Anything, ownerA, taskID, mock.Anything).Return(nil)
	tasks.On("Delete", mock.Anything, ownerA, taskID).Return(nil)
	tasks.On("SetArchived", mock.Anything, ownerA, taskID, true).Return(nil)
	tasks.On("SetArchived", mock.Anything, ownerA, taskID, false).Return(nil)

	// Act: every mutation goes through namespace A.
	_, err := svc.Update(context.Background(), taskID, map[string]interface{}{"title": "Fix signup"})
	assert.NoError(t, err)

	err = svc.Archive(context.Background(), taskID)
	assert.NoError(t, err)

	err = svc.Restore(context.Background(), taskID)
	assert.NoError(t, err)

	err = svc.Delete(context.Background(), taskID)
	assert.NoError(t, err)

	tasks.AssertExpectations(t)
}

func TestMove_PatchesStatus(t *testing.T) {
	svc, tasks, _, pub := newTaskFixture()

	ns := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()
	task := &model.Task{ID: taskID, NamespaceID: ns, BoardID: boardID, Status: model.StatusTodo}
	tasks.On("GetByID", mock.Anything, taskID).Return(task, nil)
	tasks.On("Update", mock.Anything, ns, taskID, mock.MatchedBy(func(patch map[string]interface{}) bool {
		return patch["status"] == model.StatusDone
	})).Return(nil)

	_, err := svc.Move(context.Background(), taskID, model.StatusDone)

	assert.NoError(t, err)
	assert.Contains(t, pub.topics, "tasks:"+ns.String()+":"+boardID.String())
}

func TestAssign_NotifiesAssignee(t *testing.T) {
	// Assigning someone else's task sends them an assignment notification
	// on top of the stored update.
	f := newTaskFixtureFull()

	ownerA := uuid.New()
	actor := uuid.New()
	assignee := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()
	task := &model.Task{ID: taskID, NamespaceID: ownerA, BoardID: boardID, Title: "Fix login"}
	f.tasks.On("GetByID", mock.Anything, taskID).Return(task, nil)
	f.tasks.On("Update", mock.Anything, ownerA, taskID, mock.MatchedBy(func(patch map[string]interface{}) bool {
		return patch["assigned_to"] == assignee
	})).Return(nil)
	f.boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID, OwnerID: ownerA, Name: "Dev"}, nil)
	f.users.On("GetByID", mock.Anything, actor).Return(&model.User{ID: actor, Name: "Alice"}, nil)

	_, err := f.svc.Assign(context.Background(), actor, taskID, assignee)

	assert.NoError(t, err)
	if assert.Len(t, f.notifier.sent, 1) {
		sent := f.notifier.sent[0]
		assert.Equal(t, assignee, sent.Recipient)
		assert.Equal(t, model.NotificationAssignment, sent.Kind)
		assert.Equal(t, `Alice assigned you "Fix login"`, sent.Message)
		assert.Equal(t, boardID, sent.Board.ID)
		assert.Equal(t, actor, sent.From.ID)
	}
	assert.Contains(t, f.pub.topics, "tasks:"+ownerA.String()+":"+boardID.String())
}

func TestAssign_SelfAssignmentSkipsNotification(t *testing.T) {
	f := newTaskFixtureFull()

	ownerA := uuid.New()
	actor := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()
	task := &model.Task{ID: taskID, NamespaceID: ownerA, BoardID: boardID, Title: "Fix login"}
	f.tasks.On("GetByID", mock.Anything, taskID).Return(task, nil)
	f.tasks.On("Update", mock.Anything, ownerA, taskID, mock.Anything).Return(nil)

	_, err := f.svc.Assign(context.Background(), actor, taskID, actor)

	assert.NoError(t, err)
	assert.Empty(t, f.notifier.sent)
}

func TestList_QueriesOwnerNamespace(t *testing.T) {
	svc, tasks, boards, _ := newTaskFixture()

	ownerA := uuid.New()
	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID, OwnerID: ownerA}, nil)
	tasks.On("ListByBoard", mock.Anything, ownerA, boardID, false).Return([]model.Task{}, nil)

	_, err := svc.List(context.Background(), boardID, false)

	assert.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestCreate_BoardNotFound(t *testing.T) {
	svc, tasks, boards, _ := newTaskFixture()

	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	_, err := svc.Create(context.Background(), uuid.New(), boardID, service.TaskInput{Title: "x"})

	assert.ErrorIs(t, err, service.ErrBoardNotFound)
	tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
