package handler_test

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/permission"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taskboard/internal/middleware"
)

type MockCollabAPI struct {
	mock.Mock
}

func (m *MockCollabAPI) CreateBoard(ctx context.Context, ownerID uuid.UUID, name, color string) (*model.Board, error) {
	args := m.Called(ctx, ownerID, name, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockCollabAPI) UpdateBoard(ctx context.Context, boardID uuid.UUID, name, color string) (*model.Board, error) {
	args := m.Called(ctx, boardID, name, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockCollabAPI) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	args := m.Called(ctx, boardID)
	return args.Error(0)
}

func (m *MockCollabAPI) OwnBoards(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Board), args.Error(1)
}

func (m *MockCollabAPI) SharedBoards(ctx context.Context, userID uuid.UUID) ([]model.SharedBoardRef, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedBoardRef), args.Error(1)
}

func (m *MockCollabAPI) ShareBoard(ctx context.Context, actorID, boardID uuid.UUID, inviteeEmail, role string) (service.ShareResult, error) {
	args := m.Called(ctx, actorID, boardID, inviteeEmail, role)
	return args.Get(0).(service.ShareResult), args.Error(1)
}

func (m *MockCollabAPI) Collaborators(ctx context.Context, boardID uuid.UUID) ([]service.Collaborator, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.Collaborator), args.Error(1)
}

func (m *MockCollabAPI) RemoveCollaborator(ctx context.Context, boardID, collaboratorID uuid.UUID) error {
	args := m.Called(ctx, boardID, collaboratorID)
	return args.Error(0)
}

func (m *MockCollabAPI) ChangeCollaboratorRole(ctx context.Context, boardID, collaboratorID uuid.UUID, role string) error {
	args := m.Called(ctx, boardID, collaboratorID, role)
	return args.Error(0)
}

func (m *MockCollabAPI) RoleForBoard(ctx context.Context, userID, boardID uuid.UUID) (permission.Role, error) {
	args := m.Called(ctx, userID, boardID)
	return args.Get(0).(permission.Role), args.Error(1)
}

func (m *MockCollabAPI) NextBoardSelection(ctx context.Context, userID uuid.UUID, current *service.BoardSelection) (*service.BoardSelection, error) {
	args := m.Called(ctx, userID, current)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BoardSelection), args.Error(1)
}

type MockTaskAPI struct {
	mock.Mock
}

func (m *MockTaskAPI) Create(ctx context.Context, actorID, boardID uuid.UUID, in service.TaskInput) (*model.Task, error) {
	args := m.Called(ctx, actorID, boardID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskAPI) List(ctx context.Context, boardID uuid.UUID, includeArchived bool) ([]model.Task, error) {
	args := m.Called(ctx, boardID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskAPI) Get(ctx context.Context, taskID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskAPI) Update(ctx context.Context, taskID uuid.UUID, patch map[string]interface{}) (*model.Task, error) {
	args := m.Called(ctx, taskID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskAPI) Move(ctx context.Context, taskID uuid.UUID, status string) (*model.Task, error) {
	args := m.Called(ctx, taskID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskAPI) Assign(ctx context.Context, actorID, taskID, assigneeID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, actorID, taskID, assigneeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskAPI) Delete(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskAPI) Archive(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskAPI) Restore(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// authAs injects the authenticated user the way the JWT middleware does.
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}
