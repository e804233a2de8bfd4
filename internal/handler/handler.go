package handler

import (
	"context"
	"errors"
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/permission"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Service interfaces consumed by the handlers; the concrete services
// satisfy them, tests substitute mocks.

type CollabAPI interface {
	CreateBoard(ctx context.Context, ownerID uuid.UUID, name, color string) (*model.Board, error)
	UpdateBoard(ctx context.Context, boardID uuid.UUID, name, color string) (*model.Board, error)
	DeleteBoard(ctx context.Context, boardID uuid.UUID) error
	OwnBoards(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	SharedBoards(ctx context.Context, userID uuid.UUID) ([]model.SharedBoardRef, error)
	ShareBoard(ctx context.Context, actorID, boardID uuid.UUID, inviteeEmail, role string) (service.ShareResult, error)
	Collaborators(ctx context.Context, boardID uuid.UUID) ([]service.Collaborator, error)
	RemoveCollaborator(ctx context.Context, boardID, collaboratorID uuid.UUID) error
	ChangeCollaboratorRole(ctx context.Context, boardID, collaboratorID uuid.UUID, role string) error
	RoleForBoard(ctx context.Context, userID, boardID uuid.UUID) (permission.Role, error)
	NextBoardSelection(ctx context.Context, userID uuid.UUID, current *service.BoardSelection) (*service.BoardSelection, error)
}

type NotificationAPI interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	Accept(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error)
	Reject(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type TaskAPI interface {
	Create(ctx context.Context, actorID, boardID uuid.UUID, in service.TaskInput) (*model.Task, error)
	List(ctx context.Context, boardID uuid.UUID, includeArchived bool) ([]model.Task, error)
	Get(ctx context.Context, taskID uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, taskID uuid.UUID, patch map[string]interface{}) (*model.Task, error)
	Move(ctx context.Context, taskID uuid.UUID, status string) (*model.Task, error)
	Assign(ctx context.Context, actorID, taskID, assigneeID uuid.UUID) (*model.Task, error)
	Delete(ctx context.Context, taskID uuid.UUID) error
	Archive(ctx context.Context, taskID uuid.UUID) error
	Restore(ctx context.Context, taskID uuid.UUID) error
}

type SettingsAPI interface {
	Load(ctx context.Context, userID uuid.UUID) (*model.FilterConfig, error)
	Save(ctx context.Context, cfg *model.FilterConfig) error
}

// currentUserID pulls the authenticated uuid out of the gin context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps service errors onto HTTP statuses. Validation
// failures surface their message for inline display.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBoardNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSelfShare),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrCannotRemoveOwner),
		errors.Is(err, service.ErrCannotChangeOwnerRole),
		errors.Is(err, service.ErrPendingInvite):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyShared),
		errors.Is(err, service.ErrInviteResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotRecipient):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
