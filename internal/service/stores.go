package service

import (
	"context"

	"taskboard/internal/model"

	"github.com/google/uuid"
)

// Store interfaces consumed by the services. The gorm repositories satisfy
// them; tests substitute mocks.

type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ShareStore interface {
	Create(ctx context.Context, ref *model.SharedBoardRef) error
	GetForUser(ctx context.Context, userID uuid.UUID) ([]model.SharedBoardRef, error)
	GetByUserAndBoard(ctx context.Context, userID, boardID uuid.UUID) (*model.SharedBoardRef, error)
	GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.SharedBoardRef, error)
	UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) error
	UpdateStatus(ctx context.Context, boardID, userID uuid.UUID, status string) error
	Delete(ctx context.Context, boardID, userID uuid.UUID) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	ListRecent(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	ResolveInvite(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListByBoard(ctx context.Context, namespaceID, boardID uuid.UUID, includeArchived bool) ([]model.Task, error)
	Update(ctx context.Context, namespaceID, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, namespaceID, id uuid.UUID) error
	SetArchived(ctx context.Context, namespaceID, id uuid.UUID, archived bool) error
}

type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Publisher signals feed invalidations after successful writes.
type Publisher interface {
	Publish(ctx context.Context, topic string)
}

// Notifier emits mention/assignment/comment notifications as side effects
// of writes. NotificationService satisfies it.
type Notifier interface {
	Notify(ctx context.Context, recipientID uuid.UUID, kind, title, message string, board *model.Board, from *model.User)
}
