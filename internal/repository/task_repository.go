package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByBoard returns the tasks of one board inside one namespace.
// Archived tasks are excluded unless asked for.
func (r *TaskRepository) ListByBoard(ctx context.Context, namespaceID, boardID uuid.UUID, includeArchived bool) ([]model.Task, error) {
	q := r.db.WithContext(ctx).
		Where("namespace_id = ? AND board_id = ?", namespaceID, boardID)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	var tasks []model.Task
	err := q.Order("created_at asc").Find(&tasks).Error
	return tasks, err
}

// Update patches fields of a task inside a namespace. The namespace guard
// keeps a collaborator's write from landing outside the board owner's rows.
func (r *TaskRepository) Update(ctx context.Context, namespaceID, id uuid.UUID, patch map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("namespace_id = ? AND id = ?", namespaceID, id).
		Updates(patch).Error
}

func (r *TaskRepository) Delete(ctx context.Context, namespaceID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("namespace_id = ? AND id = ?", namespaceID, id).
		Delete(&model.Task{}).Error
}

func (r *TaskRepository) SetArchived(ctx context.Context, namespaceID, id uuid.UUID, archived bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("namespace_id = ? AND id = ?", namespaceID, id).
		Update("archived", archived).Error
}
