package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// GetOwned returns the user's own boards, oldest first. The feed and the
// auto-selection rule both depend on this ordering.
func (r *BoardRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil, nil to indicate that the board was not found
		}
		return nil, err
	}
	return &board, nil
}

// Update patches name/color only; ownership never changes.
func (r *BoardRepository) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Board{}).Where("id = ?", id).Updates(patch).Error
}

// Delete removes the board row only. Collaborator refs and tasks are left
// behind; the cascade gap is a known property of the sharing model.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Board{}).Error
}
