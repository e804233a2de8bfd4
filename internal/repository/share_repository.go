package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

func (r *ShareRepository) Create(ctx context.Context, ref *model.SharedBoardRef) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

// GetForUser returns the invitee's shared-board projections, most recently
// shared first.
func (r *ShareRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.SharedBoardRef, error) {
	var refs []model.SharedBoardRef
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("shared_at desc").
		Find(&refs).Error
	return refs, err
}

// GetByUserAndBoard returns the ref for one (invitee, board) pair, or nil.
func (r *ShareRepository) GetByUserAndBoard(ctx context.Context, userID, boardID uuid.UUID) (*model.SharedBoardRef, error) {
	var ref model.SharedBoardRef
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// GetByBoard returns every collaborator ref of a board. The owner is not
// among them; callers synthesize the implicit owner row.
func (r *ShareRepository) GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.SharedBoardRef, error) {
	var refs []model.SharedBoardRef
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("shared_at asc").
		Find(&refs).Error
	return refs, err
}

func (r *ShareRepository) UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).
		Model(&model.SharedBoardRef{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Update("role", role).Error
}

// UpdateStatus moves a ref through the share lifecycle
// (pending -> active | rejected). Rejected rows persist.
func (r *ShareRepository) UpdateStatus(ctx context.Context, boardID, userID uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.SharedBoardRef{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Update("status", status).Error
}

func (r *ShareRepository) Delete(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&model.SharedBoardRef{}).Error
}
