package repository

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notificationFeedLimit caps the feed at the most recent entries.
const notificationFeedLimit = 50

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListRecent returns the user's feed, newest first, capped at 50.
func (r *NotificationRepository) ListRecent(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var ns []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(notificationFeedLimit).
		Find(&ns).Error
	return ns, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"read": true, "read_at": &now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flips every unread notification of the user in one
// statement, so the batch is atomic.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now}).Error
}

// ResolveInvite transitions a pending invite to a terminal status and
// marks it read. The pending guard in the WHERE clause makes terminal
// states sticky: a second resolve matches no row.
func (r *NotificationRepository) ResolveInvite(ctx context.Context, id uuid.UUID, status string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND type = ? AND status = ?", id, model.NotificationInvite, model.InvitePending).
		Updates(map[string]interface{}{"status": status, "read": true, "read_at": &now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInviteAlreadyResolved
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Notification{}).Error
}
