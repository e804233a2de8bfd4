package service

import (
	"context"
	"errors"

	"taskboard/internal/feed"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NotificationService drives the invite lifecycle and the notification
// feed. Invite transitions are terminal: pending goes to accepted or
// rejected exactly once.
type NotificationService struct {
	notifications NotificationStore
	shares        ShareStore
	pub           Publisher
	log           *logrus.Logger
}

func NewNotificationService(notifications NotificationStore, shares ShareStore, pub Publisher, log *logrus.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, shares: shares, pub: pub, log: log}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return s.notifications.ListRecent(ctx, userID)
}

// load fetches a notification and checks it belongs to the caller.
func (s *NotificationService) load(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotificationNotFound
	}
	if n.UserID != userID {
		return nil, ErrNotRecipient
	}
	return n, nil
}

// Accept resolves a pending invite: the notification becomes
// accepted+read and the SharedBoardRef turns active, which is what makes
// role resolution start returning the granted role. Retrying an accept is
// a no-op; accepting a rejected invite fails.
func (s *NotificationService) Accept(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error) {
	n, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !n.IsInvite() {
		return nil, ErrNotInvite
	}
	switch n.Status {
	case model.InviteAccepted:
		return n, nil // idempotent retry
	case model.InviteRejected:
		return nil, ErrInviteResolved
	}

	if err := s.notifications.ResolveInvite(ctx, id, model.InviteAccepted); err != nil {
		// A concurrent resolve may have won the pending-guard race.
		if errors.Is(err, repository.ErrInviteAlreadyResolved) {
			return nil, ErrInviteResolved
		}
		return nil, err
	}
	n.Status = model.InviteAccepted
	n.Read = true

	if n.BoardID != nil {
		if err := s.shares.UpdateStatus(ctx, *n.BoardID, userID, model.ShareActive); err != nil {
			// Notification already resolved; the ref activation is the
			// second phase and the caller may retry it.
			s.log.WithError(err).WithField("board", *n.BoardID).Error("share activation failed after accept")
			return n, err
		}
		s.pub.Publish(ctx, feed.SharedBoardsTopic(userID))
	}
	s.pub.Publish(ctx, feed.NotificationsTopic(userID))
	return n, nil
}

// Reject resolves a pending invite without granting access. The
// SharedBoardRef row written at share time persists in rejected state; it
// never becomes visible to role resolution.
func (s *NotificationService) Reject(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error) {
	n, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !n.IsInvite() {
		return nil, ErrNotInvite
	}
	switch n.Status {
	case model.InviteRejected:
		return n, nil
	case model.InviteAccepted:
		return nil, ErrInviteResolved
	}

	if err := s.notifications.ResolveInvite(ctx, id, model.InviteRejected); err != nil {
		if errors.Is(err, repository.ErrInviteAlreadyResolved) {
			return nil, ErrInviteResolved
		}
		return nil, err
	}
	n.Status = model.InviteRejected
	n.Read = true

	if n.BoardID != nil {
		if err := s.shares.UpdateStatus(ctx, *n.BoardID, userID, model.ShareRejected); err != nil {
			s.log.WithError(err).WithField("board", *n.BoardID).Error("share rejection mark failed")
			return n, err
		}
		s.pub.Publish(ctx, feed.SharedBoardsTopic(userID))
	}
	s.pub.Publish(ctx, feed.NotificationsTopic(userID))
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.load(ctx, userID, id); err != nil {
		return err
	}
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return err
	}
	s.pub.Publish(ctx, feed.NotificationsTopic(userID))
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.pub.Publish(ctx, feed.NotificationsTopic(userID))
	return nil
}

// Delete removes a notification. Pending invites must be resolved via
// accept/reject first, or the underlying share request would be orphaned.
func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.load(ctx, userID, id)
	if err != nil {
		return err
	}
	if n.IsInvite() && n.Status == model.InvitePending {
		return ErrPendingInvite
	}
	if err := s.notifications.Delete(ctx, id); err != nil {
		return err
	}
	s.pub.Publish(ctx, feed.NotificationsTopic(userID))
	return nil
}

// Notify emits a mention/assignment/comment notification. These are
// fire-and-forget side effects off the critical path: failures are logged
// and swallowed.
func (s *NotificationService) Notify(ctx context.Context, recipientID uuid.UUID, kind, title, message string, board *model.Board, from *model.User) {
	n := &model.Notification{
		ID:      uuid.New(),
		UserID:  recipientID,
		Type:    kind,
		Title:   title,
		Message: message,
	}
	if board != nil {
		id := board.ID
		n.BoardID = &id
		n.BoardName = board.Name
		n.BoardColor = board.Color
	}
	if from != nil {
		id := from.ID
		n.FromUserID = &id
		n.FromUserName = from.Name
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"recipient": recipientID, "kind": kind,
		}).Warn("notification write failed")
		return
	}
	s.pub.Publish(ctx, feed.NotificationsTopic(recipientID))
}
