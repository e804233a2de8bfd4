package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types
const (
	NotificationInvite     = "invite"
	NotificationMention    = "mention"
	NotificationAssignment = "assignment"
	NotificationComment    = "comment"
)

// Invite notification status. Pending transitions exactly once, to
// accepted or rejected; terminal states never revert.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteRejected = "rejected"
)

// Notification is stored in the recipient's namespace. Invite
// notifications carry the denormalized board fields the client needs to
// navigate before the shared-board feed catches up.
type Notification struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type         string     `gorm:"not null"`
	Title        string     `gorm:"not null"`
	Message      string
	BoardID      *uuid.UUID `gorm:"type:uuid"`
	BoardName    string
	BoardColor   string
	FromUserID   *uuid.UUID `gorm:"type:uuid"`
	FromUserName string
	Role         string
	Read         bool `gorm:"default:false"`
	Status       string
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ReadAt       *time.Time
}

// IsInvite reports whether the notification gates a share.
func (n *Notification) IsInvite() bool {
	return n.Type == NotificationInvite
}

// Resolved reports whether an invite reached a terminal state.
func (n *Notification) Resolved() bool {
	return n.Status == InviteAccepted || n.Status == InviteRejected
}
