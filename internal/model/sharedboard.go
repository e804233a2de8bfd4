package model

import (
	"time"

	"github.com/google/uuid"
)

// Share lifecycle. The row is written at share time and never deleted on
// reject; only an active share grants access.
const (
	SharePending  = "pending"
	ShareActive   = "active"
	ShareRejected = "rejected"
)

// SharedBoardRef is a denormalized projection of another user's board,
// stored in the invitee's namespace. Board name/color may drift from the
// source board until re-shared; the projection is one-way and eventually
// consistent.
type SharedBoardRef struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_shared_user_board,unique"`
	BoardID    uuid.UUID `gorm:"type:uuid;not null;index:idx_shared_user_board,unique"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null"`
	OwnerName  string
	OwnerEmail string
	BoardName  string
	BoardColor string
	Role       string    `gorm:"not null"`
	Status     string    `gorm:"not null;default:pending"`
	SharedAt   time.Time `gorm:"autoCreateTime"`
}
