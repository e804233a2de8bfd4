package model

import (
	"time"

	"github.com/google/uuid"
)

// Board lives in the owner's namespace; collaborators only ever see it
// through a SharedBoardRef projection.
type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Color     string
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	Owner User `gorm:"foreignKey:OwnerID"`
}
