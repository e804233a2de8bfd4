package model

import (
	"time"

	"github.com/google/uuid"
)

// View modes for the main screen.
const (
	ViewKanban   = "kanban"
	ViewCalendar = "calendar"
)

// FilterConfig is the per-user view filter state. It is an explicit value
// object persisted at the boundary, not ambient client-side state.
type FilterConfig struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Statuses     []string  `gorm:"serializer:json;type:jsonb"`
	Priorities   []string  `gorm:"serializer:json;type:jsonb"`
	Tags         []string  `gorm:"serializer:json;type:jsonb"`
	ViewMode     string    `gorm:"not null;default:kanban"`
	ShowArchived bool      `gorm:"default:false"`
	UpdatedAt    time.Time
}
