package model

import (
	"time"

	"github.com/google/uuid"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task statuses (board lanes)
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task rows always live in the board owner's namespace (NamespaceID),
// regardless of which collaborator created or edits them.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	NamespaceID uuid.UUID  `gorm:"type:uuid;not null;index"`
	BoardID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"not null"`
	Description string
	Priority    string     `gorm:"not null;default:medium"`
	Status      string     `gorm:"not null;default:todo"`
	DueDate     *time.Time
	Tags        []string   `gorm:"serializer:json;type:jsonb"`
	Subtasks    []Subtask  `gorm:"serializer:json;type:jsonb"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid"`
	Archived    bool       `gorm:"default:false"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time
}
