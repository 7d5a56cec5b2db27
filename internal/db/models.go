package db

import (
	"time"

	"github.com/google/uuid"
)

// Interaction is one completed pipeline interaction.
// Rows are append-only: never updated or deleted by the application.
type Interaction struct {
	ID           uuid.UUID
	SessionID    string
	CreatedAt    time.Time
	UserText     string
	ResponseText string
	Mood         string
	Gender       *string // nullable, display-only attribute
}
