package domain

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityError Severity = "error"
)

// Notification is a user-facing message queued for the UI to display.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
