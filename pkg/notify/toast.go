package notify

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the toast type/severity.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// Position represents where a toast is rendered on screen.
type Position string

const (
	PositionTopCenter    Position = "top-center"
	PositionTopRight     Position = "top-right"
	PositionBottomCenter Position = "bottom-center"
)

// DefaultDuration is how long a toast stays visible before auto-dismissing.
const DefaultDuration = 5 * time.Second

// Toast is a transient user-facing notification. One toast is emitted per
// form submit attempt; toasts are never persisted.
type Toast struct {
	ID        string        `json:"id"`
	Type      Type          `json:"type"`
	Message   string        `json:"message"`
	Position  Position      `json:"position"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// New creates a toast with the package defaults: top-center position and
// auto-dismiss after DefaultDuration.
func New(typ Type, message string) Toast {
	return Toast{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   message,
		Position:  PositionTopCenter,
		Duration:  DefaultDuration,
		CreatedAt: time.Now(),
	}
}

// Success creates a success toast.
func Success(message string) Toast {
	return New(TypeSuccess, message)
}

// Error creates an error toast.
func Error(message string) Toast {
	return New(TypeError, message)
}

// Expired returns true once the toast's display window has passed.
func (t Toast) Expired(now time.Time) bool {
	return now.After(t.CreatedAt.Add(t.Duration))
}
