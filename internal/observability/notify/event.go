package notify

import (
	"time"

	apperrors "github.com/shopfront/shopfront-go/internal/errors"
)

// Severity levels recognised by downstream sinks.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Notification is the canonical user-facing message emitted when a
// request fails. Rendering layers consume these; the core never
// renders anything itself.
type Notification struct {
	ID         string
	Severity   string
	Message    string
	Code       apperrors.ErrorCode
	StatusCode int
	OccurredAt time.Time
}

// Sink describes a destination capable of displaying notifications.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(n Notification)

// Notify implements the Sink interface.
func (f SinkFunc) Notify(n Notification) {
	if f != nil {
		f(n)
	}
}

// Multi fans a notification out to every sink in order.
type Multi []Sink

// Notify implements the Sink interface.
func (m Multi) Notify(n Notification) {
	for _, s := range m {
		if s != nil {
			s.Notify(n)
		}
	}
}
