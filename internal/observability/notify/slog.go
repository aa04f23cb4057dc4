package notify

import "log/slog"

// SlogSink writes notifications to a structured logger. It is the
// default sink when no rendering layer is attached.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink builds a SlogSink. A nil logger falls back to
// slog.Default().
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

// Notify implements the Sink interface.
func (s *SlogSink) Notify(n Notification) {
	attrs := []any{
		"id", n.ID,
		"code", string(n.Code),
		"status", n.StatusCode,
	}
	switch n.Severity {
	case SeverityError:
		s.logger.Error(n.Message, attrs...)
	case SeverityWarning:
		s.logger.Warn(n.Message, attrs...)
	default:
		s.logger.Info(n.Message, attrs...)
	}
}
