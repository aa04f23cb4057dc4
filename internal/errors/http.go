package errors

import (
	"encoding/json"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// DefaultMessage is shown when a failing response body carries no
// usable message.
const DefaultMessage = "request failed"

// messageExpr selects the server-provided message from an error body.
// FastAPI-style backends use "detail"; others use "message".
const messageExpr = "detail || message"

// MessageFromBody extracts a human-readable message from a JSON error
// body, preferring a structured detail/message field. Returns
// DefaultMessage when the body is empty, not JSON, or the selected
// value is not a string (e.g. a 422 validation detail list).
func MessageFromBody(body []byte) string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return DefaultMessage
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return DefaultMessage
	}

	result, err := jmespath.Search(messageExpr, data)
	if err != nil {
		return DefaultMessage
	}

	msg, ok := result.(string)
	if !ok || strings.TrimSpace(msg) == "" {
		return DefaultMessage
	}
	return msg
}

// FromResponse classifies a non-2xx HTTP response into an AppError.
// The body is the already-read response body; it is never mutated.
func FromResponse(status int, body []byte) *AppError {
	switch {
	case status == http.StatusUnauthorized:
		return AuthExpired(fallbackMessage(body, "session expired, please log in again"))
	case status == http.StatusForbidden:
		return Forbidden(fallbackMessage(body, "permission denied"))
	case status == http.StatusNotFound:
		return NotFound(fallbackMessage(body, "not found"))
	case status >= 400:
		return Validation(MessageFromBody(body), status)
	default:
		return &AppError{
			Code:       ErrCodeUnknown,
			Message:    DefaultMessage,
			StatusCode: status,
		}
	}
}

// fallbackMessage prefers the server message but substitutes def when
// the body yields nothing better than DefaultMessage.
func fallbackMessage(body []byte, def string) string {
	if msg := MessageFromBody(body); msg != DefaultMessage {
		return msg
	}
	return def
}
