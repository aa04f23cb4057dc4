package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail field", `{"detail":"insufficient balance"}`, "insufficient balance"},
		{"message field", `{"message":"stock exhausted"}`, "stock exhausted"},
		{"detail preferred over message", `{"detail":"a","message":"b"}`, "a"},
		{"empty body", ``, DefaultMessage},
		{"whitespace body", "  \n", DefaultMessage},
		{"not json", `<html>502 Bad Gateway</html>`, DefaultMessage},
		{"detail is a validation list", `{"detail":[{"loc":["body","email"],"msg":"invalid"}]}`, DefaultMessage},
		{"detail empty string falls through", `{"detail":"","message":"fallback"}`, "fallback"},
		{"no known fields", `{"error":"nope"}`, DefaultMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageFromBody([]byte(tt.body)))
		})
	}
}

func TestFromResponse(t *testing.T) {
	t.Run("401", func(t *testing.T) {
		err := FromResponse(401, []byte(`{"detail":"token expired"}`))
		assert.Equal(t, ErrCodeAuthExpired, err.Code)
		assert.Equal(t, "token expired", err.Message)
	})

	t.Run("401 without body", func(t *testing.T) {
		err := FromResponse(401, nil)
		assert.Equal(t, ErrCodeAuthExpired, err.Code)
		assert.Equal(t, "session expired, please log in again", err.Message)
	})

	t.Run("403", func(t *testing.T) {
		err := FromResponse(403, nil)
		assert.Equal(t, ErrCodeForbidden, err.Code)
		assert.Equal(t, "permission denied", err.Message)
	})

	t.Run("404", func(t *testing.T) {
		err := FromResponse(404, []byte(`{"detail":"Product not found"}`))
		assert.Equal(t, ErrCodeNotFound, err.Code)
		assert.Equal(t, "Product not found", err.Message)
	})

	t.Run("422 uses server detail", func(t *testing.T) {
		err := FromResponse(422, []byte(`{"detail":"quantity must be positive"}`))
		assert.Equal(t, ErrCodeValidation, err.Code)
		assert.Equal(t, "quantity must be positive", err.Message)
		assert.Equal(t, 422, err.StatusCode)
	})

	t.Run("500 with opaque body", func(t *testing.T) {
		err := FromResponse(500, []byte("boom"))
		assert.Equal(t, ErrCodeValidation, err.Code)
		assert.Equal(t, DefaultMessage, err.Message)
	})
}
