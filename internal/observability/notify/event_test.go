package notify

import (
	"testing"

	apperrors "github.com/shopfront/shopfront-go/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestSinkFunc(t *testing.T) {
	var got []Notification
	sink := SinkFunc(func(n Notification) { got = append(got, n) })

	sink.Notify(Notification{Message: "permission denied", Code: apperrors.ErrCodeForbidden})

	assert.Len(t, got, 1)
	assert.Equal(t, "permission denied", got[0].Message)

	// A nil SinkFunc is a safe no-op.
	var nilSink SinkFunc
	assert.NotPanics(t, func() { nilSink.Notify(Notification{}) })
}

func TestMulti(t *testing.T) {
	var a, b int
	m := Multi{
		SinkFunc(func(Notification) { a++ }),
		nil,
		SinkFunc(func(Notification) { b++ }),
	}

	m.Notify(Notification{Message: "network unreachable"})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
