package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckBasic(t *testing.T) {
	ok := NewHealthChecker(pingFunc(func(context.Context) error { return nil }))
	status := ok.CheckBasic(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Empty(t, status.Database.Error)

	down := NewHealthChecker(pingFunc(func(context.Context) error { return errors.New("connection refused") }))
	status = down.CheckBasic(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "connection refused", status.Database.Error)
}

func TestCheck_AppliesTimeout(t *testing.T) {
	h := NewHealthChecker(pingFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}))
	assert.NoError(t, h.Check(context.Background()))
}
