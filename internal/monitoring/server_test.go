package monitoring

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tea-backend/internal/logger"
)

func init() {
	logger.Set(zap.NewNop())
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestServer_StartStop(t *testing.T) {
	s := NewServer("127.0.0.1:0", okPinger{})
	require.NoError(t, s.Start())

	resp, err := http.Get("http://" + s.Addr() + "/health/ready")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "healthy")

	require.NoError(t, s.Stop(context.Background()))
	_, err = http.Get("http://" + s.Addr() + "/health")
	assert.Error(t, err)
}
