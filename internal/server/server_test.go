package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-registration/internal/config"
)

func testServer() *Server {
	logger := zerolog.Nop()
	return &Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:         "8080",
				ReadTimeout:  5,
				WriteTimeout: 10,
				IdleTimeout:  60,
			},
			Redis: config.RedisConfig{Address: "localhost:6379"},
		},
		Logger: &logger,
	}
}

func TestSetupHTTPServer(t *testing.T) {
	s := testServer()

	s.SetupHTTPServer(http.NotFoundHandler())

	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":8080", s.httpServer.Addr)
	assert.Equal(t, 5*time.Second, s.httpServer.ReadTimeout)
	assert.Equal(t, 10*time.Second, s.httpServer.WriteTimeout)
	assert.Equal(t, time.Minute, s.httpServer.IdleTimeout)
}

func TestStartRequiresSetup(t *testing.T) {
	assert.EqualError(t, testServer().Start(), "HTTP server not initialized")
}

func TestShutdownWithoutDependencies(t *testing.T) {
	s := testServer()
	s.Redis = NewRedisClient(s.Config, nil)

	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestNewRedisClient(t *testing.T) {
	client := NewRedisClient(testServer().Config, nil)
	defer client.Close()

	assert.Equal(t, "localhost:6379", client.Options().Addr)
}
