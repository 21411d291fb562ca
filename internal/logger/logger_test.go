package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-registration/internal/config"
)

func TestNewLogger_AttachesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "test"

	logger := NewLogger(&buf, zerolog.InfoLevel, cfg)
	logger.Debug().Msg("hidden")
	logger.Info().Str("username", "validUser1").Msg("registered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, config.ServiceName, entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "validUser1", entry["username"])
	assert.Equal(t, "registered", entry["message"])
}

func TestLoggerService_DisabledWithoutLicense(t *testing.T) {
	service := NewLoggerService(config.DefaultObservabilityConfig())

	assert.Nil(t, service.GetApplication())
	assert.NotPanics(t, service.Shutdown)

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
}

func TestLoggerService_ShutdownTwice(t *testing.T) {
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("registration-test"),
		newrelic.ConfigLicense(strings.Repeat("0", 40)),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	service := &LoggerService{nrApp: app}
	assert.Same(t, app, service.GetApplication())
	assert.NotPanics(t, func() {
		service.Shutdown()
		service.Shutdown()
	})
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, int(tracelog.LogLevelDebug), GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, int(tracelog.LogLevelInfo), GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, int(tracelog.LogLevelError), GetPgxTraceLogLevel(zerolog.FatalLevel))
	assert.Equal(t, int(tracelog.LogLevelNone), GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	l := WithTraceContext(logger, nil)
	l.Info().Msg("no trace")

	assert.NotContains(t, buf.String(), "trace.id")
}
