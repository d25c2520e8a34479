package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"hotelier/config"
	"hotelier/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(env, level string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = env
	cfg.Server.LogLevel = level
	cfg.App.Name = "hotelier"

	return cfg
}

func TestNew(t *testing.T) {
	t.Run("production writes json with the service name", func(t *testing.T) {
		var buf bytes.Buffer

		l := logger.New(&buf, testConfig("production", "info"))
		l.Info().Int64("booking_id", 42).Msg("checked out")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hotelier", entry["service"])
		assert.Equal(t, "checked out", entry["message"])
		assert.EqualValues(t, 42, entry["booking_id"])
	})

	t.Run("development writes console output", func(t *testing.T) {
		var buf bytes.Buffer

		l := logger.New(&buf, testConfig("development", "info"))
		l.Info().Msg("room assigned")

		assert.Contains(t, buf.String(), "room assigned")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}

func TestSetLogLevel(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "unknown defaults to info", level: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger.SetLogLevel(testConfig("test", tt.level))

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("settlement insert failed"))

	assert.Contains(t, buf.String(), "settlement insert failed")
	assert.Contains(t, buf.String(), "logger_test")
}
