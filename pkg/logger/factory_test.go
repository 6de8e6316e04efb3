package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiredesk/hiredesk/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Run("json format emits valid json", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithFormat(logger.FormatJSON),
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("app", "test")),
		)

		log.Info("hello", "k", "v")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "v", record["k"])
		assert.Equal(t, "test", record["app"])
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithLevel(slog.LevelWarn),
			logger.WithOutput(&buf),
		)

		log.Info("dropped")
		assert.Zero(t, buf.Len())

		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.New(logger.WithFormat("xml"))
		})
	})
}

func TestNewFromConfig(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewFromConfig(
		logger.Config{Level: "DEBUG", Format: logger.FormatText},
		logger.WithOutput(&buf),
	)

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Discard().Error("dropped", logger.Error(assert.AnError))
	})
}

func TestErrorAttr(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(assert.AnError).Key)
}
