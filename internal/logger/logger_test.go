package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/surah-reader-bot/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("Should enable debug outside production", func(t *testing.T) {
		log, err := New(&config.Config{Env: "local"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Should use info level in production", func(t *testing.T) {
		log, err := New(&config.Config{Env: "production"})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	})
}
