package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/surah-reader-bot/internal/config"
)

// New builds the application logger: JSON output in production, console otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
