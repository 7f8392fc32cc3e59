package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/fintrack-ledger/internal/config"
)

// NewLogger creates a slog.Logger writing JSON to stdout at the configured
// level. Source locations are attached only at debug level.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, opts))
	logger.Info("logger initialized", "level", level)

	return logger
}
