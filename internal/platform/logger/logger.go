package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/zen-api/internal/config"
)

// ParseLevel converts a configured level name (case-insensitive) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// New creates a JSON logger writing to out at the given level.
// An unknown level falls back to info and the warning is written through
// the returned logger.
func New(out io.Writer, levelName string) *slog.Logger {
	level, err := ParseLevel(levelName)

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	l := slog.New(handler).With(slog.String("service", "zen-api"))

	if err != nil {
		l.Warn("invalid log level configured, using default level",
			slog.String("configured_level", levelName),
			slog.String("default_level", "info"))
	}
	return l
}

// Setup initializes the application's logging system from the server
// configuration. It creates a structured JSON logger on stdout with the
// configured level and sets it as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	l := New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(l)
	return l, nil
}
