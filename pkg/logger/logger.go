package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New constructs a JSON slog logger. LOG_FILE additionally mirrors records
// into a size-rotated file.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter is New with records sent to w instead of stdout. The CLI uses
// it to keep stdout free for command output.
func NewWithWriter(w io.Writer) *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	handler := slog.NewJSONHandler(output(w, os.Getenv("LOG_FILE")), &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", "vat-directory")
}

func output(w io.Writer, path string) io.Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return w
	}
	return io.MultiWriter(w, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    15, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
