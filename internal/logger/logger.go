package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const cycleIDKey ctxKey = "cycleID"

// InitLogger installs the default slog logger writing to stdout
func InitLogger(cfg Config) *slog.Logger {
	return InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter installs the default slog logger writing to w.
// The handler format and level come from cfg; base attributes are attached to every record.
func InitLoggerWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	attrs := cfg.BaseAttributes()
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}

	l := slog.New(handler).With(args...)
	slog.SetDefault(l)
	return l
}

// GenerateCycleID creates a new UUID for tracing a farm cycle.
func GenerateCycleID() string {
	return uuid.NewString()
}

// WithCycleID returns a new context containing the cycle ID.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, cycleIDKey, cycleID)
}

// NewCycleContext attaches a freshly generated cycle ID
func NewCycleContext(ctx context.Context) context.Context {
	return WithCycleID(ctx, GenerateCycleID())
}

// CycleIDFromContext extracts the cycle ID from the context, if present.
func CycleIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(cycleIDKey).(string)
	return id, ok
}

// GetCycleID returns the cycle ID or an empty string
func GetCycleID(ctx context.Context) string {
	id, _ := CycleIDFromContext(ctx)
	return id
}

// FromContext returns a logger that includes the cycle_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := CycleIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeyCycleID, id)
	}
	return slog.Default()
}

// Debug logs at debug level on the default logger
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level on the default logger
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level on the default logger
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level on the default logger
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
