// Package logger provides the structured, levelled logger used across the
// Invizo backend, built on log/slog.
//
// The request-logging middleware stores a per-request logger (pre-tagged with
// the request_id from pkg/reqid) in the context; WithCtx retrieves it so every
// log line emitted from a handler or service is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("payment verified", "order_id", orderID)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/quodex/invizo/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key under which a per-request *slog.Logger lives.
type ctxKey struct{}

// WithCtx returns the per-request logger stored in ctx, or the base logger
// when none has been injected.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a pre-tagged *slog.Logger into ctx. Called by the request
// logging middleware; application code rarely needs it.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
