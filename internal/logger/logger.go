// Package logger wraps zerolog.Logger with the constructors and context
// helpers used across the service.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger writing to stdout. The role field tells
// apart the binaries (api, migrate). Env "local" enables debug output.
func NewLogger(role, env string) *Logger {
	return newLogger(os.Stdout, role, env)
}

func newLogger(w io.Writer, role, env string) *Logger {
	level := zerolog.InfoLevel
	if env == "local" || env == "dev" {
		level = zerolog.DebugLevel
	}

	l := zerolog.New(w).Level(level).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithContext stores the logger in ctx so FromContext can find it later.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx. When none was attached
// zerolog falls back to its disabled logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// FromRequest is FromContext for the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}
