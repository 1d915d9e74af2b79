package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	base       zerolog.Logger
	configured atomic.Bool
)

// Options controls the global logger.
//
// Fields:
//   - Level: debug|info|warn|error (anything else means info).
//   - Pretty: human readable console output instead of JSON.
//   - Output: destination writer (default: os.Stdout).
type Options struct {
	Level  string
	Pretty bool
	Output io.Writer
}

// Configure (re)builds the global logger from opts. It is normally called once
// from main with values loaded by the config package.
func Configure(opts Options) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	w := opts.Output
	if w == nil {
		w = os.Stdout
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(opts.Level))
	configured.Store(true)
}

// Init configures the global JSON logger from the environment.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false)
func Init() {
	Configure(Options{
		Level:  getenv("LOG_LEVEL", "info"),
		Pretty: strings.EqualFold(getenv("LOG_PRETTY", "false"), "true"),
	})
}

// L returns the global logger, initializing it from the environment when
// Configure was never called.
func L() *zerolog.Logger {
	if !configured.Load() {
		Init()
	}
	return &base
}

// With returns a child of the global logger tagged with a component field.
func With(component string) *zerolog.Logger {
	l := L().With().Str("component", component).Logger()
	return &l
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
