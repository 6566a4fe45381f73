// Package logger holds the process-wide zerolog logger.
//
// main calls Init once after configuration is loaded; services receive a
// logger by injection, usually For(component).
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else means info.
	Level string
	// Pretty switches to zerolog's console writer for local runs.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service and Version are stamped on every entry when set.
	Service string
	Version string
	// Caller adds file:line to each entry.
	Caller bool
}

var (
	mu   sync.Mutex
	root *zerolog.Logger
)

// Init builds the process logger. Only the first call has an effect until
// Reset; later calls return the existing logger.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return *root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Version != "" {
		ctx = ctx.Str("version", opts.Version)
	}
	if opts.Caller {
		ctx = ctx.Caller()
	}
	l := ctx.Logger()
	root = &l
	return l
}

// Get returns the process logger. It panics before Init.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		panic("logger: Get() called before Init()")
	}
	return *root
}

// For returns the process logger with a "component" field.
func For(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

// Reset drops the process logger so the next Init rebuilds it. Tests only.
func Reset() {
	mu.Lock()
	root = nil
	mu.Unlock()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel || lvl > zerolog.ErrorLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
