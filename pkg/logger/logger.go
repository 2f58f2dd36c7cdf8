// Package logger is the structured logging facade over zerolog used by every
// component. Entries are JSON by default and carry typed fields.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger writes leveled, structured entries.
type Logger struct {
	zl zerolog.Logger
}

type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json or console
	Output     string // stdout, stderr, or file path
	TimeFormat string // defaults to RFC3339Nano
	Service    string // attached to every entry when set
}

// New builds a logger writing to cfg.Output.
func New(cfg *Config) (*Logger, error) {
	var out io.Writer
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
	}
	return NewWithWriter(cfg, out)
}

// NewWithWriter builds a logger over an arbitrary writer.
func NewWithWriter(cfg *Config, out io.Writer) (*Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		lvl, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = lvl
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339Nano
	}
	zerolog.TimeFieldFormat = timeFormat

	switch cfg.Format {
	case "", "json":
	case "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	zctx := zerolog.New(out).Level(level).With().Timestamp().CallerWithSkipFrameCount(4)
	if cfg.Service != "" {
		zctx = zctx.Str("service", cfg.Service)
	}
	return &Logger{zl: zctx.Logger()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Debug(msg string, fields ...Field) { emit(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { emit(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { emit(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { emit(l.zl.Error(), msg, fields) }

func emit(ev *zerolog.Event, msg string, fields []Field) {
	// disabled levels return a nil event
	if ev == nil {
		return
	}
	for _, f := range fields {
		f.event(ev)
	}
	ev.Msg(msg)
}

// With returns a child logger that always carries the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	zctx := l.zl.With()
	for _, f := range fields {
		zctx = f.context(zctx)
	}
	return &Logger{zl: zctx.Logger()}
}

// Field is one typed key/value pair of an entry.
type Field struct {
	event   func(*zerolog.Event)
	context func(zerolog.Context) zerolog.Context
}

func String(key, v string) Field {
	return Field{
		event:   func(e *zerolog.Event) { e.Str(key, v) },
		context: func(c zerolog.Context) zerolog.Context { return c.Str(key, v) },
	}
}

func Int(key string, v int) Field {
	return Field{
		event:   func(e *zerolog.Event) { e.Int(key, v) },
		context: func(c zerolog.Context) zerolog.Context { return c.Int(key, v) },
	}
}

func Int64(key string, v int64) Field {
	return Field{
		event:   func(e *zerolog.Event) { e.Int64(key, v) },
		context: func(c zerolog.Context) zerolog.Context { return c.Int64(key, v) },
	}
}

func Float64(key string, v float64) Field {
	return Field{
		event:   func(e *zerolog.Event) { e.Float64(key, v) },
		context: func(c zerolog.Context) zerolog.Context { return c.Float64(key, v) },
	}
}

func Bool(key string, v bool) Field {
	return Field{
		event:   func(e *zerolog.Event) { e.Bool(key, v) },
		context: func(c zerolog.Context) zerolog.Context { return c.Bool(key, v) },
	}
}

// Duration logs d in whole milliseconds.
func Duration(key string, d time.Duration) Field {
	return Int64(key, d.Milliseconds())
}

// Time logs t in UTC, RFC3339.
func Time(key string, t time.Time) Field {
	return String(key, t.UTC().Format(time.RFC3339))
}

// Error logs err under "error"; a nil error adds nothing.
func Error(err error) Field {
	return Field{
		event: func(e *zerolog.Event) {
			if err != nil {
				e.Err(err)
			}
		},
		context: func(c zerolog.Context) zerolog.Context {
			if err == nil {
				return c
			}
			return c.Err(err)
		},
	}
}

func Any(key string, v interface{}) Field {
	return Field{
		event:   func(e *zerolog.Event) { e.Interface(key, v) },
		context: func(c zerolog.Context) zerolog.Context { return c.Interface(key, v) },
	}
}
