package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format selects how log lines are rendered.
type Format string

const (
	// FormatText renders human-readable console lines.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
)

// Config controls the zerolog-backed logger.
type Config struct {
	Format Format
	Level  string
	// Output defaults to os.Stderr so stdout stays free for workflow commands.
	Output io.Writer
}

// DefaultConfig returns text output at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Format: FormatText,
		Level:  "info",
	}
}

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// New builds a ZerologLogger from cfg. component is attached to every line
// when non-empty.
func New(cfg Config, component string) (*ZerologLogger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	switch Format(strings.ToLower(string(cfg.Format))) {
	case FormatText, "":
		out = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}
	case FormatJSON:
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = lvl
	}

	zctx := zerolog.New(out).Level(level).With().Timestamp()
	if component != "" {
		zctx = zctx.Str("component", component)
	}
	return &ZerologLogger{zl: zctx.Logger()}, nil
}

// NewStderrLogger returns a text logger at info level and never fails.
func NewStderrLogger(component string) *ZerologLogger {
	l, err := New(DefaultConfig(), component)
	if err != nil {
		panic(err)
	}
	return l
}

func fieldMap(fields []Field) map[string]any {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func (l *ZerologLogger) Debug(msg string, fields ...Field) {
	l.zl.Debug().Fields(fieldMap(fields)).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, fields ...Field) {
	l.zl.Info().Fields(fieldMap(fields)).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, fields ...Field) {
	l.zl.Warn().Fields(fieldMap(fields)).Msg(msg)
}

func (l *ZerologLogger) Error(msg string, fields ...Field) {
	l.zl.Error().Fields(fieldMap(fields)).Msg(msg)
}

func (l *ZerologLogger) With(fields ...Field) Logger {
	return &ZerologLogger{zl: l.zl.With().Fields(fieldMap(fields)).Logger()}
}
