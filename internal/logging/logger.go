package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent.
const LogLevelEnvVar = "PRINTSCAN_LOG_LEVEL"

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configure the process logger.
type Options struct {
	// Level is debug, info, warn or error. Empty falls back to
	// PRINTSCAN_LOG_LEVEL, and logging stays silent if that is empty too.
	Level string

	// Format is FormatConsole (default) or FormatJSON
	Format string

	// Output defaults to stderr
	Output io.Writer
}

// Initialize replaces the process logger.
func Initialize(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" || strings.EqualFold(level, "off") {
		logger = zap.NewNop()
		return nil
	}

	enc, err := newEncoder(opts.Format, opts.Output == nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	out := zapcore.Lock(os.Stderr)
	if opts.Output != nil {
		out = zapcore.AddSync(opts.Output)
	}

	core := zapcore.NewCore(enc, out, zap.NewAtomicLevelAt(ParseLevel(level)))
	logger = zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	return nil
}

func newEncoder(format string, color bool) (zapcore.Encoder, error) {
	switch strings.ToLower(format) {
	case "", FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if color {
			cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return zapcore.NewConsoleEncoder(cfg), nil
	case FormatJSON:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger returns the process logger, a no-op until Initialize runs.
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Named returns a child of the process logger scoped to a component.
func Named(component string) *zap.Logger {
	return GetLogger().Named(component)
}

// Sync flushes buffered entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
