// Package logger provides the process-wide zap logger.
//
// Until Init is called, Log and Sugar discard everything, so pipeline
// packages and their tests can log without setup.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Faultbox/midgard-render/internal/config"
)

// Log is the process-wide logger.
var Log = zap.NewNop()

// Sugar is the printf-style view of Log.
var Sugar = Log.Sugar()

// Rotation holds the log file path and its lumberjack rotation limits.
type Rotation struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation returns rotation limits for a log file at path.
func DefaultRotation(path string) Rotation {
	return Rotation{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Options configure New.
type Options struct {
	// Level is a zap level name; empty means info.
	Level string
	// JSON switches every sink to the JSON encoder.
	JSON    bool
	Console bool
	// File enables the rotating file sink when Path is set.
	File Rotation
}

// FromConfig maps the logging section onto Options with console output on.
func FromConfig(c config.LoggingConfig) Options {
	opts := Options{
		Level:   c.Level,
		JSON:    c.Format == "json",
		Console: true,
	}
	if c.LogFile != "" {
		opts.File = DefaultRotation(c.LogFile)
	}
	return opts
}

// New builds a logger without touching the process-wide one.
func New(opts Options) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var cores []zapcore.Core
	if opts.Console {
		cores = append(cores, zapcore.NewCore(encoder(opts.JSON, true), zapcore.Lock(os.Stdout), lvl))
	}
	if f := opts.File; f.Path != "" {
		w := &lumberjack.Logger{
			Filename:   f.Path,
			MaxSize:    f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAge:     f.MaxAgeDays,
			Compress:   f.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(encoder(opts.JSON, false), zapcore.AddSync(w), lvl))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func encoder(json, terminal bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	if json {
		return zapcore.NewJSONEncoder(cfg)
	}
	if terminal {
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// Init replaces the process-wide logger with one built from the logging
// section.
func Init(c config.LoggingConfig) error {
	l, err := New(FromConfig(c))
	if err != nil {
		return err
	}
	Replace(l)
	return nil
}

// Replace installs l as the process-wide logger and returns a function
// restoring the previous one.
func Replace(l *zap.Logger) func() {
	prev := Log
	Log, Sugar = l, l.Sugar()
	return func() { Log, Sugar = prev, prev.Sugar() }
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// With returns a child logger carrying fields, used for per-component
// loggers.
func With(fields ...zap.Field) *zap.Logger {
	return Log.With(fields...)
}

// Debug logs at debug level.
func Debug(msg string, fields ...zap.Field) { Log.Debug(msg, fields...) }

// Info logs at info level.
func Info(msg string, fields ...zap.Field) { Log.Info(msg, fields...) }

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) { Log.Warn(msg, fields...) }

// Error logs at error level.
func Error(msg string, fields ...zap.Field) { Log.Error(msg, fields...) }
