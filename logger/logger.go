// Package logger wraps log/slog with level parsing and rotating file output.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string `yaml:"level"`  // error, warn, info, debug
	Format     string `yaml:"format"` // text or json
	Output     string `yaml:"output"` // stdout, stderr, file, both
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	WithCaller bool   `yaml:"with_caller"`
}

var (
	mu         sync.RWMutex
	global     *slog.Logger
	fileWriter *lumberjack.Logger
)

// Init replaces the package logger. Calling it again closes the previous log file.
func Init(cfg Config) error {
	var output io.Writer
	var rotating *lumberjack.Logger

	if cfg.Output == "file" || cfg.Output == "both" {
		if cfg.File == "" {
			cfg.File = "logs/pricer.log"
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return err
		}
		rotating = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
	}

	switch cfg.Output {
	case "file":
		output = rotating
	case "both":
		output = io.MultiWriter(os.Stdout, rotating)
	case "stderr":
		output = os.Stderr
	default:
		output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.WithCaller,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	if fileWriter != nil {
		fileWriter.Close()
	}
	fileWriter = rotating
	global = slog.New(handler)
	return nil
}

// ParseLevel maps error/warn/info/debug to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug", "verbose":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the package logger, or slog's default before Init.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		return slog.Default()
	}
	return global
}

// Close flushes and closes the rotating log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if fileWriter == nil {
		return nil
	}
	err := fileWriter.Close()
	fileWriter = nil
	return err
}

// LogDuration logs msg with the elapsed time when the returned func runs.
func LogDuration(msg string, args ...any) func() {
	start := time.Now()
	return func() {
		args = append(args, slog.Duration("duration", time.Since(start)))
		L().Info(msg, args...)
	}
}
