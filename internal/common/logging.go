package common

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// Logger wraps phuslu/log to provide a consistent interface
type Logger struct {
	log.Logger
}

// NewLogger creates a console logger with the specified level
func NewLogger(level string) *Logger {
	return &Logger{Logger: log.Logger{
		Level:      parseLevel(level),
		TimeFormat: time.RFC3339,
		Writer: &log.ConsoleWriter{
			Writer:      os.Stderr,
			ColorOutput: true,
		},
	}}
}

// NewLoggerWithOutput creates a JSON logger writing to a specific output
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	return &Logger{Logger: log.Logger{
		Level:      parseLevel(level),
		TimeFormat: time.RFC3339,
		Writer:     &log.IOWriter{Writer: w},
	}}
}

// NewLoggerFromConfig builds a logger from the logging section of the config.
// Text format only applies to console-only output; file output is always JSON.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	var writers []io.Writer
	console := false
	for _, out := range cfg.Outputs {
		switch strings.ToLower(out) {
		case "console":
			console = true
			writers = append(writers, os.Stderr)
		case "file":
			if cfg.FilePath == "" {
				continue
			}
			writers = append(writers, &log.FileWriter{
				Filename:     cfg.FilePath,
				MaxSize:      int64(cfg.MaxSizeMB) * 1024 * 1024,
				MaxBackups:   cfg.MaxBackups,
				EnsureFolder: true,
				LocalTime:    true,
			})
		}
	}

	if len(writers) == 0 {
		return NewLogger(cfg.Level)
	}
	if console && len(writers) == 1 && cfg.Format != "json" {
		return NewLogger(cfg.Level)
	}
	return NewLoggerWithOutput(cfg.Level, io.MultiWriter(writers...))
}

// NewDefaultLogger creates a logger with default settings
func NewDefaultLogger() *Logger {
	return NewLogger("info")
}

// NewSilentLogger creates a logger that discards all output
func NewSilentLogger() *Logger {
	return &Logger{Logger: log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}}
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
