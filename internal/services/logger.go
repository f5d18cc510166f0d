// File: internal/services/logger.go
package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Logger defines common logging interface for all services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel maps LOG_LEVEL values to a LogLevel, defaulting to INFO.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// ProductionLogger is a structured logger backed by log/slog.
type ProductionLogger struct {
	logger  *slog.Logger
	level   *slog.LevelVar
	service string
}

// NewProductionLogger creates a logger writing human-readable text to stderr.
func NewProductionLogger(service string) *ProductionLogger {
	level := new(slog.LevelVar)
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return newProductionLogger(service, level, handler)
}

// NewProductionLoggerWithWriters fans out to a text writer and a JSON writer.
// Either writer may be nil.
func NewProductionLoggerWithWriters(service string, text, jsonOut io.Writer, lvl LogLevel) *ProductionLogger {
	level := new(slog.LevelVar)
	level.Set(lvl.slogLevel())

	var handlers []slog.Handler
	if text != nil {
		handlers = append(handlers, slog.NewTextHandler(text, &slog.HandlerOptions{Level: level}))
	}
	if jsonOut != nil {
		handlers = append(handlers, slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{Level: level}))
	}
	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(io.Discard, nil))
	}
	return newProductionLogger(service, level, slogmulti.Fanout(handlers...))
}

func newProductionLogger(service string, level *slog.LevelVar, handler slog.Handler) *ProductionLogger {
	return &ProductionLogger{
		logger:  slog.New(handler).With(slog.String("service", service)),
		level:   level,
		service: service,
	}
}

// SetLevel updates the logging level
func (p *ProductionLogger) SetLevel(level LogLevel) {
	p.level.Set(level.slogLevel())
}

// Slog exposes the underlying slog logger for packages that take one directly.
func (p *ProductionLogger) Slog() *slog.Logger {
	return p.logger
}

func (p *ProductionLogger) Info(msg string, keysAndValues ...interface{}) {
	p.logger.Log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

func (p *ProductionLogger) Error(msg string, keysAndValues ...interface{}) {
	p.logger.Log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

func (p *ProductionLogger) Debug(msg string, keysAndValues ...interface{}) {
	p.logger.Log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

func (p *ProductionLogger) Warn(msg string, keysAndValues ...interface{}) {
	p.logger.Log(context.Background(), slog.LevelWarn, msg, keysAndValues...)
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// NewLogger builds the process logger. Text goes to stderr; when logFile is
// non-empty, JSON lines are also appended to it. The returned cleanup closes
// the file.
func NewLogger(service, logLevel, logFile string) (Logger, func() error) {
	noop := func() error { return nil }
	if os.Getenv("GO_ENV") == "test" {
		return &NoOpLogger{}, noop
	}

	level := ParseLogLevel(logLevel)
	if logFile == "" {
		return NewProductionLoggerWithWriters(service, os.Stderr, nil, level), noop
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := NewProductionLoggerWithWriters(service, os.Stderr, nil, level)
		logger.Error("failed to open log file, using stderr only", "error", err, "file", logFile)
		return logger, noop
	}
	return NewProductionLoggerWithWriters(service, os.Stderr, file, level), file.Close
}
