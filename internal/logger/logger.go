package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// redactedKeys are structured-field keys whose values never reach the log.
var redactedKeys = map[string]bool{
	"password":         true,
	"confirm_password": true,
	"confirmpassword":  true,
	"token":            true,
	"authorization":    true,
}

// Logger is a leveled logger on top of zap. Output is discarded until a file
// or writer is configured so the TUI never gets log lines on screen.
type Logger struct {
	mu    sync.Mutex
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
	file  *os.File
	out   io.Writer
}

var (
	// Default is the default logger instance
	Default *Logger
)

func init() {
	Default = New()
}

func newSugar(w io.Writer, level zap.AtomicLevel) *zap.SugaredLogger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// New creates a new logger based on environment variables
func New() *Logger {
	l := &Logger{
		level: zap.NewAtomicLevelAt(zapcore.InfoLevel),
		out:   io.Discard,
	}

	if levelStr := os.Getenv("ONBOARD_LOG_LEVEL"); levelStr != "" {
		if level, err := ParseLevel(levelStr); err == nil {
			l.level.SetLevel(level.zapLevel())
		}
	}

	if logFile := os.Getenv("ONBOARD_LOG_FILE"); logFile != "" {
		if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			l.file = f
			l.out = f
		}
	}

	l.sugar = newSugar(l.out, l.level)
	return l
}

// Configure applies level and file settings loaded from config. An empty
// file leaves the current output in place.
func (l *Logger) Configure(level, file string) error {
	if level != "" {
		lv, err := ParseLevel(level)
		if err != nil {
			return err
		}
		l.SetLevel(lv)
	}
	if file == "" {
		return nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	l.out = f
	l.sugar = newSugar(f, l.level)
	return nil
}

// Close closes the logger and any open file handles
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.sugar.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.sugar = newSugar(w, l.level)
}

func (l *Logger) current() *zap.SugaredLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.current().Debugf(format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.current().Infof(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.current().Warnf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.current().Errorf(format, v...)
}

// Fields is a structured child logger returned by With.
type Fields struct {
	sugar *zap.SugaredLogger
}

// With returns a child logger carrying key/value pairs. Sensitive keys are
// redacted before they reach zap.
func (l *Logger) With(keysAndValues ...interface{}) *Fields {
	return &Fields{sugar: l.current().With(redact(keysAndValues)...)}
}

// Debug logs a debug message with the attached fields.
func (f *Fields) Debug(msg string, keysAndValues ...interface{}) {
	f.sugar.Debugw(msg, redact(keysAndValues)...)
}

// Info logs an info message with the attached fields.
func (f *Fields) Info(msg string, keysAndValues ...interface{}) {
	f.sugar.Infow(msg, redact(keysAndValues)...)
}

// Warn logs a warning with the attached fields.
func (f *Fields) Warn(msg string, keysAndValues ...interface{}) {
	f.sugar.Warnw(msg, redact(keysAndValues)...)
}

// Error logs an error with the attached fields.
func (f *Fields) Error(msg string, keysAndValues ...interface{}) {
	f.sugar.Errorw(msg, redact(keysAndValues)...)
}

func redact(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := fmt.Sprint(kv[i])
		if redactedKeys[strings.ToLower(strings.TrimSpace(key))] {
			out = append(out, key, "[REDACTED]")
			continue
		}
		out = append(out, key, kv[i+1])
	}
	return out
}

// Package-level functions that use the default logger

// Debug logs a debug message using the default logger
func Debug(format string, v ...interface{}) {
	Default.Debug(format, v...)
}

// Info logs an info message using the default logger
func Info(format string, v ...interface{}) {
	Default.Info(format, v...)
}

// Warn logs a warning message using the default logger
func Warn(format string, v ...interface{}) {
	Default.Warn(format, v...)
}

// Error logs an error message using the default logger
func Error(format string, v ...interface{}) {
	Default.Error(format, v...)
}

// With returns a structured child of the default logger
func With(keysAndValues ...interface{}) *Fields {
	return Default.With(keysAndValues...)
}

// Configure applies config to the default logger
func Configure(level, file string) error {
	return Default.Configure(level, file)
}

// Close closes the default logger
func Close() error {
	return Default.Close()
}
