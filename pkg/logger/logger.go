// Package logger provides the structured logging surface used across
// typebus. The abstraction allows swapping logging implementations.
package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// Logger provides structured logging capabilities.
type Logger interface {
	// Error logs an error message.
	Error(args ...interface{})

	// Info logs an informational message.
	Info(args ...interface{})

	// Debug logs a debug message.
	Debug(args ...interface{})

	// WithFields returns a new logger with structured fields attached to
	// every subsequent entry.
	WithFields(fields map[string]interface{}) Logger
}

// Config configures logger behavior.
type Config struct {
	// JSONOutput enables JSON structured output.
	JSONOutput bool

	// Level sets the minimum log level (DEBUG, INFO, ERROR).
	Level string
}

// defaultLogger implements Logger over the standard log package.
type defaultLogger struct {
	errorLogger *log.Logger
	infoLogger  *log.Logger
	debugLogger *log.Logger
	config      Config
	fields      map[string]interface{}
}

// NewDefaultLogger creates a plain-text logger at DEBUG level.
func NewDefaultLogger() Logger {
	return NewLogger(Config{Level: "DEBUG"})
}

// NewJSONLogger creates a logger with JSON output enabled.
func NewJSONLogger() Logger {
	return NewLogger(Config{JSONOutput: true, Level: "DEBUG"})
}

// NewLogger creates a new logger with configuration.
func NewLogger(config Config) Logger {
	return &defaultLogger{
		errorLogger: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
		infoLogger:  log.New(os.Stdout, "[INFO] ", log.LstdFlags),
		debugLogger: log.New(os.Stdout, "[DEBUG] ", log.LstdFlags),
		config:      config,
		fields:      make(map[string]interface{}),
	}
}

// logEntry represents a structured log entry.
type logEntry struct {
	Timestamp string                 `json:"timestamp,omitempty"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

func (l *defaultLogger) log(level string, out *log.Logger, message string) {
	if !l.shouldLog(level) {
		return
	}

	if l.config.JSONOutput {
		entry := logEntry{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Level:     level,
			Message:   message,
		}
		if len(l.fields) > 0 {
			entry.Fields = l.fields
		}
		jsonData, err := json.Marshal(entry)
		if err != nil {
			// Fallback to plain text if JSON marshal fails
			out.Output(2, fmt.Sprintf("[%s] %s %v", level, message, l.fields))
			return
		}
		out.Output(2, string(jsonData))
		return
	}

	if len(l.fields) > 0 {
		out.Output(2, fmt.Sprintf("%s %v", message, l.fields))
	} else {
		out.Output(2, message)
	}
}

// shouldLog checks the entry level against the configured minimum.
func (l *defaultLogger) shouldLog(level string) bool {
	levels := map[string]int{
		"DEBUG": 0,
		"INFO":  1,
		"ERROR": 2,
	}

	configLevel, ok := levels[l.config.Level]
	if !ok {
		configLevel = 0
	}

	logLevel, ok := levels[level]
	if !ok {
		// Unknown levels are always logged
		return true
	}

	return logLevel >= configLevel
}

func (l *defaultLogger) Error(args ...interface{}) {
	l.log("ERROR", l.errorLogger, fmt.Sprint(args...))
}

func (l *defaultLogger) Info(args ...interface{}) {
	l.log("INFO", l.infoLogger, fmt.Sprint(args...))
}

func (l *defaultLogger) Debug(args ...interface{}) {
	l.log("DEBUG", l.debugLogger, fmt.Sprint(args...))
}

// WithFields returns a new logger with the merged field set; new fields
// override existing ones.
func (l *defaultLogger) WithFields(fields map[string]interface{}) Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &defaultLogger{
		errorLogger: l.errorLogger,
		infoLogger:  l.infoLogger,
		debugLogger: l.debugLogger,
		config:      l.config,
		fields:      newFields,
	}
}
