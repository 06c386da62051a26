package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// DefaultLogPath is where the default logger writes unless SetLogFile is called
const DefaultLogPath = "/tmp/findninja.out"

// Logger provides a centralized logging mechanism for findninja
type Logger struct {
	warningLogger *log.Logger
	debugLogger   *log.Logger
	errorLogger   *log.Logger
	file          *os.File
	debug         bool
	mu            sync.Mutex
}

var (
	defaultLogger *Logger
	logPath       = DefaultLogPath
	debugEnabled  = true
	once          sync.Once
)

// SetLogFile changes the default logger's destination. It only has an effect
// before the first log call.
func SetLogFile(path string) {
	logPath = path
}

// SetDebug turns debug output of the default logger on or off. Like
// SetLogFile it must run before the first log call.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// GetLogger returns the default logger instance (singleton pattern)
func GetLogger() *Logger {
	once.Do(func() {
		var err error
		defaultLogger, err = NewLogger(logPath)
		if err != nil {
			// Fallback to stderr if we can't create the log file
			log.Printf("Failed to create log file, falling back to stderr: %v", err)
			defaultLogger = NewWriterLogger(os.Stderr)
		}
		defaultLogger.debug = debugEnabled
	})
	return defaultLogger
}

// NewLogger creates a new logger that writes to the specified file
func NewLogger(path string) (*Logger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWriterLogger(file)
	l.file = file
	return l, nil
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{
		warningLogger: log.New(w, "[WARN] ", log.LstdFlags|log.Lshortfile),
		debugLogger:   log.New(w, "[DEBUG] ", log.LstdFlags|log.Lshortfile),
		errorLogger:   log.New(w, "[ERROR] ", log.LstdFlags|log.Lshortfile),
		debug:         true,
	}
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLogger.Printf(format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.debug {
		return
	}
	l.debugLogger.Printf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLogger.Printf(format, args...)
}

// Close closes the log file (if any)
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Convenience functions for the default logger
func Warning(format string, args ...interface{}) {
	GetLogger().Warning(format, args...)
}

func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}
