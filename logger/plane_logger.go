package logger

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorError = "\033[31m"
	colorWarn  = "\033[33m"
	colorInfo  = "\033[37m"
	colorDebug = "\033[34m"
	colorTrace = "\033[35m"
)

// PlaneLogger is a leveled logger writing to stdout, with colors when stdout
// is a character device
type PlaneLogger struct {
	level        atomic.Int32
	useColors    bool
	storeLastMsg bool
	lastMsg      atomic.Pointer[LogMessage]
}

// LogMessage stores information about a log message
type LogMessage struct {
	Level   LogLevel
	Message string
	Time    time.Time
}

// NewPlaneLogger creates a new logger with the specified log level
func NewPlaneLogger(level LogLevel, storeLastMessage bool) Logger {
	fileInfo, _ := os.Stdout.Stat()
	useColors := (fileInfo.Mode() & os.ModeCharDevice) != 0

	logger := &PlaneLogger{
		useColors:    useColors,
		storeLastMsg: storeLastMessage,
	}
	logger.level.Store(int32(level))
	return logger
}

// GetLevel returns the current log level
func (l *PlaneLogger) GetLevel() LogLevel {
	return LogLevel(l.level.Load())
}

// SetLevel sets the log level
func (l *PlaneLogger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

func (l *PlaneLogger) levelToColor(level LogLevel) string {
	if !l.useColors {
		return ""
	}

	switch level {
	case LevelError:
		return colorError
	case LevelWarn:
		return colorWarn
	case LevelInfo:
		return colorInfo
	case LevelDebug:
		return colorDebug
	case LevelTrace:
		return colorTrace
	default:
		return ""
	}
}

func (l *PlaneLogger) print(level LogLevel, message string) {
	if l.GetLevel() < level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000000")
	prefix := fmt.Sprintf("%s  %s:", timestamp, level.String())

	color := l.levelToColor(level)
	resetColor := ""
	if color != "" {
		resetColor = colorReset
	}

	fmt.Printf("%s%s %s%s\n", color, prefix, message, resetColor)

	if l.storeLastMsg {
		l.lastMsg.Store(&LogMessage{
			Level:   level,
			Message: message,
			Time:    time.Now(),
		})
	}
}

// Log implements the logger.Logger interface
func (l *PlaneLogger) Log(level LogLevel, format string, args ...interface{}) {
	l.print(level, fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *PlaneLogger) Error(format string, args ...interface{}) {
	l.Log(LevelError, format, args...)
}

// Warn logs a warning message
func (l *PlaneLogger) Warn(format string, args ...interface{}) {
	l.Log(LevelWarn, format, args...)
}

// Info logs an informational message
func (l *PlaneLogger) Info(format string, args ...interface{}) {
	l.Log(LevelInfo, format, args...)
}

// Debug logs a debug message
func (l *PlaneLogger) Debug(format string, args ...interface{}) {
	l.Log(LevelDebug, format, args...)
}

// Trace logs a trace message
func (l *PlaneLogger) Trace(format string, args ...interface{}) {
	l.Log(LevelTrace, format, args...)
}

// GetLastMessage returns the last logged message if storage is enabled
func (l *PlaneLogger) GetLastMessage() *LogMessage {
	if !l.storeLastMsg {
		return nil
	}
	return l.lastMsg.Load()
}
