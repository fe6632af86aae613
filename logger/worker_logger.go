package logger

import (
	"fmt"
)

// WorkerLogger prefixes every message with the id of the owning worker.
// Worker id -1 denotes the main goroutine.
type WorkerLogger struct {
	*PlaneLogger
	workerID int
}

// NewWorkerLogger creates a logger bound to the given worker id
func NewWorkerLogger(level LogLevel, storeLastMessage bool, workerID int) Logger {
	planeLogger, ok := NewPlaneLogger(level, storeLastMessage).(*PlaneLogger)
	if !ok {
		return nil
	}

	return &WorkerLogger{PlaneLogger: planeLogger, workerID: workerID}
}

// Log implements the logger.Logger interface
func (l *WorkerLogger) Log(level LogLevel, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.workerID == -1 {
		msg = fmt.Sprintf("main worker: %s", msg)
	} else {
		msg = fmt.Sprintf("worker #%03d: %s", l.workerID, msg)
	}
	l.PlaneLogger.Log(level, "%s", msg)
}

// Error logs an error message
func (l *WorkerLogger) Error(format string, args ...interface{}) {
	l.Log(LevelError, format, args...)
}

// Warn logs a warning message
func (l *WorkerLogger) Warn(format string, args ...interface{}) {
	l.Log(LevelWarn, format, args...)
}

// Info logs an informational message
func (l *WorkerLogger) Info(format string, args ...interface{}) {
	l.Log(LevelInfo, format, args...)
}

// Debug logs a debug message
func (l *WorkerLogger) Debug(format string, args ...interface{}) {
	l.Log(LevelDebug, format, args...)
}

// Trace logs a trace message
func (l *WorkerLogger) Trace(format string, args ...interface{}) {
	l.Log(LevelTrace, format, args...)
}
