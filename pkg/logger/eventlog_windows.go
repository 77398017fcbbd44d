//go:build windows

package logger

// EventLogWriter is the subset of *eventlog.Log used by EventLogger.
type EventLogWriter interface {
	Info(eid uint32, msg string) error
	Warning(eid uint32, msg string) error
	Error(eid uint32, msg string) error
	Close() error
}
