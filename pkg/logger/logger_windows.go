//go:build windows

package logger

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows/svc/eventlog"
)

// Event IDs written by EventLogger.
const (
	EventIDInfo    uint32 = 1
	EventIDWarning uint32 = 2
	EventIDError   uint32 = 3
)

// EventSource is the Event Log source registered by "crumbs native-host install".
const EventSource = "crumbs"

var eventLogOpener = func(sourceName string) (EventLogWriter, error) {
	return eventlog.Open(sourceName)
}

// EventLogger writes to the Windows Event Log. The native host uses it next
// to stderr because browsers discard the host's stderr on Windows.
type EventLogger struct {
	log EventLogWriter
}

// NewEventLogger opens the Event Log source sourceName. The source must have
// been registered with RegisterEventSource.
func NewEventLogger(sourceName string) (*EventLogger, error) {
	w, err := eventLogOpener(sourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	return NewEventLoggerWithWriter(w), nil
}

// NewEventLoggerWithWriter returns an EventLogger writing to w.
func NewEventLoggerWithWriter(w EventLogWriter) *EventLogger {
	return &EventLogger{log: w}
}

// RegisterEventSource registers sourceName in the registry. It needs
// administrator rights; an already registered source is not an error.
func RegisterEventSource(sourceName string) error {
	err := eventlog.InstallAsEventCreate(sourceName, eventlog.Info|eventlog.Warning|eventlog.Error)
	if err != nil && !isAlreadyRegistered(err) {
		return err
	}
	return nil
}

// UnregisterEventSource removes sourceName from the registry.
func UnregisterEventSource(sourceName string) error {
	return eventlog.Remove(sourceName)
}

func isAlreadyRegistered(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "already exists")
}

// Errors from the Event Log API are dropped; logging must never stop the host.
func (e *EventLogger) Info(format string, args ...interface{}) {
	_ = e.log.Info(EventIDInfo, fmt.Sprintf(format, args...))
}

func (e *EventLogger) Warning(format string, args ...interface{}) {
	_ = e.log.Warning(EventIDWarning, fmt.Sprintf(format, args...))
}

func (e *EventLogger) Error(format string, args ...interface{}) {
	_ = e.log.Error(EventIDError, fmt.Sprintf(format, args...))
}

func (e *EventLogger) Close() error {
	if e.log != nil {
		return e.log.Close()
	}
	return nil
}

var _ Logger = (*EventLogger)(nil)
