// Package logger is the logging interface shared by the crumbs CLI and the
// native messaging host.
//
// Output never goes to stdout: when crumbs runs as a native messaging host,
// stdout carries the protocol frames.
package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Logger is implemented by every log backend.
type Logger interface {
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
	// Close releases the backend. Safe to call more than once.
	Close() error
}

// Level is the minimum severity a StandardLogger writes.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// StandardLogger writes "[LEVEL] message" lines through a *log.Logger.
type StandardLogger struct {
	logger *log.Logger
	min    Level
}

// NewStandardLogger wraps l and writes every level.
func NewStandardLogger(l *log.Logger) *StandardLogger {
	return &StandardLogger{logger: l, min: LevelInfo}
}

// New returns a StandardLogger writing to w with the "crumbs: " prefix.
// Informational messages are only written when verbose is set.
func New(w io.Writer, verbose bool) *StandardLogger {
	s := NewStandardLogger(log.New(w, "crumbs: ", log.LstdFlags))
	if !verbose {
		s.min = LevelWarning
	}
	return s
}

// SetLevel changes the minimum level written.
func (s *StandardLogger) SetLevel(l Level) {
	s.min = l
}

func (s *StandardLogger) printf(l Level, format string, args ...interface{}) {
	if l < s.min {
		return
	}
	s.logger.Printf("["+l.String()+"] "+format, args...)
}

func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.printf(LevelInfo, format, args...)
}

func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.printf(LevelWarning, format, args...)
}

func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.printf(LevelError, format, args...)
}

// Close is a no-op; the underlying writer is owned by the caller.
func (s *StandardLogger) Close() error {
	return nil
}

// NopLogger discards everything.
type NopLogger struct{}

func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}
func (n *NopLogger) Close() error                               { return nil }

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
)

// MockLogger records formatted messages per level for assertions in tests.
type MockLogger struct {
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		InfoCalls:    make([]string, 0),
		WarningCalls: make([]string, 0),
		ErrorCalls:   make([]string, 0),
	}
}

func (m *MockLogger) Info(format string, args ...interface{}) {
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Error(format string, args ...interface{}) {
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Close() error {
	m.CloseCalled = true
	return nil
}

// Contains reports whether any recorded message, at any level, contains s.
func (m *MockLogger) Contains(s string) bool {
	for _, calls := range [][]string{m.InfoCalls, m.WarningCalls, m.ErrorCalls} {
		for _, c := range calls {
			if strings.Contains(c, s) {
				return true
			}
		}
	}
	return false
}

var _ Logger = (*MockLogger)(nil)
