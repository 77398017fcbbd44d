//go:build windows

package logger

import (
	"errors"
	"testing"
)

type eventCall struct {
	EventID uint32
	Message string
}

type mockEventLogWriter struct {
	calls       map[string][]eventCall
	writeErr    error
	closeErr    error
	closeCalled bool
}

func newMockEventLogWriter() *mockEventLogWriter {
	return &mockEventLogWriter{calls: map[string][]eventCall{}}
}

func (m *mockEventLogWriter) record(kind string, eid uint32, msg string) error {
	m.calls[kind] = append(m.calls[kind], eventCall{eid, msg})
	return m.writeErr
}

func (m *mockEventLogWriter) Info(eid uint32, msg string) error    { return m.record("info", eid, msg) }
func (m *mockEventLogWriter) Warning(eid uint32, msg string) error { return m.record("warning", eid, msg) }
func (m *mockEventLogWriter) Error(eid uint32, msg string) error   { return m.record("error", eid, msg) }
func (m *mockEventLogWriter) Close() error {
	m.closeCalled = true
	return m.closeErr
}

func TestEventLogger_Writes(t *testing.T) {
	mock := newMockEventLogWriter()
	mock.writeErr = errors.New("write failed")
	l := NewEventLoggerWithWriter(mock)

	l.Info("host started %d", 1)
	l.Warning("skipping %s", "Edge")
	l.Error("failed: %v", "x")

	want := map[string]eventCall{
		"info":    {EventIDInfo, "host started 1"},
		"warning": {EventIDWarning, "skipping Edge"},
		"error":   {EventIDError, "failed: x"},
	}
	for kind, w := range want {
		got := mock.calls[kind]
		if len(got) != 1 || got[0] != w {
			t.Errorf("%s: want %+v, got %+v", kind, w, got)
		}
	}
}

func TestEventLogger_Close(t *testing.T) {
	closeErr := errors.New("close failed")
	mock := newMockEventLogWriter()
	mock.closeErr = closeErr
	if err := NewEventLoggerWithWriter(mock).Close(); !errors.Is(err, closeErr) || !mock.closeCalled {
		t.Errorf("expected close error, got %v", err)
	}
	if err := (&EventLogger{}).Close(); err != nil {
		t.Errorf("nil writer Close: %v", err)
	}
}

func TestNewEventLogger(t *testing.T) {
	old := eventLogOpener
	defer func() { eventLogOpener = old }()

	mock := newMockEventLogWriter()
	eventLogOpener = func(source string) (EventLogWriter, error) {
		if source != EventSource {
			t.Errorf("unexpected source %q", source)
		}
		return mock, nil
	}
	if l, err := NewEventLogger(EventSource); err != nil || l.log != mock {
		t.Fatalf("unexpected result %v %v", l, err)
	}

	openErr := errors.New("open failed")
	eventLogOpener = func(string) (EventLogWriter, error) { return nil, openErr }
	if l, err := NewEventLogger(EventSource); l != nil || !errors.Is(err, openErr) {
		t.Errorf("expected wrapped open error, got %v %v", l, err)
	}
}
