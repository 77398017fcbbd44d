//go:build windows

package nativehost

import (
	"fmt"
	"os"

	"github.com/crumbsapp/crumbs/pkg/logger"
)

// hostLogger also writes to the Event Log since browsers drop the host's
// stderr on Windows.
func hostLogger(debug bool) logger.Logger {
	std := logger.New(os.Stderr, debug)
	ev, err := logger.NewEventLogger(logger.EventSource)
	if err != nil {
		return std
	}
	return logger.NewMultiLogger(std, ev)
}

func registerEventSource() {
	if err := logger.RegisterEventSource(logger.EventSource); err != nil {
		fmt.Fprintf(os.Stderr, "event log source not registered: %v\n", err)
	}
}

func unregisterEventSource() {
	if err := logger.UnregisterEventSource(logger.EventSource); err != nil {
		fmt.Fprintf(os.Stderr, "event log source not removed: %v\n", err)
	}
}
