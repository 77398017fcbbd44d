//go:build !windows

package nativehost

import (
	"os"

	"github.com/crumbsapp/crumbs/pkg/logger"
)

func hostLogger(debug bool) logger.Logger {
	return logger.New(os.Stderr, debug)
}

func registerEventSource()   {}
func unregisterEventSource() {}
