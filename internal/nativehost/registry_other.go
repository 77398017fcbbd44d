//go:build !windows

package nativehost

// Browsers on Linux and macOS find manifests by path alone.
func registerManifest(Browser, string) error { return nil }

func unregisterManifest(Browser) error { return nil }
