//go:build windows

package nativehost

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// registryKeys maps a browser to the HKCU key under which it looks up
// native messaging hosts.
var registryKeys = map[Browser]string{
	BrowserChrome:   `Software\Google\Chrome\NativeMessagingHosts\`,
	BrowserChromium: `Software\Chromium\NativeMessagingHosts\`,
	BrowserEdge:     `Software\Microsoft\Edge\NativeMessagingHosts\`,
	BrowserBrave:    `Software\BraveSoftware\Brave-Browser\NativeMessagingHosts\`,
	BrowserFirefox:  `Software\Mozilla\NativeMessagingHosts\`,
}

func registerManifest(browser Browser, manifestPath string) error {
	base, ok := registryKeys[browser]
	if !ok {
		return fmt.Errorf("unsupported browser %q", browser)
	}
	k, _, err := registry.CreateKey(registry.CURRENT_USER, base+HostName, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to create registry key: %w", err)
	}
	defer k.Close()
	if err := k.SetStringValue("", manifestPath); err != nil {
		return fmt.Errorf("failed to register manifest: %w", err)
	}
	return nil
}

func unregisterManifest(browser Browser) error {
	base, ok := registryKeys[browser]
	if !ok {
		return fmt.Errorf("unsupported browser %q", browser)
	}
	err := registry.DeleteKey(registry.CURRENT_USER, base+HostName)
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed to remove registry key: %w", err)
	}
	return nil
}
