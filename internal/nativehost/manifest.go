package nativehost

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-json"
)

// HostName is the native messaging host name the extension connects to.
const HostName = "com.crumbsapp.crumbs"

const hostDescription = "crumbs cookie cleanup native host"

type Browser string

const (
	BrowserChrome   Browser = "chrome"
	BrowserFirefox  Browser = "firefox"
	BrowserChromium Browser = "chromium"
	BrowserEdge     Browser = "edge"
	BrowserBrave    Browser = "brave"
)

func SupportedBrowsers() []Browser {
	return []Browser{BrowserChrome, BrowserFirefox, BrowserChromium, BrowserEdge, BrowserBrave}
}

// ParseBrowser returns the Browser named s.
func ParseBrowser(s string) (Browser, error) {
	for _, b := range SupportedBrowsers() {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unsupported browser %q", s)
}

type ChromeManifest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Path           string   `json:"path"`
	Type           string   `json:"type"`
	AllowedOrigins []string `json:"allowed_origins"`
}

type FirefoxManifest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Path              string   `json:"path"`
	Type              string   `json:"type"`
	AllowedExtensions []string `json:"allowed_extensions"`
}

func GenerateChromeManifest(hostPath, extensionID string) []byte {
	b, _ := json.MarshalIndent(ChromeManifest{
		Name:           HostName,
		Description:    hostDescription,
		Path:           hostPath,
		Type:           "stdio",
		AllowedOrigins: []string{"chrome-extension://" + extensionID + "/"},
	}, "", "  ")
	return b
}

func GenerateFirefoxManifest(hostPath, extensionID string) []byte {
	b, _ := json.MarshalIndent(FirefoxManifest{
		Name:              HostName,
		Description:       hostDescription,
		Path:              hostPath,
		Type:              "stdio",
		AllowedExtensions: []string{extensionID},
	}, "", "  ")
	return b
}

// getManifestPath returns where browser looks for the manifest on platform.
// On Windows the file location is free; the registry entry written by
// registerManifest points the browser to it.
func getManifestPath(browser Browser, platform, homeDir string) string {
	manifestFile := HostName + ".json"

	switch platform {
	case "darwin":
		appSupport := filepath.Join(homeDir, "Library", "Application Support")
		switch browser {
		case BrowserChrome:
			return filepath.Join(appSupport, "Google", "Chrome", "NativeMessagingHosts", manifestFile)
		case BrowserChromium:
			return filepath.Join(appSupport, "Chromium", "NativeMessagingHosts", manifestFile)
		case BrowserFirefox:
			return filepath.Join(appSupport, "Mozilla", "NativeMessagingHosts", manifestFile)
		case BrowserEdge:
			return filepath.Join(appSupport, "Microsoft Edge", "NativeMessagingHosts", manifestFile)
		case BrowserBrave:
			return filepath.Join(appSupport, "BraveSoftware", "Brave-Browser", "NativeMessagingHosts", manifestFile)
		}
	case "linux":
		switch browser {
		case BrowserChrome:
			return filepath.Join(homeDir, ".config", "google-chrome", "NativeMessagingHosts", manifestFile)
		case BrowserChromium:
			return filepath.Join(homeDir, ".config", "chromium", "NativeMessagingHosts", manifestFile)
		case BrowserFirefox:
			return filepath.Join(homeDir, ".mozilla", "native-messaging-hosts", manifestFile)
		case BrowserEdge:
			return filepath.Join(homeDir, ".config", "microsoft-edge", "NativeMessagingHosts", manifestFile)
		case BrowserBrave:
			return filepath.Join(homeDir, ".config", "BraveSoftware", "Brave-Browser", "NativeMessagingHosts", manifestFile)
		}
	case "windows":
		return filepath.Join(homeDir, "AppData", "Local", "crumbs", "NativeMessagingHosts", string(browser), manifestFile)
	}
	return ""
}

// ManifestInstaller writes and removes native messaging manifests.
type ManifestInstaller struct {
	HostPath           string
	ChromeExtensionID  string
	FirefoxExtensionID string
	// BaseDir replaces the home directory when set.
	BaseDir string
	// Platform replaces runtime.GOOS when set.
	Platform string
}

func (m *ManifestInstaller) Validate() error {
	if m.HostPath == "" {
		return errors.New("host path is required")
	}
	if m.ChromeExtensionID == "" && m.FirefoxExtensionID == "" {
		return errors.New("an extension ID is required")
	}
	return nil
}

func (m *ManifestInstaller) homeDir() string {
	if m.BaseDir != "" {
		return m.BaseDir
	}
	home, _ := os.UserHomeDir()
	return home
}

func (m *ManifestInstaller) platform() string {
	if m.Platform != "" {
		return m.Platform
	}
	return runtime.GOOS
}

// ManifestPath returns the manifest location for browser.
func (m *ManifestInstaller) ManifestPath(browser Browser) (string, error) {
	p := getManifestPath(browser, m.platform(), m.homeDir())
	if p == "" {
		return "", fmt.Errorf("unsupported browser/platform: %s/%s", browser, m.platform())
	}
	return p, nil
}

// Install writes the manifest for browser and registers it where the
// platform requires. It returns the manifest path.
func (m *ManifestInstaller) Install(browser Browser) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	var manifest []byte
	if browser == BrowserFirefox {
		if m.FirefoxExtensionID == "" {
			return "", errors.New("firefox extension ID is required")
		}
		manifest = GenerateFirefoxManifest(m.HostPath, m.FirefoxExtensionID)
	} else {
		if m.ChromeExtensionID == "" {
			return "", errors.New("chrome extension ID is required")
		}
		manifest = GenerateChromeManifest(m.HostPath, m.ChromeExtensionID)
	}

	manifestPath, err := m.ManifestPath(browser)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(manifestPath, manifest, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	if m.platform() == runtime.GOOS {
		if err := registerManifest(browser, manifestPath); err != nil {
			return "", err
		}
	}
	return manifestPath, nil
}

// Uninstall removes the manifest for browser. A missing manifest is not an
// error.
func (m *ManifestInstaller) Uninstall(browser Browser) (string, error) {
	manifestPath, err := m.ManifestPath(browser)
	if err != nil {
		return "", err
	}
	if m.platform() == runtime.GOOS {
		if err := unregisterManifest(browser); err != nil {
			return "", err
		}
	}
	return manifestPath, UninstallManifest(manifestPath)
}

// Installed reports whether a manifest for browser exists.
func (m *ManifestInstaller) Installed(browser Browser) (string, bool) {
	p, err := m.ManifestPath(browser)
	if err != nil {
		return "", false
	}
	_, err = os.Stat(p)
	return p, err == nil
}

// UninstallManifest removes a manifest file if present.
func UninstallManifest(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
