//go:build unix

package cookies

import (
	"os"
	"path/filepath"
	"runtime"
)

// chromiumProfile lists where a Chromium-family browser keeps its Default
// profile, relative to the platform's application data directory.
type chromiumProfile struct {
	name   string
	darwin []string
	linux  []string
}

var chromiumProfiles = []chromiumProfile{
	{"Chrome", []string{"Google", "Chrome", "Default"}, []string{"google-chrome", "Default"}},
	{"Chromium", []string{"Chromium", "Default"}, []string{"chromium", "Default"}},
	{"Edge", []string{"Microsoft Edge", "Default"}, []string{"microsoft-edge", "Default"}},
	{"Brave", []string{"BraveSoftware", "Brave-Browser", "Default"}, []string{"BraveSoftware", "Brave-Browser", "Default"}},
}

// getBrowserCookiePathsForHome returns browser specs rooted at homeDir.
// This is the testable variant; getBrowserCookiePaths calls it with the real home.
func getBrowserCookiePathsForHome(homeDir string) []browserSpec {
	isDarwin := runtime.GOOS == "darwin"
	appSupport := filepath.Join(homeDir, "Library", "Application Support")

	var specs []browserSpec
	if isDarwin {
		specs = append(specs,
			browserSpec{Name: "Firefox", ProfilesIniPaths: []string{
				filepath.Join(appSupport, "Firefox", "profiles.ini"),
			}},
			browserSpec{Name: "LibreWolf", ProfilesIniPaths: []string{
				filepath.Join(appSupport, "librewolf", "profiles.ini"),
			}},
		)
	} else {
		specs = append(specs,
			browserSpec{Name: "Firefox", ProfilesIniPaths: []string{
				filepath.Join(homeDir, ".mozilla", "firefox", "profiles.ini"),
				filepath.Join(homeDir, "snap", "firefox", "common", ".mozilla", "firefox", "profiles.ini"),
			}},
			browserSpec{Name: "LibreWolf", ProfilesIniPaths: []string{
				filepath.Join(homeDir, ".librewolf", "profiles.ini"),
			}},
		)
	}

	for _, p := range chromiumProfiles {
		var base string
		if isDarwin {
			base = filepath.Join(append([]string{appSupport}, p.darwin...)...)
		} else {
			base = filepath.Join(append([]string{homeDir, ".config"}, p.linux...)...)
		}
		specs = append(specs, browserSpec{Name: p.name, CookiePaths: []string{
			filepath.Join(base, "Network", "Cookies"),
			filepath.Join(base, "Cookies"),
		}})
	}
	return specs
}

// getBrowserCookiePaths returns browser specs rooted at the real user home directory.
func getBrowserCookiePaths() []browserSpec {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return getBrowserCookiePathsForHome(homeDir)
}
