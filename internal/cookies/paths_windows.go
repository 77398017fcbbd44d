//go:build windows

package cookies

import (
	"os"
	"path/filepath"
)

var chromiumUserData = []struct {
	name string
	rel  []string
}{
	{"Chrome", []string{"Google", "Chrome"}},
	{"Chromium", []string{"Chromium"}},
	{"Edge", []string{"Microsoft", "Edge"}},
	{"Brave", []string{"BraveSoftware", "Brave-Browser"}},
}

// getBrowserCookiePathsForEnv returns browser specs for the given LOCALAPPDATA
// and APPDATA values. Firefox-family browsers live under APPDATA (Roaming),
// Chromium-family browsers under LOCALAPPDATA.
func getBrowserCookiePathsForEnv(localAppData, appData string) []browserSpec {
	specs := []browserSpec{
		{Name: "Firefox", ProfilesIniPaths: []string{filepath.Join(appData, "Mozilla", "Firefox", "profiles.ini")}},
		{Name: "LibreWolf", ProfilesIniPaths: []string{filepath.Join(appData, "LibreWolf", "profiles.ini")}},
	}
	for _, b := range chromiumUserData {
		base := filepath.Join(append(append([]string{localAppData}, b.rel...), "User Data", "Default")...)
		specs = append(specs, browserSpec{Name: b.name, CookiePaths: []string{
			filepath.Join(base, "Network", "Cookies"),
			filepath.Join(base, "Cookies"),
		}})
	}
	return specs
}

// getBrowserCookiePaths returns browser specs using real Windows environment variables.
func getBrowserCookiePaths() []browserSpec {
	return getBrowserCookiePathsForEnv(os.Getenv("LOCALAPPDATA"), os.Getenv("APPDATA"))
}
