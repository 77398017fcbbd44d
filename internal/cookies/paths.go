package cookies

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// browserSpec describes a browser's cookie database candidate paths.
type browserSpec struct {
	// Name is the human-readable browser name (e.g., "Firefox").
	Name string
	// CookiePaths contains direct cookie file candidates for Chromium-family
	// browsers. The first path that exists on disk is used.
	CookiePaths []string
	// ProfilesIniPaths contains candidate paths to Firefox-style profiles.ini
	// files. Empty for Chromium-family browsers.
	ProfilesIniPaths []string
}

// iniSection is one [section] of a profiles.ini file.
type iniSection struct {
	name string
	keys map[string]string
}

func readIniSections(path string) []iniSection {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var sections []iniSection
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, ";"):
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			sections = append(sections, iniSection{name: line[1 : len(line)-1], keys: map[string]string{}})
		case len(sections) > 0:
			if k, v, ok := strings.Cut(line, "="); ok {
				sections[len(sections)-1].keys[strings.TrimSpace(k)] = strings.TrimSpace(v)
			}
		}
	}
	return sections
}

// parseProfilesIni returns the default profile directory named by a
// Firefox-style profiles.ini, or "" when there is none. An [Install*]
// Default= entry wins over a [Profile*] section marked Default=1.
func parseProfilesIni(iniPath string) string {
	sections := readIniSections(iniPath)
	dir := filepath.Dir(iniPath)
	resolve := func(p string, relative bool) string {
		p = filepath.FromSlash(p)
		if relative {
			return filepath.Join(dir, p)
		}
		return p
	}

	for _, s := range sections {
		if v := s.keys["Default"]; strings.HasPrefix(s.name, "Install") && v != "" {
			return resolve(v, true)
		}
	}
	for _, s := range sections {
		if strings.HasPrefix(s.name, "Profile") && s.keys["Default"] == "1" && s.keys["Path"] != "" {
			return resolve(s.keys["Path"], s.keys["IsRelative"] != "0")
		}
	}
	return ""
}

// Store locates one browser cookie store on disk.
type Store struct {
	Browser string `json:"browser"`
	Path    string `json:"path"`
}

// storesWithSpecs resolves every spec to the cookie store that exists on
// disk. Each browser contributes at most one store. This function exists as a
// testable seam; production code calls DetectStores.
func storesWithSpecs(specs []browserSpec) []Store {
	var stores []Store
	for _, spec := range specs {
		if path := resolveSpec(spec); path != "" {
			stores = append(stores, Store{Browser: spec.Name, Path: path})
		}
	}
	return stores
}

// resolveSpec returns the first existing cookie file of spec, or "".
func resolveSpec(spec browserSpec) string {
	candidates := spec.CookiePaths
	if len(spec.ProfilesIniPaths) > 0 {
		// Firefox-family: resolve the default profile via profiles.ini.
		candidates = nil
		for _, iniPath := range spec.ProfilesIniPaths {
			if profileDir := parseProfilesIni(iniPath); profileDir != "" {
				candidates = append(candidates, filepath.Join(profileDir, "cookies.sqlite"))
			}
		}
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DetectStores returns every installed browser cookie store in priority
// order: Firefox, LibreWolf, Chrome, Chromium, Edge, Brave.
func DetectStores() []Store {
	return storesWithSpecs(getBrowserCookiePaths())
}
