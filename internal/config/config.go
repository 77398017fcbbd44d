// Package config resolves the crumbs configuration directory and the
// settings read from the environment and the optional crumbs.env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/crumbsapp/crumbs/internal/cleanup"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// Environment variables and file names.
const (
	DirEnv          = "CRUMBS_CONFIG_DIR"
	DebugEnv        = "CRUMBS_DEBUG"
	CookieFileEnv   = "CRUMBS_COOKIE_FILE"
	FallbackRuleEnv = "CRUMBS_FALLBACK_RULE"

	EnvFileName = "crumbs.env"
	RulesDBName = "rules.db"

	// AutoDetect as cookie file means every installed browser store.
	AutoDetect = "auto"
)

// Keys lists the settings that may appear in crumbs.env.
var Keys = []string{DebugEnv, CookieFileEnv, FallbackRuleEnv}

// Config is the resolved configuration. Real environment variables take
// precedence over crumbs.env.
type Config struct {
	Dir        string
	Debug      bool
	CookieFile string
	// Fallback overrides the stored fallback cleanup type when non-nil.
	Fallback *cleanup.Type
}

type lookupFunc func(key string) (string, bool)

// Load resolves the configuration from the process environment.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup lookupFunc) (*Config, error) {
	dir, ok := lookup(DirEnv)
	if !ok || dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot locate user config directory: %w", err)
		}
		dir = filepath.Join(base, "crumbs")
	}
	dir, err := ensureDir(dir)
	if err != nil {
		return nil, err
	}

	file, err := readEnvFile(dir)
	if err != nil {
		return nil, err
	}
	get := func(key string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(file[key])
	}

	c := &Config{Dir: dir, CookieFile: get(CookieFileEnv)}
	if v := get(DebugEnv); v != "" {
		c.Debug, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", DebugEnv, err)
		}
	}
	if v := get(FallbackRuleEnv); v != "" {
		t, err := cleanup.ParseType(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", FallbackRuleEnv, err)
		}
		c.Fallback = &t
	}
	return c, nil
}

func ensureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("cannot create config directory: %w", err)
	}
	return abs, nil
}

func readEnvFile(dir string) (map[string]string, error) {
	values, err := godotenv.Read(filepath.Join(dir, EnvFileName))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", EnvFileName, err)
	}
	return values, nil
}

// RulesDBPath returns the path of the rules database.
func (c *Config) RulesDBPath() string {
	return filepath.Join(c.Dir, RulesDBName)
}

// EnvFilePath returns the path of crumbs.env.
func (c *Config) EnvFilePath() string {
	return filepath.Join(c.Dir, EnvFileName)
}

// AutoDetect reports whether cookies come from every detected browser store.
func (c *Config) AutoDetect() bool {
	return c.CookieFile == "" || strings.EqualFold(c.CookieFile, AutoDetect)
}

// FileValues returns the settings stored in crumbs.env.
func (c *Config) FileValues() (map[string]string, error) {
	return readEnvFile(c.Dir)
}

// Set stores key=value in crumbs.env. An empty value removes the key.
func (c *Config) Set(key, value string) error {
	if !lo.Contains(Keys, key) {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	switch key {
	case DebugEnv:
		if value != "" {
			if _, err := strconv.ParseBool(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	case FallbackRuleEnv:
		if value != "" {
			t, err := cleanup.ParseType(value)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			value = t.String()
		}
	}

	values, err := readEnvFile(c.Dir)
	if err != nil {
		return err
	}
	if value == "" {
		delete(values, key)
	} else {
		values[key] = value
	}
	return godotenv.Write(values, c.EnvFilePath())
}
