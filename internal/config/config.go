// Package config reads the optional ivsb configuration file.
//
// The file is JSON5. Next to it a <name>.local.<ext> file may override any
// key, so a shared config can be kept under version control.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"

	"github.com/jole/ivsb/internal/schedule"
)

// Config holds the settings that flags may also set.
type Config struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	Retries        *int   `json:"retries"`
	UserAgent      string `json:"user_agent"`
	Scope          string `json:"scope"`
	ShowRemoved    *bool  `json:"show_removed"`
}

// Default returns the built-in settings.
func Default() Config {
	retries := schedule.DefaultRetries
	show := true
	return Config{
		BaseURL:        schedule.DefaultBaseURL,
		TimeoutSeconds: int(schedule.DefaultTimeout / time.Second),
		Retries:        &retries,
		UserAgent:      schedule.DefaultUserAgent,
		Scope:          "both",
		ShowRemoved:    &show,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/ivsb/config.json5, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ivsb", "config.json5"), nil
}

// Load reads the file at path and its local override and fills anything
// they leave unset from Default. Missing files are not an error.
func Load(path string) (Config, error) {
	cfg, err := readConfig[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := mergo.Merge(&cfg, Default(), mergo.WithoutDereference); err != nil {
		return Config{}, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return cfg, nil
}

// Timeout returns the per-source fetch timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryCount returns the number of fetch retries.
func (c Config) RetryCount() int {
	if c.Retries == nil {
		return schedule.DefaultRetries
	}
	return *c.Retries
}

// ShowRemovedStations reports whether removed stations start visible.
func (c Config) ShowRemovedStations() bool {
	return c.ShowRemoved == nil || *c.ShowRemoved
}

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// readConfig merges <name>.<ext> with <name>.local.<ext>, the local file
// winning. It returns os.ErrNotExist when neither exists.
func readConfig[T any](name string) (T, error) {
	var out T
	found := false

	prefix, ext := splitExt(filepath.Base(name))
	localPath := filepath.Join(filepath.Dir(name), fmt.Sprintf("%s.local.%s", prefix, ext))

	data, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(data) > 0 {
		if err := json5.Unmarshal(data, &out); err != nil {
			return out, err
		}
		found = true
	}

	data, err = os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(data) > 0 {
		var override T
		if err := json5.Unmarshal(data, &override); err != nil {
			return out, err
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return out, err
		}
		slog.Debug("merged config with local overrides", "local", localPath)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}
