// Package xdg resolves XDG Base Directory paths for demiserver.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "demiserver"

// ConfigDir returns the demiserver config directory. XDG_CONFIG_HOME wins
// over the ~/.config fallback.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// DataDir returns the demiserver data directory. XDG_DATA_HOME wins over
// the ~/.local/share fallback.
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "share")
	}
	return filepath.Join(base, appName)
}

// DefaultConfigFile returns the path of the config file in ConfigDir when
// one exists, or "" when it doesn't. Used when no --config flag is given.
func DefaultConfigFile() string {
	path := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
