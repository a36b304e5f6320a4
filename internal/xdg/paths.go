// Package xdg provides path management following XDG Base Directory conventions.
// All global/user-level paths tmuxflash touches on disk are defined here.
// Project-local config paths remain in internal/config.
package xdg

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const appName = "tmuxflash"

// LogFileEnvVar overrides the log file location.
const LogFileEnvVar = "TMUXFLASH_LOG_FILE"

func userHome() (string, error) {
	return os.UserHomeDir()
}

func homeRelative(envVar string, parts ...string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}

	home, err := userHome()
	if err != nil {
		home = "~"
	}

	return filepath.Join(append([]string{home}, parts...)...)
}

// ConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func ConfigHome() string {
	return homeRelative("XDG_CONFIG_HOME", ".config")
}

// StateHome returns $XDG_STATE_HOME or ~/.local/state.
func StateHome() string {
	return homeRelative("XDG_STATE_HOME", ".local", "state")
}

// ConfigDir returns ConfigHome()/tmuxflash.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), appName)
}

// StateDir returns StateHome()/tmuxflash.
func StateDir() string {
	return filepath.Join(StateHome(), appName)
}

// GlobalConfigFile returns ConfigDir()/config.toml.
func GlobalConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LogFile returns the log file path.
// Respects TMUXFLASH_LOG_FILE, otherwise StateDir()/tmuxflash.log.
func LogFile() string {
	if v := os.Getenv(LogFileEnvVar); v != "" {
		return v
	}

	return filepath.Join(StateDir(), appName+".log")
}

// ExpandPath resolves ~ prefix to the user's home directory.
// Returns the path unchanged if it doesn't start with ~.
// Returns error for invalid tilde usage like "~foo".
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := userHome()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}

	switch {
	case path == "~":
		return home, nil
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:]), nil
	default:
		return "", errors.Newf("paths starting with ~ must be either ~ or ~/subdir, got %q", path)
	}
}
