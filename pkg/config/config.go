// Package config provides configuration schema types for tmuxflash.
package config

// CurrentConfigVersion is the latest config schema version.
const CurrentConfigVersion = 1

// Config represents the root configuration for tmuxflash.
type Config struct {
	// Version is the config schema version. Defaults to 1 when omitted.
	Version int `json:"version,omitempty" koanf:"version" toml:"version,omitempty"`

	// Global settings that apply across all components.
	Global *GlobalConfig `json:"global,omitempty" koanf:"global" toml:"global,omitempty"`

	// Notification groups all notifier configurations.
	Notification *NotificationConfig `json:"notification,omitempty" koanf:"notification" toml:"notification,omitempty"`

	// Watch configures the file watcher and the command it runs.
	Watch *WatchConfig `json:"watch,omitempty" koanf:"watch" toml:"watch,omitempty"`
}

// GlobalConfig contains global settings.
type GlobalConfig struct {
	// DefaultTimeout bounds every command tmuxflash runs, including the
	// watched command.
	// Default: "10m"
	DefaultTimeout Duration `json:"default_timeout,omitempty" koanf:"default_timeout" toml:"default_timeout,omitempty"`

	// TmuxPath is the tmux binary to invoke.
	// Default: "tmux" (resolved through PATH)
	TmuxPath string `json:"tmux_path,omitempty" koanf:"tmux_path" toml:"tmux_path,omitempty"`
}

// GetGlobal returns the global config, creating it if it doesn't exist.
func (c *Config) GetGlobal() *GlobalConfig {
	if c.Global == nil {
		c.Global = &GlobalConfig{}
	}

	return c.Global
}

// GetNotification returns the notification config, creating it if it doesn't exist.
func (c *Config) GetNotification() *NotificationConfig {
	if c.Notification == nil {
		c.Notification = &NotificationConfig{}
	}

	return c.Notification
}

// GetWatch returns the watch config, creating it if it doesn't exist.
func (c *Config) GetWatch() *WatchConfig {
	if c.Watch == nil {
		c.Watch = &WatchConfig{}
	}

	return c.Watch
}
