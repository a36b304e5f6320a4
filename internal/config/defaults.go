package config

import (
	"time"

	"github.com/smykla-skalski/tmuxflash/internal/notifier"
	"github.com/smykla-skalski/tmuxflash/pkg/config"
)

const (
	// DefaultTimeout bounds commands tmuxflash runs.
	DefaultTimeout = 10 * time.Minute

	// DefaultDebounce is the quiet period before a run.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultTmuxPath is the tmux binary resolved through PATH.
	DefaultTmuxPath = "tmux"
)

// DefaultWatchPaths are watched when no paths are configured.
var DefaultWatchPaths = []string{"."}

// DefaultExcludes are never watched.
var DefaultExcludes = []string{".git/**", "node_modules/**", "vendor/**"}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *config.Config {
	return &config.Config{
		Version:      config.CurrentConfigVersion,
		Global:       DefaultGlobalConfig(),
		Notification: DefaultNotificationConfig(),
		Watch:        DefaultWatchConfig(),
	}
}

// DefaultGlobalConfig returns the default global configuration.
func DefaultGlobalConfig() *config.GlobalConfig {
	return &config.GlobalConfig{
		DefaultTimeout: config.Duration(DefaultTimeout),
		TmuxPath:       DefaultTmuxPath,
	}
}

// DefaultNotificationConfig returns the default notifier configuration.
func DefaultNotificationConfig() *config.NotificationConfig {
	return &config.NotificationConfig{
		Tmux: DefaultTmuxNotifierConfig(),
		Bell: DefaultBellNotifierConfig(),
	}
}

// DefaultTmuxNotifierConfig returns the tmux notifier configuration
// equivalent to notifier.DefaultTmuxProfile.
func DefaultTmuxNotifierConfig() *config.TmuxNotifierConfig {
	profile := notifier.DefaultTmuxProfile()
	enabled := true
	allClients := false

	return &config.TmuxNotifierConfig{
		NotifierConfig:      config.NotifierConfig{Enabled: &enabled},
		Timeout:             &profile.TimeoutSeconds,
		DisplayMessage:      &profile.DisplayMessage,
		DisplayTitle:        &profile.DisplayTitle,
		DisplayOnAllClients: &allClients,
		DefaultMessageColor: profile.DefaultMessageColor,
		Success:             profile.SuccessColor,
		Failure:             profile.FailureColor,
		Pending:             profile.PendingColor,
		ColorLocation:       profile.Locations(),
		LineSeparator:       notifier.DefaultLineSeparator,
	}
}

// DefaultBellNotifierConfig returns the default bell configuration. The bell
// is opt-in.
func DefaultBellNotifierConfig() *config.BellNotifierConfig {
	enabled := false

	return &config.BellNotifierConfig{
		NotifierConfig: config.NotifierConfig{Enabled: &enabled},
	}
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() *config.WatchConfig {
	runOnStart := false

	return &config.WatchConfig{
		Paths:      append([]string(nil), DefaultWatchPaths...),
		Include:    []string{},
		Exclude:    append([]string(nil), DefaultExcludes...),
		Debounce:   config.Duration(DefaultDebounce),
		RunOnStart: &runOnStart,
	}
}

// defaultsToMap converts the defaults to a map for koanf loading.
func defaultsToMap() map[string]any {
	return map[string]any{
		"version": config.CurrentConfigVersion,
		"global": map[string]any{
			"default_timeout": DefaultTimeout.String(),
			"tmux_path":       DefaultTmuxPath,
		},
		"notification": map[string]any{
			"tmux": defaultTmuxMap(),
			"bell": map[string]any{
				"enabled":        false,
				"custom_command": "",
			},
		},
		"watch": map[string]any{
			"paths":        append([]string(nil), DefaultWatchPaths...),
			"include":      []string{},
			"exclude":      append([]string(nil), DefaultExcludes...),
			"debounce":     DefaultDebounce.String(),
			"command":      "",
			"run_on_start": false,
			"title":        "",
		},
	}
}

func defaultTmuxMap() map[string]any {
	m := notifier.DefaultTmuxProfile().Options()
	m["enabled"] = true
	m["display_on_all_clients"] = false
	m["line_separator"] = notifier.DefaultLineSeparator

	return m
}
