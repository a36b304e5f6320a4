package config

// NotificationConfig groups all notifier configurations.
type NotificationConfig struct {
	// Tmux configures the tmux status-bar notifier.
	Tmux *TmuxNotifierConfig `json:"tmux,omitempty" koanf:"tmux" toml:"tmux,omitempty"`

	// Bell configures the terminal bell notifier.
	Bell *BellNotifierConfig `json:"bell,omitempty" koanf:"bell" toml:"bell,omitempty"`
}

// GetTmux returns the tmux notifier config, creating it if it doesn't exist.
func (n *NotificationConfig) GetTmux() *TmuxNotifierConfig {
	if n.Tmux == nil {
		n.Tmux = &TmuxNotifierConfig{}
	}

	return n.Tmux
}

// GetBell returns the bell notifier config, creating it if it doesn't exist.
func (n *NotificationConfig) GetBell() *BellNotifierConfig {
	if n.Bell == nil {
		n.Bell = &BellNotifierConfig{}
	}

	return n.Bell
}

// NotifierConfig is the base configuration shared by all notifiers.
type NotifierConfig struct {
	// Enabled controls whether the notifier may be registered.
	// Default: true
	Enabled *bool `json:"enabled,omitempty" koanf:"enabled" toml:"enabled,omitempty"`
}

// IsEnabled returns true if the notifier is enabled.
// Returns true if Enabled is nil (default behavior).
func (c *NotifierConfig) IsEnabled() bool {
	if c.Enabled == nil {
		return true
	}

	return *c.Enabled
}

// TmuxNotifierConfig configures the tmux notifier. The option keys follow the
// names tmux notifiers have traditionally used in Guardfiles.
type TmuxNotifierConfig struct {
	NotifierConfig `koanf:",squash"`

	// Timeout is how long the message stays in the status line, in seconds.
	// Default: 0.1
	Timeout *float64 `json:"timeout,omitempty" koanf:"timeout" toml:"timeout,omitempty"`

	// DisplayMessage shows the notification text with display-message.
	// Default: true
	DisplayMessage *bool `json:"display_message,omitempty" koanf:"display_message" toml:"display_message,omitempty"`

	// DisplayTitle prefixes the message with the notification title.
	// Default: true
	DisplayTitle *bool `json:"display_title,omitempty" koanf:"display_title" toml:"display_title,omitempty"`

	// DisplayOnAllClients shows the message on every attached client instead
	// of the current one.
	// Default: false
	DisplayOnAllClients *bool `json:"display_on_all_clients,omitempty" koanf:"display_on_all_clients" toml:"display_on_all_clients,omitempty"`

	// DefaultMessageColor is the message foreground color.
	// Default: "black"
	DefaultMessageColor string `json:"default_message_color,omitempty" koanf:"default_message_color" toml:"default_message_color,omitempty"`

	// Success is the color for successful runs.
	// Default: "colour22"
	Success string `json:"success,omitempty" koanf:"success" toml:"success,omitempty"`

	// Failure is the color for failed runs.
	// Default: "colour124"
	Failure string `json:"failure,omitempty" koanf:"failure" toml:"failure,omitempty"`

	// Pending is the color while a run is in progress.
	// Default: "colour166"
	Pending string `json:"pending,omitempty" koanf:"pending" toml:"pending,omitempty"`

	// ColorLocation lists the tmux options that receive the status color.
	// Default: ["status-left-bg", "pane-active-border-fg", "pane-border-fg"]
	ColorLocation []string `json:"color_location,omitempty" koanf:"color_location" toml:"color_location,omitempty"`

	// LineSeparator joins multi-line messages into one status line.
	// Default: " - "
	LineSeparator string `json:"line_separator,omitempty" koanf:"line_separator" toml:"line_separator,omitempty"`
}

// BellNotifierConfig configures the terminal bell notifier.
type BellNotifierConfig struct {
	NotifierConfig `koanf:",squash"`

	// CustomCommand is an optional command to run instead of sending a bell
	// character to /dev/tty. It is executed via sh -c.
	// Example: "paplay /usr/share/sounds/freedesktop/stereo/bell.oga"
	// Default: "" (use bell character)
	CustomCommand string `json:"custom_command,omitempty" koanf:"custom_command" toml:"custom_command,omitempty"`
}
