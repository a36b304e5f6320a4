package notifier

import (
	"slices"

	"github.com/smykla-skalski/tmuxflash/pkg/config"
)

// DefaultLineSeparator joins the lines of a multi-line message.
const DefaultLineSeparator = " - "

var defaultColorLocations = []string{
	"status-left-bg",
	"pane-active-border-fg",
	"pane-border-fg",
}

// Profile is the set of options the tmux notifier is registered with.
type Profile struct {
	// TimeoutSeconds is how long a message stays in the status line.
	TimeoutSeconds float64

	// DisplayMessage shows the notification text.
	DisplayMessage bool

	// DisplayTitle prefixes the text with the notification title.
	DisplayTitle bool

	// DefaultMessageColor is the message foreground.
	DefaultMessageColor string

	SuccessColor string
	FailureColor string
	PendingColor string

	// ColorLocations are the tmux options that receive the status color.
	ColorLocations []string
}

// DefaultTmuxProfile returns the profile the configurator registers.
func DefaultTmuxProfile() Profile {
	return Profile{
		TimeoutSeconds:      0.1,
		DisplayMessage:      true,
		DisplayTitle:        true,
		DefaultMessageColor: "black",
		SuccessColor:        "colour22",
		FailureColor:        "colour124",
		PendingColor:        "colour166",
		ColorLocations:      slices.Clone(defaultColorLocations),
	}
}

// ProfileFromConfig builds a profile from the tmux notifier config. Unset
// fields keep their default value.
func ProfileFromConfig(cfg *config.TmuxNotifierConfig) Profile {
	p := DefaultTmuxProfile()
	if cfg == nil {
		return p
	}

	if cfg.Timeout != nil {
		p.TimeoutSeconds = *cfg.Timeout
	}

	if cfg.DisplayMessage != nil {
		p.DisplayMessage = *cfg.DisplayMessage
	}

	if cfg.DisplayTitle != nil {
		p.DisplayTitle = *cfg.DisplayTitle
	}

	if cfg.DefaultMessageColor != "" {
		p.DefaultMessageColor = cfg.DefaultMessageColor
	}

	if cfg.Success != "" {
		p.SuccessColor = cfg.Success
	}

	if cfg.Failure != "" {
		p.FailureColor = cfg.Failure
	}

	if cfg.Pending != "" {
		p.PendingColor = cfg.Pending
	}

	if cfg.ColorLocation != nil {
		p.ColorLocations = slices.Clone(cfg.ColorLocation)
	}

	return p
}

// Clone returns a copy that shares no memory with p.
func (p Profile) Clone() Profile {
	p.ColorLocations = slices.Clone(p.ColorLocations)

	return p
}

// Locations returns a copy of the color locations.
func (p Profile) Locations() []string {
	return slices.Clone(p.ColorLocations)
}

// Options renders the profile as an option map keyed the way the config file
// spells them.
func (p Profile) Options() map[string]any {
	return map[string]any{
		"timeout":               p.TimeoutSeconds,
		"display_message":       p.DisplayMessage,
		"display_title":         p.DisplayTitle,
		"default_message_color": p.DefaultMessageColor,
		"success":               p.SuccessColor,
		"failure":               p.FailureColor,
		"pending":               p.PendingColor,
		"color_location":        p.Locations(),
	}
}

// ColorFor returns the color for status. Statuses without a color leave the
// status bar untouched.
func (p Profile) ColorFor(status Status) (string, bool) {
	var color string

	switch status {
	case StatusSuccess:
		color = p.SuccessColor
	case StatusFailed:
		color = p.FailureColor
	case StatusPending:
		color = p.PendingColor
	default:
		return "", false
	}

	return color, color != ""
}
