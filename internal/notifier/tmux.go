package notifier

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/tmuxflash/internal/tmux"
	"github.com/smykla-skalski/tmuxflash/pkg/logger"
)

const (
	optionDisplayTime = "display-time"
	optionMessageFG   = "message-fg"
	optionMessageBG   = "message-bg"
)

// TmuxClient is the subset of the tmux client the notifier uses.
type TmuxClient interface {
	SetOption(ctx context.Context, name, value string) error
	UnsetOption(ctx context.Context, name string) error
	ShowOption(ctx context.Context, name string) (string, bool, error)
	DisplayMessage(ctx context.Context, target, text string) error
	ListClients(ctx context.Context) ([]string, error)
	Version(ctx context.Context) (*semver.Version, error)
}

// TmuxSettings are tmux notifier settings that are not part of the profile.
type TmuxSettings struct {
	// DisplayOnAllClients shows messages on every attached client.
	DisplayOnAllClients bool

	// LineSeparator joins multi-line messages. Empty means DefaultLineSeparator.
	LineSeparator string
}

type savedOption struct {
	value string
	set   bool
}

// tmuxOption is one set-option assignment.
type tmuxOption struct {
	name  string
	value string
}

// styleOption maps a color option to the style option replacing it in tmux
// 2.9 and the style attribute it sets. Options that are not *-fg, *-bg or
// *-style are returned unchanged with an empty attribute.
func styleOption(name string) (string, string) {
	for _, suffix := range []string{"-fg", "-bg"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return base + "-style", suffix[1:]
		}
	}

	if strings.HasSuffix(name, "-style") {
		return name, "bg"
	}

	return name, ""
}

// resolveOptions turns color assignments into the options to set. With
// styles, assignments sharing a style option are merged into one value
// (message-fg and message-bg become message-style "fg=..,bg=..").
func resolveOptions(assignments []tmuxOption, styles bool) []tmuxOption {
	if !styles {
		return assignments
	}

	var resolved []tmuxOption

	index := make(map[string]int)

	for _, a := range assignments {
		name, attr := styleOption(a.name)

		value := a.value
		if attr != "" {
			value = attr + "=" + a.value
		}

		if i, ok := index[name]; ok && attr != "" {
			resolved[i].value += "," + value

			continue
		}

		index[name] = len(resolved)
		resolved = append(resolved, tmuxOption{name: name, value: value})
	}

	return resolved
}

// TmuxNotifier flashes status colors and messages in tmux.
type TmuxNotifier struct {
	client   TmuxClient
	profile  Profile
	settings TmuxSettings
	log      logger.Logger

	mu     sync.Mutex
	saved  map[string]savedOption
	styles *bool
}

// NewTmuxNotifier creates a tmux notifier.
func NewTmuxNotifier(
	client TmuxClient,
	profile Profile,
	settings TmuxSettings,
	log logger.Logger,
) *TmuxNotifier {
	if settings.LineSeparator == "" {
		settings.LineSeparator = DefaultLineSeparator
	}

	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &TmuxNotifier{
		client:   client,
		profile:  profile.Clone(),
		settings: settings,
		log:      log.With("notifier", KindTmux),
	}
}

// NewTmuxFactory returns a Factory building tmux notifiers over client.
func NewTmuxFactory(client TmuxClient, settings TmuxSettings, log logger.Logger) Factory {
	return func(profile Profile) (Notifier, error) {
		if client == nil {
			return nil, errors.New("tmux client is nil")
		}

		return NewTmuxNotifier(client, profile, settings, log), nil
	}
}

// Name implements Notifier.
func (*TmuxNotifier) Name() string {
	return string(KindTmux)
}

// Profile returns the notifier's profile.
func (t *TmuxNotifier) Profile() Profile {
	return t.profile.Clone()
}

// Notify implements Notifier.
func (t *TmuxNotifier) Notify(ctx context.Context, n Notification) error {
	var errs []error

	styles := t.useStyles(ctx)

	color, hasColor := t.profile.ColorFor(n.Status)
	if hasColor {
		for _, opt := range resolveOptions(t.locationOptions(color), styles) {
			if err := t.client.SetOption(ctx, opt.name, opt.value); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if t.profile.DisplayMessage {
		if err := t.display(ctx, n, color, hasColor, styles); err != nil {
			errs = append(errs, err)
		}
	}

	t.log.Debug("notified", "status", n.Status, "color", color)

	return errors.Join(errs...)
}

func (t *TmuxNotifier) display(
	ctx context.Context,
	n Notification,
	color string,
	hasColor bool,
	styles bool,
) error {
	text := t.MessageText(n)
	if text == "" {
		return nil
	}

	message := []tmuxOption{{optionMessageFG, t.profile.DefaultMessageColor}}
	if hasColor {
		message = append(message, tmuxOption{optionMessageBG, color})
	}

	options := append(
		[]tmuxOption{{optionDisplayTime, strconv.Itoa(t.displayTimeMillis())}},
		resolveOptions(message, styles)...,
	)

	for _, opt := range options {
		if err := t.client.SetOption(ctx, opt.name, opt.value); err != nil {
			return err
		}
	}

	if !t.settings.DisplayOnAllClients {
		return t.client.DisplayMessage(ctx, "", text)
	}

	clients, err := t.client.ListClients(ctx)
	if err != nil {
		return err
	}

	var errs []error

	for _, c := range clients {
		if err := t.client.DisplayMessage(ctx, c, text); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// MessageText renders the status line text for n. tmux format characters are
// escaped.
func (t *TmuxNotifier) MessageText(n Notification) string {
	var lines []string

	for line := range strings.SplitSeq(n.Message, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	message := strings.Join(lines, t.settings.LineSeparator)
	title := strings.TrimSpace(n.Title)

	var text string

	switch {
	case t.profile.DisplayTitle && title != "" && message != "":
		text = title + " - " + message
	case t.profile.DisplayTitle && title != "":
		text = title
	default:
		text = message
	}

	return strings.ReplaceAll(text, "#", "##")
}

func (t *TmuxNotifier) displayTimeMillis() int {
	ms := int(math.Round(t.profile.TimeoutSeconds * 1000))

	return max(ms, 1)
}

func (t *TmuxNotifier) locationOptions(color string) []tmuxOption {
	options := make([]tmuxOption, 0, len(t.profile.ColorLocations))

	for _, location := range t.profile.ColorLocations {
		options = append(options, tmuxOption{location, color})
	}

	return options
}

// useStyles reports whether colors go through *-style options. The tmux
// version is asked once per notifier. An unknown version is treated as
// current tmux.
func (t *TmuxNotifier) useStyles(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.styles != nil {
		return *t.styles
	}

	styles := true

	v, err := t.client.Version(ctx)
	if err != nil {
		t.log.Debug("tmux version unknown, using style options", "error", err)
	} else {
		styles = tmux.SupportsStyleOptions(v)
		t.log.Debug("detected tmux version", "version", v.String(), "styles", styles)
	}

	t.styles = &styles

	return styles
}

// touchedOptions lists every global option Notify may change.
func (t *TmuxNotifier) touchedOptions(styles bool) []string {
	assignments := t.locationOptions("")

	if t.profile.DisplayMessage {
		assignments = append(assignments, tmuxOption{name: optionMessageFG}, tmuxOption{name: optionMessageBG})
	}

	opts := []string{}
	if t.profile.DisplayMessage {
		opts = append(opts, optionDisplayTime)
	}

	for _, opt := range resolveOptions(assignments, styles) {
		opts = append(opts, opt.name)
	}

	slices.Sort(opts)

	return slices.Compact(opts)
}

// TurnOn records the current value of every option Notify may change.
func (t *TmuxNotifier) TurnOn(ctx context.Context) error {
	saved := make(map[string]savedOption)

	for _, name := range t.touchedOptions(t.useStyles(ctx)) {
		value, set, err := t.client.ShowOption(ctx, name)
		if err != nil {
			return errors.Wrapf(err, "saving %s", name)
		}

		saved[name] = savedOption{value: value, set: set}
	}

	t.mu.Lock()
	t.saved = saved
	t.mu.Unlock()

	t.log.Debug("saved tmux options", "count", len(saved))

	return nil
}

// TurnOff restores the options recorded by TurnOn. It is a no-op when TurnOn
// was never called.
func (t *TmuxNotifier) TurnOff(ctx context.Context) error {
	t.mu.Lock()
	saved := t.saved
	t.saved = nil
	t.mu.Unlock()

	names := make([]string, 0, len(saved))
	for name := range saved {
		names = append(names, name)
	}

	slices.Sort(names)

	var errs []error

	for _, name := range names {
		opt := saved[name]

		var err error
		if opt.set {
			err = t.client.SetOption(ctx, name, opt.value)
		} else {
			err = t.client.UnsetOption(ctx, name)
		}

		if err != nil {
			errs = append(errs, errors.Wrapf(err, "restoring %s", name))
		}
	}

	t.log.Debug("restored tmux options", "count", len(names))

	return errors.Join(errs...)
}
