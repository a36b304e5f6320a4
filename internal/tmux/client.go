// Package tmux provides a thin client over the tmux command line.
package tmux

import (
	"context"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/tmuxflash/internal/exec"
)

// DefaultPath is the tmux binary name resolved through PATH.
const DefaultPath = "tmux"

var (
	// ErrCommandFailed is returned when a tmux invocation exits non-zero.
	ErrCommandFailed = errors.New("tmux command failed")

	// ErrUnknownVersion is returned when tmux -V prints no major.minor version.
	ErrUnknownVersion = errors.New("unknown tmux version")
)

// StyleOptionsVersion is the first tmux release without the *-fg/*-bg/*-attr
// options. From here on colors live in *-style options.
var StyleOptionsVersion = semver.MustParse("2.9.0")

// versionNumber matches "3.3" in "tmux 3.3a" or "tmux next-3.5".
var versionNumber = regexp.MustCompile(`(\d+)\.(\d+)`)

// Client runs tmux subcommands.
type Client struct {
	runner   exec.CommandRunner
	tmuxPath string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTmuxPath sets a custom tmux binary path.
func WithTmuxPath(path string) ClientOption {
	return func(c *Client) {
		if path != "" {
			c.tmuxPath = path
		}
	}
}

// NewClient creates a new tmux client.
func NewClient(runner exec.CommandRunner, opts ...ClientOption) *Client {
	c := &Client{
		runner:   runner,
		tmuxPath: DefaultPath,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Path returns the tmux binary the client invokes.
func (c *Client) Path() string {
	return c.tmuxPath
}

// Version runs tmux -V and parses the release number. Letter suffixes
// ("3.3a") are dropped.
func (c *Client) Version(ctx context.Context) (*semver.Version, error) {
	out, err := c.run(ctx, "-V")
	if err != nil {
		return nil, err
	}

	return ParseVersion(out)
}

// ParseVersion parses the output of tmux -V.
func ParseVersion(out string) (*semver.Version, error) {
	out = strings.TrimSpace(out)

	match := versionNumber.FindString(out)
	if match == "" {
		return nil, errors.Wrapf(ErrUnknownVersion, "%q", out)
	}

	v, err := semver.NewVersion(match)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownVersion, "parsing %q: %v", out, err)
	}

	return v, nil
}

// SupportsStyleOptions reports whether v configures colors through *-style
// options only.
func SupportsStyleOptions(v *semver.Version) bool {
	return v != nil && !v.LessThan(StyleOptionsVersion)
}

// SetOption sets a global option. Unknown options are ignored by tmux (-q).
func (c *Client) SetOption(ctx context.Context, name, value string) error {
	_, err := c.run(ctx, "set-option", "-gq", name, value)

	return err
}

// UnsetOption removes a global option so its default applies again.
func (c *Client) UnsetOption(ctx context.Context, name string) error {
	_, err := c.run(ctx, "set-option", "-gqu", name)

	return err
}

// ShowOption returns the value of a global option. The boolean is false when
// the option has no value set.
func (c *Client) ShowOption(ctx context.Context, name string) (string, bool, error) {
	out, err := c.run(ctx, "show-options", "-gqv", name)
	if err != nil {
		return "", false, err
	}

	value := strings.TrimRight(out, "\n")
	if value == "" {
		return "", false, nil
	}

	return value, true, nil
}

// DisplayMessage shows text in the status line of target, or of the current
// client when target is empty.
func (c *Client) DisplayMessage(ctx context.Context, target, text string) error {
	args := []string{"display-message"}
	if target != "" {
		args = append(args, "-c", target)
	}

	// Text starting with a dash must not be read as a flag.
	args = append(args, "--", text)

	_, err := c.run(ctx, args...)

	return err
}

// ListClients returns the names of all attached clients.
func (c *Client) ListClients(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "list-clients", "-F", "#{client_name}")
	if err != nil {
		return nil, err
	}

	var clients []string

	for line := range strings.SplitSeq(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			clients = append(clients, line)
		}
	}

	return clients, nil
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	result := c.runner.Run(ctx, c.tmuxPath, args...)
	if result.Success() {
		return result.Stdout, nil
	}

	err := errors.Wrapf(ErrCommandFailed, "%s %s", c.tmuxPath, args[0])

	if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
		err = errors.Wrapf(err, "%s", stderr)
	}

	if result.Err != nil {
		err = errors.WithSecondaryError(err, result.Err)
	}

	return "", err
}
