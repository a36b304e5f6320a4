package doctor

import (
	"context"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/tmuxflash/internal/exec"
	"github.com/smykla-skalski/tmuxflash/internal/notifier"
	"github.com/smykla-skalski/tmuxflash/internal/tmux"
)

// TmuxRunner runs tmux -V.
type TmuxRunner interface {
	Path() string
	Version(ctx context.Context) (*semver.Version, error)
}

// TmuxBinaryChecker verifies the configured tmux binary.
type TmuxBinaryChecker struct {
	tools    exec.ToolChecker
	client   TmuxRunner
	disabled bool
}

// NewTmuxBinaryChecker creates a TmuxBinaryChecker.
func NewTmuxBinaryChecker(tools exec.ToolChecker, client TmuxRunner) *TmuxBinaryChecker {
	return &TmuxBinaryChecker{tools: tools, client: client}
}

// Disabled marks the check as skipped when the tmux notifier is turned off.
func (c *TmuxBinaryChecker) Disabled(disabled bool) *TmuxBinaryChecker {
	c.disabled = disabled

	return c
}

func (*TmuxBinaryChecker) Name() string       { return "tmux binary" }
func (*TmuxBinaryChecker) Category() Category { return CategoryTmux }

// Check implements HealthChecker.
func (c *TmuxBinaryChecker) Check(ctx context.Context) CheckResult {
	if c.disabled {
		return Skip(c.Name(), "tmux notifier is disabled")
	}

	path, err := c.tools.LookPath(c.client.Path())
	if err != nil {
		return FailError(c.Name(), err.Error()).
			WithDetails("Install tmux or set global.tmux_path")
	}

	v, err := c.client.Version(ctx)

	switch {
	case errors.Is(err, tmux.ErrUnknownVersion):
		return FailWarning(c.Name(), path+" reports no version").
			WithDetails(err.Error(), "Colors are set through *-style options, which need tmux 2.9 or later")
	case err != nil:
		return FailError(c.Name(), path+" -V failed").WithDetails(err.Error())
	case !tmux.SupportsStyleOptions(v):
		return FailWarning(c.Name(), "tmux "+v.String()+" is older than "+tmux.StyleOptionsVersion.String()).
			WithDetails("Colors are set through the legacy *-fg/*-bg options", "Upgrade tmux to 2.9 or later")
	}

	return Pass(c.Name(), path+" is available (tmux "+v.String()+")")
}

// SessionChecker reports whether the process runs inside tmux.
type SessionChecker struct {
	env notifier.Environment
}

// NewSessionChecker creates a SessionChecker.
func NewSessionChecker(env notifier.Environment) *SessionChecker {
	return &SessionChecker{env: env}
}

func (*SessionChecker) Name() string       { return "tmux session" }
func (*SessionChecker) Category() Category { return CategoryTmux }

// Check implements HealthChecker.
func (c *SessionChecker) Check(context.Context) CheckResult {
	if notifier.InMultiplexerSession(c.env) {
		return Pass(c.Name(), "running inside tmux")
	}

	return FailWarning(c.Name(), notifier.SessionEnvVar+" is not set, the tmux notifier will not be registered").
		WithDetails("Run tmuxflash from a tmux pane")
}

// ConfigChecker loads and validates the configuration.
type ConfigChecker struct {
	load func() error
}

// NewConfigChecker creates a ConfigChecker calling load.
func NewConfigChecker(load func() error) *ConfigChecker {
	return &ConfigChecker{load: load}
}

func (*ConfigChecker) Name() string       { return "configuration" }
func (*ConfigChecker) Category() Category { return CategoryConfig }

// Check implements HealthChecker.
func (c *ConfigChecker) Check(context.Context) CheckResult {
	if err := c.load(); err != nil {
		return FailError(c.Name(), err.Error())
	}

	return Pass(c.Name(), "configuration is valid")
}

// StateDirChecker verifies the state directory is writable.
type StateDirChecker struct {
	dir string
}

// NewStateDirChecker creates a StateDirChecker for dir.
func NewStateDirChecker(dir string) *StateDirChecker {
	return &StateDirChecker{dir: dir}
}

func (*StateDirChecker) Name() string       { return "state directory" }
func (*StateDirChecker) Category() Category { return CategoryState }

// Check implements HealthChecker.
func (c *StateDirChecker) Check(context.Context) CheckResult {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return FailWarning(c.Name(), "cannot create "+c.dir).WithDetails(err.Error())
	}

	f, err := os.CreateTemp(c.dir, ".doctor-*")
	if err != nil {
		return FailWarning(c.Name(), c.dir+" is not writable").WithDetails(err.Error())
	}

	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	return Pass(c.Name(), c.dir+" is writable")
}
