package notifier

import (
	"github.com/smykla-skalski/tmuxflash/pkg/logger"
)

// Kind names a notifier implementation.
type Kind string

const (
	KindTmux Kind = "tmux"
	KindBell Kind = "bell"
)

// Registrar accepts notifier registrations.
type Registrar interface {
	Register(kind Kind, profile Profile) error
}

// RegistrarFunc adapts a function to Registrar.
type RegistrarFunc func(kind Kind, profile Profile) error

// Register implements Registrar.
func (f RegistrarFunc) Register(kind Kind, profile Profile) error {
	return f(kind, profile)
}

// Configurator registers the tmux notifier when running inside tmux.
type Configurator struct {
	registrar Registrar
	profile   Profile
	log       logger.Logger
}

// NewConfigurator creates a Configurator registering profile with registrar.
func NewConfigurator(registrar Registrar, profile Profile, log logger.Logger) *Configurator {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	if registrar == nil {
		registrar = RegistrarFunc(func(Kind, Profile) error { return nil })
	}

	return &Configurator{
		registrar: registrar,
		profile:   profile.Clone(),
		log:       log,
	}
}

// NewTmuxConfigurator creates a Configurator with the default tmux profile.
func NewTmuxConfigurator(registrar Registrar, log logger.Logger) *Configurator {
	return NewConfigurator(registrar, DefaultTmuxProfile(), log)
}

// Configure registers the tmux notifier if env is a tmux session and returns
// the registered profile. Outside tmux nothing is registered and the boolean
// is false. Registration failures are logged, never returned.
func (c *Configurator) Configure(env Environment) (Profile, bool) {
	if !InMultiplexerSession(env) {
		c.log.Debug("not inside tmux, skipping notifier", "env", SessionEnvVar)

		return Profile{}, false
	}

	profile := c.profile.Clone()

	if err := c.registrar.Register(KindTmux, profile.Clone()); err != nil {
		c.log.Error("failed to register notifier", "kind", KindTmux, "error", err)
	} else {
		c.log.Debug("registered notifier", "kind", KindTmux)
	}

	return profile, true
}
