package main

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	internalconfig "github.com/smykla-skalski/tmuxflash/internal/config"
	"github.com/smykla-skalski/tmuxflash/internal/exec"
	"github.com/smykla-skalski/tmuxflash/internal/notifier"
	"github.com/smykla-skalski/tmuxflash/internal/tmux"
	"github.com/smykla-skalski/tmuxflash/internal/xdg"
	"github.com/smykla-skalski/tmuxflash/pkg/config"
	"github.com/smykla-skalski/tmuxflash/pkg/logger"
)

// tmuxCommandTimeout bounds single tmux invocations.
const tmuxCommandTimeout = 5 * time.Second

// configFlags lists the flags that feed the config loader.
var configFlags = []string{"tmux-path", "timeout", "command", "debounce", "run-on-start", "bell"}

func newLogger() (*logger.SlogAdapter, error) {
	log, err := logger.NewFileLogger(xdg.LogFile(), debugMode, traceMode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}

	return log, nil
}

// collectFlags returns the values of config flags set on the command line.
func collectFlags(cmd *cobra.Command) map[string]any {
	flags := make(map[string]any)

	for _, name := range configFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}

		flags[name] = flagValue(f)
	}

	return flags
}

func flagValue(f *pflag.Flag) any {
	if f.Value.Type() == "bool" {
		return f.Value.String() == "true"
	}

	return f.Value.String()
}

func loadConfig(cmd *cobra.Command, log logger.Logger) (*config.Config, error) {
	loader, err := internalconfig.NewKoanfLoader()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config loader")
	}

	if configPath != "" {
		path, err := xdg.ExpandPath(configPath)
		if err != nil {
			return nil, errors.Wrap(err, "invalid --config path")
		}

		loader.WithProjectConfig(path)
	}

	cfg, err := loader.Load(collectFlags(cmd))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	global := ""
	if loader.HasGlobalConfig() {
		global = loader.GlobalConfigPath()
	}

	log.Debug("configuration loaded",
		"global", global,
		"project", loader.FindProjectConfigPath(),
	)

	return cfg, nil
}

// notifierSetup is the notifier registry together with what was registered.
type notifierSetup struct {
	registry *notifier.Registry
	profile  notifier.Profile
	inTmux   bool
}

// setupNotifiers builds the registry and runs the configurator against env.
// The bell is registered when enabled in the config.
func setupNotifiers(cfg *config.Config, env notifier.Environment, log logger.Logger) *notifierSetup {
	runner := exec.NewCommandRunner(tmuxCommandTimeout)
	client := tmux.NewClient(runner, tmux.WithTmuxPath(cfg.GetGlobal().TmuxPath))

	notification := cfg.GetNotification()
	tmuxCfg := notification.GetTmux()
	bellCfg := notification.GetBell()

	registry := notifier.NewRegistry(log)
	registry.AddFactory(notifier.KindTmux, notifier.NewTmuxFactory(client, tmuxSettings(tmuxCfg), log))
	registry.AddFactory(notifier.KindBell, notifier.NewBellFactory(
		log,
		notifier.WithCustomCommand(bellCfg.CustomCommand, runner),
	))

	setup := &notifierSetup{
		registry: registry,
		profile:  notifier.ProfileFromConfig(tmuxCfg),
		inTmux:   notifier.InMultiplexerSession(env),
	}

	if tmuxCfg.IsEnabled() {
		notifier.NewConfigurator(registry, setup.profile, log).Configure(env)
	} else {
		log.Debug("tmux notifier disabled by configuration")
	}

	if bellCfg.IsEnabled() {
		if err := registry.Register(notifier.KindBell, notifier.Profile{}); err != nil {
			log.Error("failed to register notifier", "kind", notifier.KindBell, "error", err)
		}
	}

	return setup
}

func tmuxSettings(cfg *config.TmuxNotifierConfig) notifier.TmuxSettings {
	settings := notifier.TmuxSettings{LineSeparator: cfg.LineSeparator}

	if cfg.DisplayOnAllClients != nil {
		settings.DisplayOnAllClients = *cfg.DisplayOnAllClients
	}

	return settings
}
