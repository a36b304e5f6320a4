package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	internalconfig "github.com/smykla-skalski/tmuxflash/internal/config"
	"github.com/smykla-skalski/tmuxflash/internal/exec"
	"github.com/smykla-skalski/tmuxflash/internal/guard"
	"github.com/smykla-skalski/tmuxflash/internal/notifier"
	"github.com/smykla-skalski/tmuxflash/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch files and run a command on changes",
	Long: `Watch the given paths (default: watch.paths from the config) and run the
configured command whenever files change. Each run is reported as pending, then
success or failed, through every registered notifier.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addWatchFlags(watchCmd)
}

func addWatchFlags(cmd *cobra.Command) {
	cmd.Flags().String("command", "", "Command to run on changes (overrides watch.command)")
	cmd.Flags().String(
		"debounce",
		"",
		"Quiet period before a run (default: "+internalconfig.DefaultDebounce.String()+")",
	)
	cmd.Flags().String(
		"timeout",
		"",
		"Timeout for a single run (default: "+internalconfig.DefaultTimeout.String()+")",
	)
	cmd.Flags().Bool("run-on-start", false, "Run the command once before waiting for changes")
	cmd.Flags().Bool("bell", false, "Also ring the terminal bell on failures")
}

func runWatch(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	defer func() { _ = log.Close() }()

	cfg, err := loadConfig(cmd, log)
	if err != nil {
		return err
	}

	watchCfg := cfg.GetWatch()
	if strings.TrimSpace(watchCfg.Command) == "" {
		return errors.Wrap(guard.ErrNoCommand, "set watch.command in the config or pass --command")
	}

	paths := watchCfg.Paths
	if len(args) > 0 {
		paths = args
	}

	workDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setup := setupNotifiers(cfg, notifier.ProcessEnv{}, log)
	if setup.registry.Len() == 0 {
		reason := "not inside tmux"
		if setup.inTmux {
			reason = "the tmux notifier is disabled"
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "No notifier registered: %s and the bell is disabled.\n", reason)
	}

	g, err := guard.New(exec.NewCommandRunner(0), setup.registry, guard.Options{
		Command:    watchCfg.Command,
		Title:      watchCfg.Title,
		Dir:        workDir,
		Timeout:    cfg.GetGlobal().DefaultTimeout.ToDuration(),
		RunOnStart: watchCfg.ShouldRunOnStart(),
	}, log)
	if err != nil {
		return err
	}

	w, err := watcher.New(watcher.Options{
		Paths:    paths,
		Include:  watchCfg.Include,
		Exclude:  watchCfg.Exclude,
		Debounce: watchCfg.Debounce.ToDuration(),
	}, log)
	if err != nil {
		return errors.Wrap(err, "failed to start watcher")
	}

	if err := setup.registry.TurnOn(ctx); err != nil {
		log.Error("failed to save notifier state", "error", err)
	}

	defer func() {
		if err := setup.registry.TurnOff(context.WithoutCancel(ctx)); err != nil {
			log.Error("failed to restore notifier state", "error", err)
		}
	}()

	log.Info("watching",
		"paths", strings.Join(w.Roots(), ","),
		"command", watchCfg.Command,
		"notifiers", len(setup.registry.Kinds()),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, running %q on change\n",
		strings.Join(w.Roots(), ", "), watchCfg.Command)

	return g.Watch(ctx, w)
}
