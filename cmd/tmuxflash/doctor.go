package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/tmuxflash/internal/color"
	"github.com/smykla-skalski/tmuxflash/internal/doctor"
	"github.com/smykla-skalski/tmuxflash/internal/exec"
	"github.com/smykla-skalski/tmuxflash/internal/notifier"
	"github.com/smykla-skalski/tmuxflash/internal/tmux"
	"github.com/smykla-skalski/tmuxflash/internal/xdg"
)

// ErrChecksFailed is returned when at least one check reports an error.
var ErrChecksFailed = errors.New("health checks failed")

var doctorVerbose bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tmuxflash setup",
	Long: `Check that tmux can be run, whether this shell is inside tmux, that the
configuration loads and that the state directory is writable.

Exits non-zero when any check fails with an error. Warnings do not fail.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false, "Show details for every check")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	defer func() { _ = log.Close() }()

	cfg, loadErr := loadConfig(cmd, log)

	tmuxPath := ""
	tmuxEnabled := true

	if cfg != nil {
		tmuxPath = cfg.GetGlobal().TmuxPath
		tmuxEnabled = cfg.GetNotification().GetTmux().IsEnabled()
	}

	client := tmux.NewClient(
		exec.NewCommandRunner(tmuxCommandTimeout),
		tmux.WithTmuxPath(tmuxPath),
	)

	registry := doctor.NewRegistry()
	registry.Register(
		doctor.NewTmuxBinaryChecker(exec.NewToolChecker(), client).Disabled(!tmuxEnabled),
		doctor.NewSessionChecker(notifier.ProcessEnv{}),
		doctor.NewConfigChecker(func() error { return loadErr }),
		doctor.NewStateDirChecker(xdg.StateDir()),
	)

	results := registry.RunAll(cmd.Context())
	theme := color.NewTheme(color.Enabled(noColorFlag, os.Stdout))

	fmt.Fprintln(cmd.OutOrStdout(), doctor.RenderTable(results, doctorVerbose, theme))

	if summary := doctor.Summarize(results); summary.Errors > 0 {
		return errors.Wrapf(ErrChecksFailed, "%d error(s)", summary.Errors)
	}

	return nil
}
