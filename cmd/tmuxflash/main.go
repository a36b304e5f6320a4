// Package main provides the CLI entry point for tmuxflash.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	// ExitCodeOK is returned when the command succeeded.
	ExitCodeOK = 0

	// ExitCodeError is returned for any failure.
	ExitCodeError = 1
)

var (
	debugMode   bool
	traceMode   bool
	configPath  string
	noColorFlag bool
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return ExitCodeError
	}

	return ExitCodeOK
}

var rootCmd = &cobra.Command{
	Use:   "tmuxflash [paths...]",
	Short: "Flash build results in the tmux status bar",
	Long: `tmuxflash watches a project tree, runs a command when files change and
reports pending, success and failure by coloring the tmux status bar and
showing a short message.

The tmux notifier is only registered when running inside tmux (TMUX is set).`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		checkVersionFlag()
	},
	Args:              cobra.ArbitraryArgs,
	RunE:              runWatch,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&traceMode, "trace", false, "Enable trace logging")
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Path to project configuration file (default: .tmuxflash/config.toml or .tmuxflash.toml)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&noColorFlag,
		"no-color",
		false,
		"Disable colored output",
	)
	rootCmd.PersistentFlags().String(
		"tmux-path",
		"",
		"Path to the tmux binary (default: tmux from PATH)",
	)

	addWatchFlags(rootCmd)
}
