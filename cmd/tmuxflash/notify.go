package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/tmuxflash/internal/notifier"
)

var (
	notifyStatus string
	notifyTitle  string
)

var notifyCmd = &cobra.Command{
	Use:   "notify [message...]",
	Short: "Send a single notification",
	Long: `Send one notification through the same notifiers the watcher uses.

Outside tmux, with the bell disabled, nothing is registered and the command
exits successfully without doing anything.`,
	Example: `  tmuxflash notify --status success --title api "tests passed"
  make test || tmuxflash notify --status failed "make test"`,
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)

	notifyCmd.Flags().StringVarP(
		&notifyStatus,
		"status",
		"s",
		string(notifier.StatusNotify),
		"Status: "+strings.Join(statusNames(), ", "),
	)
	_ = notifyCmd.RegisterFlagCompletionFunc(
		"status",
		cobra.FixedCompletions(statusNames(), cobra.ShellCompDirectiveNoFileComp),
	)
	notifyCmd.Flags().StringVarP(&notifyTitle, "title", "t", "", "Notification title")
	notifyCmd.Flags().Bool("bell", false, "Also ring the terminal bell")
}

func statusNames() []string {
	statuses := notifier.Statuses()
	names := make([]string, 0, len(statuses))

	for _, status := range statuses {
		names = append(names, string(status))
	}

	return names
}

func runNotify(cmd *cobra.Command, args []string) error {
	status, err := notifier.ParseStatus(notifyStatus)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}

	defer func() { _ = log.Close() }()

	cfg, err := loadConfig(cmd, log)
	if err != nil {
		return err
	}

	setup := setupNotifiers(cfg, notifier.ProcessEnv{}, log)
	if setup.registry.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No notifier registered, nothing to do.")

		return nil
	}

	n := notifier.Notification{
		Title:   notifyTitle,
		Message: strings.Join(args, " "),
		Status:  status,
	}

	if err := setup.registry.Notify(cmd.Context(), n); err != nil {
		return errors.Wrap(err, "failed to deliver notification")
	}

	log.Info("notification sent", "status", status, "notifiers", len(setup.registry.Kinds()))

	return nil
}
