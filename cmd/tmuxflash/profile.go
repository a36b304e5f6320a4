package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/tmuxflash/internal/color"
	"github.com/smykla-skalski/tmuxflash/internal/notifier"
)

const (
	formatTable = "table"
	formatTOML  = "toml"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

var profileFormat string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the tmux notifier profile",
	Long: `Show the effective tmux notifier profile and whether it would be registered
in the current environment. Nothing is sent to tmux.`,
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().StringVarP(
		&profileFormat,
		"format",
		"f",
		formatTable,
		"Output format: table or toml",
	)
}

// profileReport is what the profile command prints.
type profileReport struct {
	InTmux     bool
	Enabled    bool
	Registered []string
	Profile    notifier.Profile
}

func runProfile(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	defer func() { _ = log.Close() }()

	cfg, err := loadConfig(cmd, log)
	if err != nil {
		return err
	}

	tmuxCfg := cfg.GetNotification().GetTmux()
	report := profileReport{
		Enabled: tmuxCfg.IsEnabled(),
		Profile: notifier.ProfileFromConfig(tmuxCfg),
	}

	record := notifier.RegistrarFunc(func(kind notifier.Kind, _ notifier.Profile) error {
		report.Registered = append(report.Registered, string(kind))

		return nil
	})

	if report.Enabled {
		_, report.InTmux = notifier.NewConfigurator(record, report.Profile, log).Configure(notifier.ProcessEnv{})
	} else {
		report.InTmux = notifier.InMultiplexerSession(notifier.ProcessEnv{})
	}

	out := cmd.OutOrStdout()

	switch profileFormat {
	case formatTable:
		theme := color.NewTheme(color.Enabled(noColorFlag, os.Stdout))

		_, err = fmt.Fprintln(out, renderProfileTable(report, theme))
	case formatTOML:
		var data []byte

		data, err = marshalProfile(report)
		if err == nil {
			_, err = out.Write(data)
		}
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", profileFormat)
	}

	return err
}

func marshalProfile(report profileReport) ([]byte, error) {
	doc := map[string]any{
		"in_tmux":    report.InTmux,
		"enabled":    report.Enabled,
		"registered": append([]string{}, report.Registered...),
		"profile":    report.Profile.Options(),
	}

	var buf bytes.Buffer

	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)

	if err := encoder.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "failed to encode profile")
	}

	return buf.Bytes(), nil
}

func renderProfileTable(report profileReport, theme color.Theme) string {
	p := report.Profile

	session := theme.Failure.Render("no (TMUX not set)")
	if report.InTmux {
		session = theme.Success.Render("yes")
	}

	registered := "none"
	if len(report.Registered) > 0 {
		registered = strings.Join(report.Registered, ", ")
	}

	rows := [][]string{
		{"tmux session", session},
		{"enabled", strconv.FormatBool(report.Enabled)},
		{"registered", registered},
		{"timeout", strconv.FormatFloat(p.TimeoutSeconds, 'g', -1, 64) + "s"},
		{"display_message", strconv.FormatBool(p.DisplayMessage)},
		{"display_title", strconv.FormatBool(p.DisplayTitle)},
		{"default_message_color", theme.Swatch(p.DefaultMessageColor)},
		{"success", theme.Swatch(p.SuccessColor)},
		{"failure", theme.Swatch(p.FailureColor)},
		{"pending", theme.Swatch(p.PendingColor)},
		{"color_location", strings.Join(p.ColorLocations, ", ")},
	}

	var buf bytes.Buffer

	t := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)

	t.Header([]string{"Option", "Value"})

	for _, row := range rows {
		_ = t.Append([]string{theme.Key.Render(row[0]), row[1]})
	}

	_ = t.Render()

	return strings.TrimRight(buf.String(), "\n")
}
