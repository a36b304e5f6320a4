package doctor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/smykla-skalski/tmuxflash/internal/color"
)

func statusIcon(r CheckResult, theme color.Theme) string {
	switch {
	case r.Status == StatusPass:
		return theme.Success.Render("ok")
	case r.Status == StatusSkipped:
		return theme.Muted.Render("skip")
	case r.IsError():
		return theme.Failure.Render("fail")
	default:
		return theme.Header.Render("warn")
	}
}

// RenderTable renders results as a table followed by a summary line.
func RenderTable(results []CheckResult, verbose bool, theme color.Theme) string {
	if len(results) == 0 {
		return ""
	}

	var buf bytes.Buffer

	t := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)

	t.Header([]string{"", "Category", "Check", "Message"})

	for _, r := range results {
		message := r.Message
		if verbose && len(r.Details) > 0 {
			message += " (" + strings.Join(r.Details, "; ") + ")"
		}

		_ = t.Append([]string{statusIcon(r, theme), string(r.Category), theme.Key.Render(r.Name), message})
	}

	_ = t.Render()

	s := Summarize(results)

	return fmt.Sprintf("%s\n%d passed, %d errors, %d warnings, %d skipped",
		strings.TrimRight(buf.String(), "\n"), s.Passed, s.Errors, s.Warnings, s.Skipped)
}
