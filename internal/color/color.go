// Package color provides color detection, theming and tmux color swatches for
// CLI output.
package color

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Enabled reports whether output to f should be colored.
//
// Color is disabled when any of:
//   - noColorFlag is true (--no-color CLI flag)
//   - NO_COLOR env is set (any value, per https://no-color.org)
//   - CLICOLOR=0 or TERM=dumb
//   - f is not a terminal
func Enabled(noColorFlag bool, f *os.File) bool {
	if noColorFlag {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("CLICOLOR") == "0" || os.Getenv("TERM") == "dumb" {
		return false
	}

	return IsTerminal(f)
}

// IsTerminal returns true if f is a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// tmux names for the 16 ANSI colors.
var namedColors = map[string]int{
	"black":         0,
	"red":           1,
	"green":         2,
	"yellow":        3,
	"blue":          4,
	"magenta":       5,
	"cyan":          6,
	"white":         7,
	"brightblack":   8,
	"brightred":     9,
	"brightgreen":   10,
	"brightyellow":  11,
	"brightblue":    12,
	"brightmagenta": 13,
	"brightcyan":    14,
	"brightwhite":   15,
}

// TmuxColor converts a tmux color name (colour22, color22, red, #ff8800) to a
// lipgloss color. The boolean is false for names with no terminal equivalent,
// such as "default".
func TmuxColor(name string) (lipgloss.Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	if strings.HasPrefix(name, "#") && len(name) == 7 {
		return lipgloss.Color(name), true
	}

	if n, ok := namedColors[name]; ok {
		return lipgloss.Color(strconv.Itoa(n)), true
	}

	for _, prefix := range []string{"colour", "color"} {
		index, found := strings.CutPrefix(name, prefix)
		if !found {
			continue
		}

		n, err := strconv.Atoi(index)
		if err != nil || n < 0 || n > 255 {
			return "", false
		}

		return lipgloss.Color(index), true
	}

	return "", false
}

// Theme holds lipgloss styles for CLI output.
type Theme struct {
	Header  lipgloss.Style
	Key     lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	color   bool
}

// NewTheme creates a Theme. When color is false, all styles are empty (no ANSI codes).
func NewTheme(color bool) Theme {
	if !color {
		return Theme{}
	}

	return Theme{
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Key:     lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		color:   true,
	}
}

// Swatch renders name on a block of its own tmux color. Without color, or for
// unknown names, name is returned as is.
func (t Theme) Swatch(name string) string {
	if !t.color {
		return name
	}

	c, ok := TmuxColor(name)
	if !ok {
		return name
	}

	return lipgloss.NewStyle().Background(c).Render("  ") + " " + name
}
