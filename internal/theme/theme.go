// Package theme holds the terminal color palette and decides when styled
// output is appropriate.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Theme is the color palette used by styled output.
type Theme struct {
	Primary lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Border  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var current = Theme{
	Primary: lipgloss.Color("#8aadf4"),
	Text:    lipgloss.Color("#cad3f5"),
	Subtext: lipgloss.Color("#a5adcb"),
	Border:  lipgloss.Color("#5b6078"),
	Success: lipgloss.Color("#a6da95"),
	Warning: lipgloss.Color("#eed49f"),
	Error:   lipgloss.Color("#ed8796"),
}

// Current returns the active palette.
func Current() Theme { return current }

var enabled bool

// Init decides whether styled output is used. Color is off when the user
// asked for it (--no-color), when NO_COLOR is set, or when stdout is not a
// terminal; otherwise lipgloss renders with the profile termenv detects.
func Init(noColor bool) {
	enabled = !noColor &&
		os.Getenv("NO_COLOR") == "" &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	if !enabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// Enabled reports whether styled output is active for this invocation.
func Enabled() bool { return enabled }
