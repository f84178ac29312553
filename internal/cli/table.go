package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hetznerctl/internal/theme"
)

// StyledTable renders a rounded box-drawing table for terminal output.
type StyledTable struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewStyledTable creates a styled table with the given headers.
func NewStyledTable(headers ...string) *StyledTable {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	return &StyledTable{headers: headers, widths: widths}
}

// AddRow adds a row to the table.
func (t *StyledTable) AddRow(cols ...string) {
	for i, c := range cols {
		if i < len(t.widths) {
			if w := runewidth.StringWidth(c); w > t.widths[i] {
				t.widths[i] = w
			}
		}
	}
	t.rows = append(t.rows, cols)
}

// Render returns the table as a styled string.
func (t *StyledTable) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	th := theme.Current()
	border := lipgloss.NewStyle().Foreground(th.Border)
	header := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	text := lipgloss.NewStyle().Foreground(th.Text)

	hline := func(left, mid, right string) string {
		var line strings.Builder
		line.WriteString(left)
		for i, w := range t.widths {
			line.WriteString(strings.Repeat("─", w+2))
			if i < len(t.widths)-1 {
				line.WriteString(mid)
			}
		}
		line.WriteString(right)
		return border.Render(line.String())
	}

	var sb strings.Builder
	sb.WriteString(hline("╭", "┬", "╮"))
	sb.WriteString("\n")

	sb.WriteString(border.Render("│"))
	for i, h := range t.headers {
		sb.WriteString(" ")
		sb.WriteString(header.Render(runewidth.FillRight(h, t.widths[i])))
		sb.WriteString(" ")
		sb.WriteString(border.Render("│"))
	}
	sb.WriteString("\n")

	sb.WriteString(hline("├", "┼", "┤"))
	sb.WriteString("\n")

	for _, row := range t.rows {
		sb.WriteString(border.Render("│"))
		for i := range t.headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(" ")
			sb.WriteString(text.Render(runewidth.FillRight(cell, t.widths[i])))
			sb.WriteString(" ")
			sb.WriteString(border.Render("│"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(hline("╰", "┴", "╯"))
	sb.WriteString("\n")
	return sb.String()
}

// SuccessMessage renders a success line with icon.
func SuccessMessage(msg string) string {
	style := lipgloss.NewStyle().Foreground(theme.Current().Success)
	return style.Render("✓ " + msg)
}

// WarningMessage renders a warning line with icon.
func WarningMessage(msg string) string {
	style := lipgloss.NewStyle().Foreground(theme.Current().Warning)
	return style.Render("⚠ " + msg)
}
