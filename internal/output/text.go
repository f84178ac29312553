// Package output provides plain-text rendering helpers for command output
// that must stay machine-friendly when stdout is not a terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table renders aligned columnar text without any styling.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table with the given column headers.
func NewTable(w io.Writer, headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	return &Table{writer: w, headers: headers, widths: widths}
}

// AddRow appends one row, widening columns as needed.
func (t *Table) AddRow(cols ...string) {
	for i, c := range cols {
		if i < len(t.widths) {
			if w := runewidth.StringWidth(c); w > t.widths[i] {
				t.widths[i] = w
			}
		}
	}
	t.rows = append(t.rows, cols)
}

// Render writes headers, a separator and all rows.
func (t *Table) Render() {
	t.printRow(t.headers)
	seps := make([]string, len(t.widths))
	for i, w := range t.widths {
		seps[i] = strings.Repeat("-", w)
	}
	t.printRow(seps)
	for _, row := range t.rows {
		t.printRow(row)
	}
}

func (t *Table) printRow(cols []string) {
	parts := make([]string, len(t.headers))
	for i := range t.headers {
		var cell string
		if i < len(cols) {
			cell = cols[i]
		}
		if i == len(t.headers)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = runewidth.FillRight(cell, t.widths[i])
	}
	fmt.Fprintln(t.writer, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// KeyValue writes an aligned "key: value" line used by detail blocks.
func KeyValue(w io.Writer, indent int, key string, width int, value any) {
	fmt.Fprintf(w, "%s%s  %v\n",
		strings.Repeat(" ", indent),
		runewidth.FillRight(key+":", width+1),
		value)
}

// YesNo renders a boolean the way the detail views expect.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
