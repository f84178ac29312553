package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "IP", "ID", "NAME")
	tbl.AddRow("203.0.113.10", "123456", "web01")
	tbl.AddRow("198.51.100.2", "7", "")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "IP ") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "123456") || !strings.Contains(lines[2], "web01") {
		t.Errorf("first data row = %q", lines[2])
	}
	// Columns line up: "ID" header and "123456" cell start at the same offset.
	if strings.Index(lines[0], "ID") != strings.Index(lines[2], "123456") {
		t.Errorf("columns misaligned:\n%s", buf.String())
	}
}

func TestTableShortRow(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A", "B")
	tbl.AddRow("only")
	tbl.Render()
	if !strings.Contains(buf.String(), "only") {
		t.Errorf("short row missing: %q", buf.String())
	}
}

func TestKeyValue(t *testing.T) {
	var buf bytes.Buffer
	KeyValue(&buf, 2, "Status", 10, "ready")
	got := buf.String()
	if !strings.HasPrefix(got, "  Status:") || !strings.Contains(got, "ready") {
		t.Errorf("KeyValue output = %q", got)
	}
}

func TestYesNo(t *testing.T) {
	if YesNo(true) != "yes" || YesNo(false) != "no" {
		t.Error("YesNo mapping wrong")
	}
}
