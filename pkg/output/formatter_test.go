package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"text", FormatText},
		{"", FormatText},
		{"table", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		dur  time.Duration
		want string
	}{
		{"30 seconds", 30 * time.Second, "30s"},
		{"5 minutes", 5 * time.Minute, "5m"},
		{"2 hours", 2 * time.Hour, "2h"},
		{"3 days", 72 * time.Hour, "3d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.dur); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.dur, got, tt.want)
			}
		})
	}
}

func TestAge(t *testing.T) {
	if got := Age(""); got != "<unknown>" {
		t.Errorf("Age(\"\") = %q, want <unknown>", got)
	}
	if got := Age("not-a-timestamp"); got != "not-a-timestamp" {
		t.Errorf("unparseable timestamp should pass through, got %q", got)
	}
	recent := time.Now().Add(-5 * time.Minute).Format(time.RFC3339)
	if got := Age(recent); got != "5m" {
		t.Errorf("Age(5 minutes ago) = %q, want 5m", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"exact length untouched", "hello", 5, "hello"},
		{"long string cut with ellipsis", "hello world", 8, "hello..."},
		{"width too small to cut", "hello", 3, "hello"},
		{"multibyte runes counted as one", "héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.n); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "NAME", "ZONE")
	tbl.AddRow("disk-1", "us-central1-a")
	tbl.AddRow("disk-2", "europe-west1-b")
	if err := tbl.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "ZONE") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "disk-1") || !strings.Contains(lines[2], "europe-west1-b") {
		t.Errorf("rows missing data:\n%s", out)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, map[string]string{"name": "disk-1"}); err != nil {
		t.Fatalf("PrintJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "disk-1"`) {
		t.Errorf("unexpected JSON output:\n%s", buf.String())
	}
}

func TestPrintYAML_KeepsWireFieldNames(t *testing.T) {
	type disk struct {
		SizeGb int64  `json:"sizeGb"`
		Name   string `json:"name"`
	}
	var buf bytes.Buffer
	if err := PrintYAML(&buf, disk{SizeGb: 500, Name: "disk-1"}); err != nil {
		t.Fatalf("PrintYAML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "sizeGb: 500") {
		t.Errorf("expected JSON field name sizeGb in YAML output:\n%s", out)
	}
	if strings.Contains(out, "sizegb") {
		t.Errorf("YAML output used lowercased struct name instead of JSON tag:\n%s", out)
	}
}
