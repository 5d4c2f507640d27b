package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/yanmxa/fsgate/internal/fsops"
	"github.com/yanmxa/fsgate/internal/policy"
)

func TestRenderResult_Error(t *testing.T) {
	res := fsops.Fail(policy.Errorf(policy.KindAccessDenied, "Access denied: Path is in restricted directory: /etc"))
	out := RenderResult("read_file", IconRead, res, 0, 60)

	for _, want := range []string{"read_file", "AccessDenied", "/etc"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResult_Read(t *testing.T) {
	res := fsops.OK(fsops.ReadData{
		Path:          "/work/main.go",
		SizeFormatted: "24 B",
		Content:       "package main\n\nfunc main() {}\n",
	})
	out := RenderResult("read_file", IconRead, res, 3*time.Millisecond, 60)

	for _, want := range []string{"/work/main.go", "3 lines", "3ms", "package main", "func main() {}"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResult_Binary(t *testing.T) {
	res := fsops.OK(fsops.ReadData{Path: "/work/logo.png", IsBinary: true, Content: fsops.BinaryPlaceholder})
	out := RenderResult("read_file", IconRead, res, 0, 60)
	if !strings.Contains(out, fsops.BinaryPlaceholder) {
		t.Errorf("expected placeholder:\n%s", out)
	}
}

func TestRenderEntries_Alignment(t *testing.T) {
	entries := []fsops.FileEntry{
		{Name: "a.txt", Type: "file", SizeFormatted: "1 B"},
		{Name: "日本語.txt", Type: "file", SizeFormatted: "10 KiB"},
		{Name: "src", Type: "directory", SizeFormatted: "4.0 KiB"},
	}
	out := RenderEntries(entries, 0)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "src/") {
		t.Errorf("directories should get a trailing slash: %q", lines[2])
	}
}

func TestRenderEntries_Truncated(t *testing.T) {
	entries := make([]fsops.FileEntry, 5)
	for i := range entries {
		entries[i] = fsops.FileEntry{Name: "f", Type: "file"}
	}
	out := RenderEntries(entries, 2)
	if !strings.Contains(out, "... and 3 more entries") {
		t.Errorf("expected truncation note:\n%s", out)
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abc", 2, "..."},
	}
	for _, tt := range tests {
		if got := TruncateText(tt.text, tt.width); got != tt.want {
			t.Errorf("TruncateText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
