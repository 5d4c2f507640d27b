package tool

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yanmxa/fsgate/internal/fsops"
	"github.com/yanmxa/fsgate/internal/policy"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "docs", "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "docs", "guide.md"), []byte("# Guide\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "docs", "sub", "deep.md"), []byte("deep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "docs", ".draft.md"), []byte("draft"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := policy.New(policy.Options{
		AllowedExtensions: []string{".md"},
		MaxFileSizeBytes:  1 << 20,
		BaseDir:           root,
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewFileRegistry(fsops.New(p, fsops.Options{})), root
}

func TestRegistry_ListAndGet(t *testing.T) {
	r, _ := newTestRegistry(t)

	want := []string{"get_file_info", "list_directory", "read_file", "search_files"}
	if got := r.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	// Lookup is case-insensitive
	if _, ok := r.Get("READ_FILE"); !ok {
		t.Error("expected case-insensitive lookup to find read_file")
	}
	if _, ok := r.Get("write_file"); ok {
		t.Error("write_file must not exist")
	}
}

func TestRegistry_Schemas(t *testing.T) {
	r, _ := newTestRegistry(t)

	schemas := r.Schemas()
	if len(schemas) != 4 {
		t.Fatalf("expected 4 schemas, got %d", len(schemas))
	}

	required := map[string][]string{
		"get_file_info":  {"file_path"},
		"list_directory": {"dir_path"},
		"read_file":      {"file_path"},
		"search_files":   {"search_path", "pattern"},
	}
	for _, s := range schemas {
		if s.Description == "" {
			t.Errorf("%s: empty description", s.Name)
		}
		if s.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type = %v", s.Name, s.InputSchema["type"])
		}
		got, _ := s.InputSchema["required"].([]string)
		if !reflect.DeepEqual(got, required[s.Name]) {
			t.Errorf("%s: required = %v, want %v", s.Name, got, required[s.Name])
		}
	}
}

func TestRegistry_ExecuteUnknownTool(t *testing.T) {
	r, _ := newTestRegistry(t)

	res := r.Execute(context.Background(), "delete_file", nil)
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "Unknown tool: delete_file" {
		t.Errorf("unexpected error: %q", res.Error)
	}
}

func TestRegistry_Execute(t *testing.T) {
	r, root := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		tool     string
		params   map[string]any
		wantOK   bool
		wantKind policy.Kind
		wantErr  string
	}{
		{
			name:   "read",
			tool:   "read_file",
			params: map[string]any{"file_path": "docs/guide.md"},
			wantOK: true,
		},
		{
			name:     "read missing param",
			tool:     "read_file",
			params:   map[string]any{},
			wantKind: policy.KindInvalidParams,
			wantErr:  "Invalid parameters: file_path is required",
		},
		{
			name:     "read wrong type",
			tool:     "read_file",
			params:   map[string]any{"file_path": 42.0},
			wantKind: policy.KindInvalidParams,
			wantErr:  "Invalid parameters: file_path must be a string",
		},
		{
			name:     "read empty path",
			tool:     "read_file",
			params:   map[string]any{"file_path": ""},
			wantKind: policy.KindInvalidPath,
			wantErr:  "Invalid path: path is empty",
		},
		{
			name:   "list",
			tool:   "list_directory",
			params: map[string]any{"dir_path": "docs", "include_hidden": "true"},
			wantOK: true,
		},
		{
			name:     "list bad bool",
			tool:     "list_directory",
			params:   map[string]any{"dir_path": "docs", "include_hidden": "maybe"},
			wantKind: policy.KindInvalidParams,
			wantErr:  "Invalid parameters: include_hidden must be a boolean",
		},
		{
			name:   "info absolute",
			tool:   "get_file_info",
			params: map[string]any{"file_path": filepath.Join(root, "docs")},
			wantOK: true,
		},
		{
			name:     "search missing pattern",
			tool:     "search_files",
			params:   map[string]any{"search_path": "docs"},
			wantKind: policy.KindInvalidParams,
			wantErr:  "Invalid parameters: pattern is required",
		},
		{
			name:     "search bad exclude",
			tool:     "search_files",
			params:   map[string]any{"search_path": "docs", "pattern": "*", "exclude": []any{1.0}},
			wantKind: policy.KindInvalidParams,
			wantErr:  "Invalid parameters: exclude must be a list of strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Execute(ctx, tt.tool, tt.params)
			if res.Success != tt.wantOK {
				t.Fatalf("Success = %v, want %v (error %q)", res.Success, tt.wantOK, res.Error)
			}
			if tt.wantOK {
				return
			}
			if res.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", res.Kind, tt.wantKind)
			}
			if res.Error != tt.wantErr {
				t.Errorf("Error = %q, want %q", res.Error, tt.wantErr)
			}
		})
	}
}

func TestListDirectory_IncludeHidden(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	count := func(params map[string]any) int {
		res := r.Execute(ctx, "list_directory", params)
		if !res.Success {
			t.Fatalf("list failed: %s", res.Error)
		}
		return res.Data.(fsops.ListData).Count
	}

	if got := count(map[string]any{"dir_path": "docs"}); got != 2 {
		t.Errorf("without hidden: got %d entries, want 2", got)
	}
	if got := count(map[string]any{"dir_path": "docs", "include_hidden": true}); got != 3 {
		t.Errorf("with hidden: got %d entries, want 3", got)
	}
	if got := count(map[string]any{"dir_path": "docs", "include_hidden": 1.0}); got != 3 {
		t.Errorf("numeric true: got %d entries, want 3", got)
	}
}

func TestSearchFiles_RecursiveAndExclude(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params map[string]any
		want   int
	}{
		{"flat", map[string]any{"search_path": "docs", "pattern": "*.md"}, 2},
		{"recursive", map[string]any{"search_path": "docs", "pattern": "*.MD", "recursive": true}, 3},
		{"exclude string", map[string]any{"search_path": "docs", "pattern": "*.md", "recursive": true, "exclude": "sub"}, 2},
		{"exclude list", map[string]any{"search_path": "docs", "pattern": "*.md", "recursive": "true", "exclude": []any{"sub", ".*"}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Execute(ctx, "search_files", tt.params)
			if !res.Success {
				t.Fatalf("search failed: %s", res.Error)
			}
			if got := res.Data.(fsops.SearchData).Count; got != tt.want {
				t.Errorf("got %d matches, want %d", got, tt.want)
			}
		})
	}
}

func TestOptionalBool(t *testing.T) {
	tests := []struct {
		value   any
		want    bool
		wantErr bool
	}{
		{nil, false, false},
		{true, true, false},
		{"false", false, false},
		{" TRUE ", true, false},
		{0.0, false, false},
		{2.0, true, false},
		{[]any{}, false, true},
	}
	for _, tt := range tests {
		got, err := optionalBool(map[string]any{"flag": tt.value}, "flag")
		if (err != nil) != tt.wantErr {
			t.Errorf("optionalBool(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("optionalBool(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
