package tool

import (
	"context"

	"github.com/yanmxa/fsgate/internal/fsops"
	"github.com/yanmxa/fsgate/internal/tool/ui"
)

// SearchFilesTool finds files by name pattern
type SearchFilesTool struct {
	exec *fsops.Executor
}

func (t *SearchFilesTool) Name() string { return fsops.OpSearch }
func (t *SearchFilesTool) Description() string {
	return "Find files whose name matches a pattern. '*' matches any run of characters and '?' exactly one; matching is case-insensitive. Recursive search stops 10 levels below the starting directory."
}
func (t *SearchFilesTool) Icon() string { return ui.IconSearch }

func (t *SearchFilesTool) Schema() Schema {
	return Schema{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"search_path": map[string]any{
					"type":        "string",
					"description": "Directory to search in",
				},
				"pattern": map[string]any{
					"type":        "string",
					"description": "File name pattern, e.g. '*.go' or 'report-??.csv'",
				},
				"recursive": map[string]any{
					"type":        "boolean",
					"description": "Descend into subdirectories. Default is false.",
				},
				"exclude": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Glob patterns (relative to search_path, '**' supported) for entries to skip, e.g. 'node_modules' or 'build/**'",
				},
			},
			"required": []string{"search_path", "pattern"},
		},
	}
}

func (t *SearchFilesTool) Execute(ctx context.Context, params map[string]any) fsops.Result {
	path, err := requiredString(params, "search_path")
	if err != nil {
		return fsops.Fail(err)
	}
	pattern, err := requiredString(params, "pattern")
	if err != nil {
		return fsops.Fail(err)
	}
	recursive, err := optionalBool(params, "recursive")
	if err != nil {
		return fsops.Fail(err)
	}
	exclude, err := optionalStrings(params, "exclude")
	if err != nil {
		return fsops.Fail(err)
	}
	return t.exec.Search(ctx, fsops.SearchParams{
		Path:      path,
		Pattern:   pattern,
		Recursive: recursive,
		Exclude:   exclude,
	})
}
