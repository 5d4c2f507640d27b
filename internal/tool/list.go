package tool

import (
	"context"

	"github.com/yanmxa/fsgate/internal/fsops"
	"github.com/yanmxa/fsgate/internal/tool/ui"
)

// ListDirectoryTool lists the immediate entries of a directory
type ListDirectoryTool struct {
	exec *fsops.Executor
}

func (t *ListDirectoryTool) Name() string { return fsops.OpList }
func (t *ListDirectoryTool) Description() string {
	return "List the files and directories directly inside a directory, sorted by name. Hidden entries are skipped unless include_hidden is set."
}
func (t *ListDirectoryTool) Icon() string { return ui.IconList }

func (t *ListDirectoryTool) Schema() Schema {
	return Schema{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"dir_path": map[string]any{
					"type":        "string",
					"description": "Path to the directory to list",
				},
				"include_hidden": map[string]any{
					"type":        "boolean",
					"description": "Include entries whose name starts with a dot. Default is false.",
				},
			},
			"required": []string{"dir_path"},
		},
	}
}

func (t *ListDirectoryTool) Execute(ctx context.Context, params map[string]any) fsops.Result {
	path, err := requiredString(params, "dir_path")
	if err != nil {
		return fsops.Fail(err)
	}
	hidden, err := optionalBool(params, "include_hidden")
	if err != nil {
		return fsops.Fail(err)
	}
	return t.exec.List(ctx, fsops.ListParams{Path: path, IncludeHidden: hidden})
}
