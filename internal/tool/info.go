package tool

import (
	"context"

	"github.com/yanmxa/fsgate/internal/fsops"
	"github.com/yanmxa/fsgate/internal/tool/ui"
)

// FileInfoTool reports metadata for a file or directory
type FileInfoTool struct {
	exec *fsops.Executor
}

func (t *FileInfoTool) Name() string { return fsops.OpStat }
func (t *FileInfoTool) Description() string {
	return "Get metadata for a file or directory: type, size, timestamps, permissions and MIME type."
}
func (t *FileInfoTool) Icon() string { return ui.IconInfo }

func (t *FileInfoTool) Schema() Schema {
	return Schema{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{
					"type":        "string",
					"description": "Path to the file or directory",
				},
			},
			"required": []string{"file_path"},
		},
	}
}

func (t *FileInfoTool) Execute(ctx context.Context, params map[string]any) fsops.Result {
	path, err := requiredString(params, "file_path")
	if err != nil {
		return fsops.Fail(err)
	}
	return t.exec.Stat(ctx, fsops.StatParams{Path: path})
}
