package tool

import (
	"context"

	"github.com/yanmxa/fsgate/internal/fsops"
	"github.com/yanmxa/fsgate/internal/tool/ui"
)

// ReadFileTool reads file contents under the active policy
type ReadFileTool struct {
	exec *fsops.Executor
}

func (t *ReadFileTool) Name() string { return fsops.OpRead }
func (t *ReadFileTool) Description() string {
	return "Read the contents of a file. Only allowlisted file types can be read; binary files return a placeholder instead of content."
}
func (t *ReadFileTool) Icon() string { return ui.IconRead }

func (t *ReadFileTool) Schema() Schema {
	return Schema{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{
					"type":        "string",
					"description": "Path to the file to read (absolute or relative to the base directory)",
				},
				"encoding": map[string]any{
					"type":        "string",
					"description": "Text encoding: utf8 (default), ascii, latin1, utf16le, base64, hex, or a WHATWG label such as windows-1252",
				},
			},
			"required": []string{"file_path"},
		},
	}
}

func (t *ReadFileTool) Execute(ctx context.Context, params map[string]any) fsops.Result {
	path, err := requiredString(params, "file_path")
	if err != nil {
		return fsops.Fail(err)
	}
	encoding, err := optionalString(params, "encoding", "utf8")
	if err != nil {
		return fsops.Fail(err)
	}
	return t.exec.Read(ctx, fsops.ReadParams{Path: path, Encoding: encoding})
}
