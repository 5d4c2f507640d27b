package tool

import (
	"context"

	"github.com/yanmxa/fsgate/internal/fsops"
)

// Tool is one read-only filesystem operation exposed to a caller
type Tool interface {
	// Name returns the tool name
	Name() string

	// Description returns a brief description of the tool
	Description() string

	// Icon returns the tool icon emoji
	Icon() string

	// Schema returns the JSON schema of the tool's parameters
	Schema() Schema

	// Execute runs the tool with the given parameters
	Execute(ctx context.Context, params map[string]any) fsops.Result
}

// Schema describes a tool for tool-listing clients
type Schema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}
