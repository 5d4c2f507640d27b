package tool

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yanmxa/fsgate/internal/fsops"
	"github.com/yanmxa/fsgate/internal/policy"
)

// Registry manages tool registration and execution
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// NewFileRegistry creates a registry holding the four filesystem tools
func NewFileRegistry(exec *fsops.Executor) *Registry {
	r := NewRegistry()
	r.Register(&ReadFileTool{exec: exec})
	r.Register(&ListDirectoryTool{exec: exec})
	r.Register(&FileInfoTool{exec: exec})
	r.Register(&SearchFilesTool{exec: exec})
	return r
}

// Register adds a tool to the registry
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[strings.ToLower(tool.Name())] = tool
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[strings.ToLower(name)]
	return tool, ok
}

// List returns all registered tool names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Name())
	}
	sort.Strings(names)
	return names
}

// Schemas returns the schema of every registered tool, sorted by name
func (r *Registry) Schemas() []Schema {
	names := r.List()
	schemas := make([]Schema, 0, len(names))
	for _, name := range names {
		if t, ok := r.Get(name); ok {
			schemas = append(schemas, t.Schema())
		}
	}
	return schemas
}

// Execute runs a tool by name with the given parameters
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) fsops.Result {
	tool, ok := r.Get(name)
	if !ok {
		return fsops.Fail(policy.Errorf(policy.KindInvalidParams, "Unknown tool: %s", name))
	}
	if params == nil {
		params = map[string]any{}
	}
	return tool.Execute(ctx, params)
}
