// Package mcp serves the filesystem tools over the Model Context Protocol.
// Messages are newline-delimited JSON-RPC 2.0 on a reader/writer pair,
// normally stdin and stdout, and are handled one at a time in arrival order.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/yanmxa/fsgate/internal/log"
	"github.com/yanmxa/fsgate/internal/tool"
)

// maxMessageSize bounds a single inbound line.
const maxMessageSize = 10 * 1024 * 1024

const instructions = "Read-only filesystem access. Paths may be absolute or relative to the server's base directory; restricted directories and disallowed file types are refused."

// Server answers MCP requests using a tool registry.
type Server struct {
	registry *tool.Registry
	info     ServerInfo

	mu  sync.Mutex
	out io.Writer
}

// NewServer creates a server exposing the tools in registry.
func NewServer(registry *tool.Registry, version string) *Server {
	return &Server{
		registry: registry,
		info:     ServerInfo{Name: "fsgate", Version: version},
	}
}

// Serve reads requests from r and writes responses to w until r is exhausted
// or ctx is cancelled. On cancellation it returns ctx.Err() without waiting
// for r; a read blocked on r is abandoned.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.mu.Lock()
	s.out = w
	s.mu.Unlock()

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read request: %w", err)
				}
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if len(line) == 0 {
				continue
			}

			resp := s.Handle(ctx, line)
			if resp == nil {
				continue
			}
			if err := s.writeJSON(resp); err != nil {
				return err
			}
		}
	}
}

// writeJSON marshals and writes a message followed by a newline
func (s *Server) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	s.mu.Lock()
	_, err = s.out.Write(append(data, '\n'))
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	return nil
}

// Handle processes one raw message. It returns nil for notifications.
func (s *Server) Handle(ctx context.Context, line []byte) *Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		log.Logger().Debug("[mcp] malformed message", zap.Error(err))
		return errorResponse(nil, CodeParseError, "Parse error")
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, CodeInvalidRequest, "Invalid Request")
	}

	log.Logger().Debug("[mcp] <- "+req.Method, zap.ByteString("id", req.ID))

	result, rpcErr := s.dispatch(ctx, &req)
	if req.IsNotification() {
		return nil
	}
	if rpcErr != nil {
		return &Response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}
	return &Response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func (s *Server) dispatch(ctx context.Context, req *Request) (any, *RPCError) {
	switch req.Method {
	case MethodInitialize:
		var params InitializeParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				return nil, &RPCError{Code: CodeInvalidParams, Message: "Invalid params: " + err.Error()}
			}
		}
		log.Logger().Info("[mcp] client connected",
			zap.String("client", params.ClientInfo.Name),
			zap.String("clientVersion", params.ClientInfo.Version),
			zap.String("protocolVersion", params.ProtocolVersion))
		return InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    ServerCapabilities{Tools: &ToolsCapability{}},
			ServerInfo:      s.info,
			Instructions:    instructions,
		}, nil

	case MethodInitialized, MethodCancelled:
		return nil, nil

	case MethodPing:
		return struct{}{}, nil

	case MethodToolsList:
		return ToolsListResult{Tools: s.registry.Schemas()}, nil

	case MethodToolsCall:
		return s.callTool(ctx, req.Params)

	case MethodResourcesList:
		return ResourcesListResult{Resources: []Resource{}}, nil

	case MethodPromptsList:
		return PromptsListResult{Prompts: []Prompt{}}, nil

	default:
		return nil, &RPCError{Code: CodeMethodNotFound, Message: "Method not found: " + req.Method}
	}
}

func (s *Server) callTool(ctx context.Context, raw json.RawMessage) (any, *RPCError) {
	var params ToolsCallParams
	if len(raw) == 0 {
		return nil, &RPCError{Code: CodeInvalidParams, Message: "Invalid params: missing tool name"}
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &RPCError{Code: CodeInvalidParams, Message: "Invalid params: " + err.Error()}
	}
	if params.Name == "" {
		return nil, &RPCError{Code: CodeInvalidParams, Message: "Invalid params: missing tool name"}
	}
	if _, ok := s.registry.Get(params.Name); !ok {
		return nil, &RPCError{Code: CodeInvalidParams, Message: "Unknown tool: " + params.Name}
	}

	ctx = log.WithCallID(ctx, "")
	log.Logger().Debug("[mcp] tools/call "+params.Name,
		zap.String("call_id", log.CallID(ctx)),
		log.ParamsField(params.Arguments))

	res := s.registry.Execute(ctx, params.Name, params.Arguments)
	text, err := json.Marshal(res)
	if err != nil {
		return nil, &RPCError{Code: CodeInternalError, Message: "Internal error: " + err.Error()}
	}
	return ToolResult{
		Content: []ToolResultContent{{Type: "text", Text: string(text)}},
		IsError: !res.Success,
	}, nil
}

func errorResponse(id json.RawMessage, code int, msg string) *Response {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &Response{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: msg}}
}
