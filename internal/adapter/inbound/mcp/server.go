// Package mcp exposes the policy evaluator as a single MCP tool
// ("evaluate_policy") over a newline-delimited JSON-RPC stream (spec.md §6:
// the evaluation engine's external interface). Grounded on the teacher's
// pkg/mcp JSON-RPC codec (EncodeMessage/DecodeMessage over
// modelcontextprotocol/go-sdk/jsonrpc) and internal/service/proxy_service.go's
// copyMessages scanning loop; unlike the teacher's proxy, which forwards
// messages between a client and an upstream MCP server, this adapter
// terminates requests locally against a fixed policy.Policy.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"

	"github.com/berise/openscap/internal/domain/policy"
	"github.com/berise/openscap/internal/service"
)

// ToolName is the single MCP tool this server exposes.
const ToolName = "evaluate_policy"

// scannerInitialBuffer and scannerMaxBuffer size the line scanner the same
// way the teacher's proxy_service.go sizes its message scanner.
const (
	scannerInitialBuffer = 64 * 1024
	scannerMaxBuffer     = 1024 * 1024
)

// Server answers MCP tools/list and tools/call requests over a
// newline-delimited JSON-RPC stream, running the wrapped evaluator against
// a fixed policy on every call and replying with the resulting rule
// verdicts.
type Server struct {
	policy    *policy.Policy
	evaluator *service.Evaluator
	log       *slog.Logger
}

// NewServer returns a Server that drives evaluator over p. log may be nil,
// in which case slog.Default() is used.
func NewServer(p *policy.Policy, evaluator *service.Evaluator, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{policy: p, evaluator: evaluator, log: log}
}

// Serve reads newline-delimited JSON-RPC requests from r and writes
// responses to w, at most one per input line (none for lines handle
// ignores), until r is exhausted, ctx is cancelled, or a write fails.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, scannerInitialBuffer)
	scanner.Buffer(buf, scannerMaxBuffer)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp := s.handle(ctx, scanner.Bytes())
		if resp == nil {
			continue
		}
		encoded, err := jsonrpc.EncodeMessage(resp)
		if err != nil {
			s.log.Error("mcp: failed to encode response", "error", err)
			continue
		}
		if _, err := w.Write(append(encoded, '\n')); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// handle decodes one line and dispatches it, returning nil for anything
// that needs no reply: malformed input, notifications, and responses.
func (s *Server) handle(ctx context.Context, raw []byte) *jsonrpc.Response {
	decoded, err := jsonrpc.DecodeMessage(raw)
	if err != nil {
		s.log.Warn("mcp: failed to decode request line", "error", err)
		return nil
	}
	req, ok := decoded.(*jsonrpc.Request)
	if !ok || !req.IsCall() {
		return nil
	}

	switch req.Method {
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return errorResponse(req.ID, -32601, "Method not found")
	}
}

type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type toolsListResult struct {
	Tools []toolDescriptor `json:"tools"`
}

func (s *Server) handleToolsList(req *jsonrpc.Request) *jsonrpc.Response {
	result := toolsListResult{Tools: []toolDescriptor{{
		Name:        ToolName,
		Description: "Evaluate the configured benchmark/profile and return rule verdicts.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
	}}}
	return okResponse(req.ID, result)
}

type toolCallParams struct {
	Name string `json:"name"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolCallResult struct {
	Content []textContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// handleToolsCall re-evaluates s.policy from a clean result set (so the
// tool is idempotent across repeated calls) and returns the verdicts as a
// JSON text block.
func (s *Server) handleToolsCall(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	var params toolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, -32602, "Invalid params")
		}
	}
	if params.Name != ToolName {
		return errorResponse(req.ID, -32602, "Unknown tool "+params.Name)
	}

	s.policy.Results = s.policy.Results[:0]
	if err := s.evaluator.EvaluateAll(ctx, s.policy); err != nil {
		return okResponse(req.ID, toolCallResult{
			Content: []textContent{{Type: "text", Text: err.Error()}},
			IsError: true,
		})
	}

	body, err := json.Marshal(s.policy.Results)
	if err != nil {
		return errorResponse(req.ID, -32603, "Internal error")
	}
	return okResponse(req.ID, toolCallResult{Content: []textContent{{Type: "text", Text: string(body)}}})
}

func okResponse(id jsonrpc.ID, v any) *jsonrpc.Response {
	body, err := json.Marshal(v)
	if err != nil {
		return errorResponse(id, -32603, "Internal error")
	}
	return &jsonrpc.Response{ID: id, Result: body}
}

func errorResponse(id jsonrpc.ID, code int64, message string) *jsonrpc.Response {
	return &jsonrpc.Response{ID: id, Error: &jsonrpc.Error{Code: code, Message: message}}
}
