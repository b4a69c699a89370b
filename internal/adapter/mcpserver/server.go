// Package mcpserver exposes the tool registry over the Model Context Protocol.
package mcpserver

import (
	"context"
	"errors"
	"time"

	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/domain/entity"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const ServerName = "browser-mcp"

// NewServer registers every tool of registry on a new MCP server. Tool
// errors become error results; the protocol call itself never fails.
func NewServer(registry output.ToolRegistry, log output.LoggerPort, version string) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	for _, t := range registry.All() {
		srv.AddTool(&mcp.Tool{
			Name:        t.Name().String(),
			Description: t.Description(),
			InputSchema: t.Parameters(),
		}, handler(t, log))
	}
	return srv
}

func handler(t output.ToolPort, log output.LoggerPort) mcp.ToolHandler {
	log = log.WithField("tool", t.Name().String())
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		var args string
		if req.Params != nil {
			args = string(req.Params.Arguments)
		}
		res, err := t.Execute(ctx, args)
		elapsed := time.Since(start).Milliseconds()

		if err != nil {
			log.Warn("Tool failed", "duration_ms", elapsed, "class", errorClass(err), "error", err)
			var out mcp.CallToolResult
			out.SetError(err)
			return &out, nil
		}
		log.Info("Tool completed", "duration_ms", elapsed)
		return toCallToolResult(res), nil
	}
}

func toCallToolResult(res *entity.ToolResult) *mcp.CallToolResult {
	out := &mcp.CallToolResult{}
	if res == nil {
		return out
	}
	if res.Text != "" {
		out.Content = append(out.Content, &mcp.TextContent{Text: res.Text})
	}
	if res.Image != nil {
		out.Content = append(out.Content, &mcp.ImageContent{
			Data:     res.Image.Data,
			MIMEType: "image/" + res.Image.Format,
		})
	}
	if res.Structured != nil {
		out.StructuredContent = res.Structured
	}
	return out
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, entity.ErrPrecondition):
		return "precondition"
	case errors.Is(err, entity.ErrStartup):
		return "startup"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "engine"
	}
}
