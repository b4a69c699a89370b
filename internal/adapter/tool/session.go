package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"browser-mcp/internal/application/port/input"
	"browser-mcp/internal/domain/entity"
)

type InitializeBrowserTool struct {
	session input.BrowserSession
}

func NewInitializeBrowserTool(session input.BrowserSession) *InitializeBrowserTool {
	return &InitializeBrowserTool{session: session}
}

func (t *InitializeBrowserTool) Name() entity.ToolName { return entity.ToolInitializeBrowser }
func (t *InitializeBrowserTool) Description() string {
	return "Start a browser session for a task. Replaces any running session and returns usage guidance."
}
func (t *InitializeBrowserTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"task"}, map[string]interface{}{
		"headless": prop("boolean", "Run without a visible window (default false)"),
		"task":     prop("string", "The task the browser will be used for"),
	})
}

func (t *InitializeBrowserTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Headless bool   `json:"headless"`
		Task     string `json:"task"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	msg, err := t.session.Start(ctx, in.Headless, in.Task)
	if err != nil {
		return nil, err
	}
	return &entity.ToolResult{Text: msg}, nil
}

type CloseBrowserTool struct {
	session input.BrowserSession
}

func NewCloseBrowserTool(session input.BrowserSession) *CloseBrowserTool {
	return &CloseBrowserTool{session: session}
}

func (t *CloseBrowserTool) Name() entity.ToolName { return entity.ToolCloseBrowser }
func (t *CloseBrowserTool) Description() string   { return "Close the browser and end the session" }
func (t *CloseBrowserTool) Parameters() map[string]interface{} {
	return objectSchema(nil, map[string]interface{}{})
}

func (t *CloseBrowserTool) Execute(ctx context.Context, _ string) (*entity.ToolResult, error) {
	msg, err := t.session.End(ctx)
	if err != nil {
		return nil, err
	}
	return &entity.ToolResult{Text: msg}, nil
}

type DoneTool struct {
	session input.BrowserSession
}

func NewDoneTool(session input.BrowserSession) *DoneTool {
	return &DoneTool{session: session}
}

func (t *DoneTool) Name() entity.ToolName { return entity.ToolDone }
func (t *DoneTool) Description() string {
	return "Finish the task, reporting success and the extracted result"
}
func (t *DoneTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"success", "text"}, map[string]interface{}{
		"success": prop("boolean", "Whether the task was achieved"),
		"text":    prop("string", "Final answer or extracted content"),
	})
}

func (t *DoneTool) Execute(_ context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Success bool   `json:"success"`
		Text    string `json:"text"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	c := t.session.Complete(in.Success, in.Text)
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode completion: %w", err)
	}
	return &entity.ToolResult{Text: string(data), Structured: c}, nil
}
