package tool

import (
	"context"

	"browser-mcp/internal/application/port/input"
	"browser-mcp/internal/domain/entity"
)

const defaultWaitSeconds = 3

type SearchGoogleTool struct {
	session input.BrowserSession
}

func NewSearchGoogleTool(session input.BrowserSession) *SearchGoogleTool {
	return &SearchGoogleTool{session: session}
}

func (t *SearchGoogleTool) Name() entity.ToolName { return entity.ToolSearchGoogle }
func (t *SearchGoogleTool) Description() string   { return "Search Google in the current tab" }
func (t *SearchGoogleTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"query"}, map[string]interface{}{
		"query": prop("string", "Search query"),
	})
}

func (t *SearchGoogleTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Query string `json:"query"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.Search(ctx, in.Query))
}

type GoToURLTool struct {
	session input.BrowserSession
}

func NewGoToURLTool(session input.BrowserSession) *GoToURLTool {
	return &GoToURLTool{session: session}
}

func (t *GoToURLTool) Name() entity.ToolName { return entity.ToolGoToURL }
func (t *GoToURLTool) Description() string   { return "Navigate the current tab to a URL" }
func (t *GoToURLTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"url"}, map[string]interface{}{
		"url": prop("string", "URL to navigate to"),
	})
}

func (t *GoToURLTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		URL string `json:"url"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.Navigate(ctx, in.URL))
}

type GoBackTool struct {
	session input.BrowserSession
}

func NewGoBackTool(session input.BrowserSession) *GoBackTool {
	return &GoBackTool{session: session}
}

func (t *GoBackTool) Name() entity.ToolName { return entity.ToolGoBack }
func (t *GoBackTool) Description() string   { return "Go back in the current tab's history" }
func (t *GoBackTool) Parameters() map[string]interface{} {
	return objectSchema(nil, map[string]interface{}{})
}

func (t *GoBackTool) Execute(ctx context.Context, _ string) (*entity.ToolResult, error) {
	return textResult(t.session.GoBack(ctx))
}

type WaitTool struct {
	session input.BrowserSession
}

func NewWaitTool(session input.BrowserSession) *WaitTool {
	return &WaitTool{session: session}
}

func (t *WaitTool) Name() entity.ToolName { return entity.ToolWait }
func (t *WaitTool) Description() string   { return "Wait for a number of seconds" }
func (t *WaitTool) Parameters() map[string]interface{} {
	return objectSchema(nil, map[string]interface{}{
		"seconds": prop("integer", "Seconds to wait (default 3)"),
	})
}

func (t *WaitTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Seconds *int `json:"seconds"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	seconds := defaultWaitSeconds
	if in.Seconds != nil {
		seconds = *in.Seconds
	}
	return textResult(t.session.Wait(ctx, seconds))
}

type OpenTabTool struct {
	session input.BrowserSession
}

func NewOpenTabTool(session input.BrowserSession) *OpenTabTool {
	return &OpenTabTool{session: session}
}

func (t *OpenTabTool) Name() entity.ToolName { return entity.ToolOpenTab }
func (t *OpenTabTool) Description() string   { return "Open a URL in a new tab and switch to it" }
func (t *OpenTabTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"url"}, map[string]interface{}{
		"url": prop("string", "URL to open"),
	})
}

func (t *OpenTabTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		URL string `json:"url"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.OpenTab(ctx, in.URL))
}

type SwitchTabTool struct {
	session input.BrowserSession
}

func NewSwitchTabTool(session input.BrowserSession) *SwitchTabTool {
	return &SwitchTabTool{session: session}
}

func (t *SwitchTabTool) Name() entity.ToolName { return entity.ToolSwitchTab }
func (t *SwitchTabTool) Description() string {
	return "Switch to an open tab by position; negative values count from the last tab"
}
func (t *SwitchTabTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"page_id"}, map[string]interface{}{
		"page_id": prop("integer", "Tab position as shown by list_tabs(), -1 is the last tab"),
	})
}

func (t *SwitchTabTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		PageID int `json:"page_id"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.SwitchTab(ctx, in.PageID))
}

type ListTabsTool struct {
	session input.BrowserSession
}

func NewListTabsTool(session input.BrowserSession) *ListTabsTool {
	return &ListTabsTool{session: session}
}

func (t *ListTabsTool) Name() entity.ToolName { return entity.ToolListTabs }
func (t *ListTabsTool) Description() string {
	return "List open tabs with their position, title and URL"
}
func (t *ListTabsTool) Parameters() map[string]interface{} {
	return objectSchema(nil, map[string]interface{}{})
}

func (t *ListTabsTool) Execute(ctx context.Context, _ string) (*entity.ToolResult, error) {
	return textResult(t.session.ListTabs(ctx))
}
