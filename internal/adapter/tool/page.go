package tool

import (
	"context"

	"browser-mcp/internal/application/port/input"
	"browser-mcp/internal/domain/entity"
)

var amountProp = prop("integer", "Pixels to scroll; omit to scroll one page")

type ScrollDownTool struct {
	session input.BrowserSession
}

func NewScrollDownTool(session input.BrowserSession) *ScrollDownTool {
	return &ScrollDownTool{session: session}
}

func (t *ScrollDownTool) Name() entity.ToolName { return entity.ToolScrollDown }
func (t *ScrollDownTool) Description() string   { return "Scroll the page down" }
func (t *ScrollDownTool) Parameters() map[string]interface{} {
	return objectSchema(nil, map[string]interface{}{"amount": amountProp})
}

func (t *ScrollDownTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Amount *int `json:"amount"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.ScrollDown(ctx, in.Amount))
}

type ScrollUpTool struct {
	session input.BrowserSession
}

func NewScrollUpTool(session input.BrowserSession) *ScrollUpTool {
	return &ScrollUpTool{session: session}
}

func (t *ScrollUpTool) Name() entity.ToolName { return entity.ToolScrollUp }
func (t *ScrollUpTool) Description() string   { return "Scroll the page up" }
func (t *ScrollUpTool) Parameters() map[string]interface{} {
	return objectSchema(nil, map[string]interface{}{"amount": amountProp})
}

func (t *ScrollUpTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Amount *int `json:"amount"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.ScrollUp(ctx, in.Amount))
}

type SendKeysTool struct {
	session input.BrowserSession
}

func NewSendKeysTool(session input.BrowserSession) *SendKeysTool {
	return &SendKeysTool{session: session}
}

func (t *SendKeysTool) Name() entity.ToolName { return entity.ToolSendKeys }
func (t *SendKeysTool) Description() string {
	return "Send a key or combination to the page, e.g. Enter, Escape, Control+A"
}
func (t *SendKeysTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"keys"}, map[string]interface{}{
		"keys": prop("string", "Key name, character or +-joined combination"),
	})
}

func (t *SendKeysTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Keys string `json:"keys"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.SendKeys(ctx, in.Keys))
}

type ScrollToTextTool struct {
	session input.BrowserSession
}

func NewScrollToTextTool(session input.BrowserSession) *ScrollToTextTool {
	return &ScrollToTextTool{session: session}
}

func (t *ScrollToTextTool) Name() entity.ToolName { return entity.ToolScrollToText }
func (t *ScrollToTextTool) Description() string {
	return "Scroll to the first visible occurrence of a text, ignoring case"
}
func (t *ScrollToTextTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"text"}, map[string]interface{}{
		"text": prop("string", "Text to find"),
	})
}

func (t *ScrollToTextTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Text string `json:"text"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.ScrollToText(ctx, in.Text))
}

type ValidatePageTool struct {
	session input.BrowserSession
}

func NewValidatePageTool(session input.BrowserSession) *ValidatePageTool {
	return &ValidatePageTool{session: session}
}

func (t *ValidatePageTool) Name() entity.ToolName { return entity.ToolValidatePage }
func (t *ValidatePageTool) Description() string {
	return "Extract the page content and optionally check that it contains a text"
}
func (t *ValidatePageTool) Parameters() map[string]interface{} {
	return objectSchema(nil, map[string]interface{}{
		"expected_text": prop("string", "Text expected on the page, compared ignoring case"),
	})
}

func (t *ValidatePageTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		ExpectedText string `json:"expected_text"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.ValidatePage(ctx, in.ExpectedText))
}

type ExecuteJavaScriptTool struct {
	session input.BrowserSession
}

func NewExecuteJavaScriptTool(session input.BrowserSession) *ExecuteJavaScriptTool {
	return &ExecuteJavaScriptTool{session: session}
}

func (t *ExecuteJavaScriptTool) Name() entity.ToolName { return entity.ToolExecuteJavaScript }
func (t *ExecuteJavaScriptTool) Description() string {
	return "Run JavaScript in the page and return its result. An expression or a function is accepted."
}
func (t *ExecuteJavaScriptTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"script"}, map[string]interface{}{
		"script": prop("string", "JavaScript expression or function source"),
	})
}

func (t *ExecuteJavaScriptTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Script string `json:"script"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.RunScript(ctx, in.Script))
}

type TakeScreenshotTool struct {
	session input.BrowserSession
}

func NewTakeScreenshotTool(session input.BrowserSession) *TakeScreenshotTool {
	return &TakeScreenshotTool{session: session}
}

func (t *TakeScreenshotTool) Name() entity.ToolName { return entity.ToolTakeScreenshot }
func (t *TakeScreenshotTool) Description() string {
	return "Capture the visible part of the current tab"
}
func (t *TakeScreenshotTool) Parameters() map[string]interface{} {
	return objectSchema(nil, map[string]interface{}{})
}

func (t *TakeScreenshotTool) Execute(ctx context.Context, _ string) (*entity.ToolResult, error) {
	shot, err := t.session.Screenshot(ctx)
	if err != nil {
		return nil, err
	}
	return &entity.ToolResult{
		Text:  entity.Success("Screenshot taken").String(),
		Image: shot,
	}, nil
}
