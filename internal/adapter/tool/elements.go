package tool

import (
	"context"

	"browser-mcp/internal/application/port/input"
	"browser-mcp/internal/domain/entity"
)

type InspectPageTool struct {
	session input.BrowserSession
}

func NewInspectPageTool(session input.BrowserSession) *InspectPageTool {
	return &InspectPageTool{session: session}
}

func (t *InspectPageTool) Name() entity.ToolName { return entity.ToolInspectPage }
func (t *InspectPageTool) Description() string {
	return "List the visible interactive elements of the current page with their indices. " +
		"Indices are valid until the page changes."
}
func (t *InspectPageTool) Parameters() map[string]interface{} {
	return objectSchema(nil, map[string]interface{}{})
}

func (t *InspectPageTool) Execute(ctx context.Context, _ string) (*entity.ToolResult, error) {
	return textResult(t.session.Snapshot(ctx))
}

type ClickElementTool struct {
	session input.BrowserSession
}

func NewClickElementTool(session input.BrowserSession) *ClickElementTool {
	return &ClickElementTool{session: session}
}

func (t *ClickElementTool) Name() entity.ToolName { return entity.ToolClickElement }
func (t *ClickElementTool) Description() string   { return "Click the element with the given index" }
func (t *ClickElementTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"index"}, map[string]interface{}{
		"index": indexProp(),
	})
}

func (t *ClickElementTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Index int `json:"index"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.Click(ctx, in.Index))
}

type InputTextTool struct {
	session input.BrowserSession
}

func NewInputTextTool(session input.BrowserSession) *InputTextTool {
	return &InputTextTool{session: session}
}

func (t *InputTextTool) Name() entity.ToolName { return entity.ToolInputText }
func (t *InputTextTool) Description() string {
	return "Replace the value of the input element with the given index"
}
func (t *InputTextTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"index", "text"}, map[string]interface{}{
		"index":              indexProp(),
		"text":               prop("string", "Text to type"),
		"has_sensitive_data": prop("boolean", "Do not echo the text back (passwords, tokens)"),
	})
}

func (t *InputTextTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Index     int    `json:"index"`
		Text      string `json:"text"`
		Sensitive bool   `json:"has_sensitive_data"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.Fill(ctx, in.Index, in.Text, in.Sensitive))
}

type GetDropdownOptionsTool struct {
	session input.BrowserSession
}

func NewGetDropdownOptionsTool(session input.BrowserSession) *GetDropdownOptionsTool {
	return &GetDropdownOptionsTool{session: session}
}

func (t *GetDropdownOptionsTool) Name() entity.ToolName { return entity.ToolGetDropdownOptions }
func (t *GetDropdownOptionsTool) Description() string {
	return "List the options of the <select> element with the given index"
}
func (t *GetDropdownOptionsTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"index"}, map[string]interface{}{
		"index": indexProp(),
	})
}

func (t *GetDropdownOptionsTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Index int `json:"index"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.ListDropdownOptions(ctx, in.Index))
}

type SelectDropdownOptionTool struct {
	session input.BrowserSession
}

func NewSelectDropdownOptionTool(session input.BrowserSession) *SelectDropdownOptionTool {
	return &SelectDropdownOptionTool{session: session}
}

func (t *SelectDropdownOptionTool) Name() entity.ToolName { return entity.ToolSelectDropdownOption }
func (t *SelectDropdownOptionTool) Description() string {
	return "Select the option whose visible text matches exactly"
}
func (t *SelectDropdownOptionTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"index", "text"}, map[string]interface{}{
		"index": indexProp(),
		"text":  prop("string", "Visible option text"),
	})
}

func (t *SelectDropdownOptionTool) Execute(ctx context.Context, args string) (*entity.ToolResult, error) {
	var in struct {
		Index int    `json:"index"`
		Text  string `json:"text"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}
	return textResult(t.session.SelectDropdownOption(ctx, in.Index, in.Text))
}
