// Package tool adapts browser session operations to named tools with JSON
// argument schemas.
package tool

import (
	"encoding/json"
	"fmt"
	"strings"

	"browser-mcp/internal/application/port/input"
	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/application/service"
	"browser-mcp/internal/domain/entity"
)

// NewRegistry registers every browser tool in the order they are announced.
func NewRegistry(session input.BrowserSession) *service.ToolRegistryImpl {
	r := service.NewToolRegistry()
	for _, t := range All(session) {
		r.Register(t)
	}
	return r
}

func All(session input.BrowserSession) []output.ToolPort {
	return []output.ToolPort{
		NewInitializeBrowserTool(session),
		NewCloseBrowserTool(session),
		NewSearchGoogleTool(session),
		NewGoToURLTool(session),
		NewGoBackTool(session),
		NewWaitTool(session),
		NewClickElementTool(session),
		NewInputTextTool(session),
		NewSwitchTabTool(session),
		NewOpenTabTool(session),
		NewListTabsTool(session),
		NewInspectPageTool(session),
		NewScrollDownTool(session),
		NewScrollUpTool(session),
		NewSendKeysTool(session),
		NewScrollToTextTool(session),
		NewGetDropdownOptionsTool(session),
		NewSelectDropdownOptionTool(session),
		NewValidatePageTool(session),
		NewExecuteJavaScriptTool(session),
		NewTakeScreenshotTool(session),
		NewDoneTool(session),
	}
}

// decode unmarshals tool arguments. Empty arguments decode as {}.
func decode(args string, v any) error {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(args), v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func textResult(out entity.Outcome, err error) (*entity.ToolResult, error) {
	if err != nil {
		return nil, err
	}
	return &entity.ToolResult{Text: out.String()}, nil
}

func objectSchema(required []string, props map[string]interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func indexProp() map[string]interface{} {
	return prop("integer", "Element index from the latest inspect_page() listing")
}
