package entity

type ToolName string

const (
	ToolInitializeBrowser    ToolName = "initialize_browser"
	ToolCloseBrowser         ToolName = "close_browser"
	ToolSearchGoogle         ToolName = "search_google"
	ToolGoToURL              ToolName = "go_to_url"
	ToolGoBack               ToolName = "go_back"
	ToolWait                 ToolName = "wait"
	ToolClickElement         ToolName = "click_element"
	ToolInputText            ToolName = "input_text"
	ToolSwitchTab            ToolName = "switch_tab"
	ToolOpenTab              ToolName = "open_tab"
	ToolListTabs             ToolName = "list_tabs"
	ToolInspectPage          ToolName = "inspect_page"
	ToolScrollDown           ToolName = "scroll_down"
	ToolScrollUp             ToolName = "scroll_up"
	ToolSendKeys             ToolName = "send_keys"
	ToolScrollToText         ToolName = "scroll_to_text"
	ToolGetDropdownOptions   ToolName = "get_dropdown_options"
	ToolSelectDropdownOption ToolName = "select_dropdown_option"
	ToolValidatePage         ToolName = "validate_page"
	ToolExecuteJavaScript    ToolName = "execute_javascript"
	ToolTakeScreenshot       ToolName = "take_screenshot"
	ToolDone                 ToolName = "done"
)

// SessionTools lists the tools announced to the agent when a session starts.
var SessionTools = []ToolName{
	ToolInitializeBrowser, ToolCloseBrowser, ToolSearchGoogle, ToolGoToURL, ToolGoBack,
	ToolWait, ToolClickElement, ToolInputText, ToolSwitchTab, ToolOpenTab, ToolListTabs,
	ToolInspectPage, ToolScrollDown, ToolScrollUp, ToolSendKeys, ToolScrollToText,
	ToolGetDropdownOptions, ToolSelectDropdownOption, ToolValidatePage,
	ToolExecuteJavaScript, ToolTakeScreenshot, ToolDone,
}

func (t ToolName) String() string {
	return string(t)
}

// ToolResult is what a tool hands back to the transport.
type ToolResult struct {
	Text       string
	Structured any
	Image      *Screenshot
}
