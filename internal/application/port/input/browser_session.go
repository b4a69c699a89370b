package input

import (
	"context"

	"browser-mcp/internal/domain/entity"
)

// BrowserSession is the operation set behind the browser tools. Soft
// negative results come back as outcomes; returned errors are hard failures.
type BrowserSession interface {
	Start(ctx context.Context, headless bool, task string) (string, error)
	End(ctx context.Context) (string, error)

	Navigate(ctx context.Context, url string) (entity.Outcome, error)
	GoBack(ctx context.Context) (entity.Outcome, error)
	Search(ctx context.Context, query string) (entity.Outcome, error)
	OpenTab(ctx context.Context, url string) (entity.Outcome, error)
	SwitchTab(ctx context.Context, ordinal int) (entity.Outcome, error)
	ListTabs(ctx context.Context) (entity.Outcome, error)
	Wait(ctx context.Context, seconds int) (entity.Outcome, error)

	Snapshot(ctx context.Context) (entity.Outcome, error)
	Click(ctx context.Context, index int) (entity.Outcome, error)
	Fill(ctx context.Context, index int, text string, sensitive bool) (entity.Outcome, error)
	ListDropdownOptions(ctx context.Context, index int) (entity.Outcome, error)
	SelectDropdownOption(ctx context.Context, index int, text string) (entity.Outcome, error)

	ScrollDown(ctx context.Context, amount *int) (entity.Outcome, error)
	ScrollUp(ctx context.Context, amount *int) (entity.Outcome, error)
	ScrollToText(ctx context.Context, text string) (entity.Outcome, error)
	SendKeys(ctx context.Context, keys string) (entity.Outcome, error)

	ValidatePage(ctx context.Context, expected string) (entity.Outcome, error)
	RunScript(ctx context.Context, source string) (entity.Outcome, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	Complete(success bool, text string) entity.Completion
}
