package output

import (
	"context"
	"encoding/json"

	"browser-mcp/internal/domain/entity"
)

// LauncherPort starts a browser for one launch profile.
type LauncherPort interface {
	Launch(ctx context.Context, headless bool, profile entity.LaunchProfile) (BrowserPort, error)
}

type BrowserPort interface {
	Pages(ctx context.Context) ([]PagePort, error)
	NewPage(ctx context.Context, url string) (PagePort, error)
	Close() error
}

// PagePort is one tab. Element lookups always go through Query so no handle
// outlives a single call.
type PagePort interface {
	ID() string
	URL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	Activate(ctx context.Context) error

	Navigate(ctx context.Context, url string) error
	GoBack(ctx context.Context) error

	Evaluate(ctx context.Context, js string, args ...any) (json.RawMessage, error)
	Query(ctx context.Context, locator string) ([]ElementPort, error)
	Press(ctx context.Context, keys string) error
	Screenshot(ctx context.Context) (*entity.Screenshot, error)
}

type ElementPort interface {
	TagName(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	Click(ctx context.Context) error
	Fill(ctx context.Context, text string) error
	SelectValue(ctx context.Context, value string) error
}

// MarkupConverter turns page HTML into readable text.
type MarkupConverter interface {
	Convert(html string) (string, error)
}
