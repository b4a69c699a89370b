package session

import (
	"context"
	"fmt"
	"strings"

	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/domain/entity"
)

func pageIDs(pages []output.PagePort) map[string]bool {
	ids := make(map[string]bool, len(pages))
	for _, p := range pages {
		ids[p.ID()] = true
	}
	return ids
}

// openedSince returns the pages of after that were not open before, in the
// order the engine reports them.
func openedSince(before map[string]bool, after []output.PagePort) []output.PagePort {
	var fresh []output.PagePort
	for _, p := range after {
		if !before[p.ID()] {
			fresh = append(fresh, p)
		}
	}
	return fresh
}

// normalizeOrdinal maps ordinal onto [0, n). Negative ordinals count from the end.
func normalizeOrdinal(ordinal, n int) (int, bool) {
	if ordinal < 0 {
		ordinal += n
	}
	if ordinal < 0 || ordinal >= n {
		return 0, false
	}
	return ordinal, true
}

func (s *Session) OpenTab(ctx context.Context, url string) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireBrowserLocked(); err != nil {
		return entity.Outcome{}, err
	}
	page, err := s.browser.NewPage(ctx, url)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("open tab %s: %w", url, err)
	}
	if err := s.settle(ctx, s.cfg.ActionSettle); err != nil {
		return entity.Outcome{}, err
	}
	s.page = page
	s.clearIndexLocked("open_tab")
	return entity.Success("Opened new tab with " + url), nil
}

func (s *Session) SwitchTab(ctx context.Context, ordinal int) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireBrowserLocked(); err != nil {
		return entity.Outcome{}, err
	}
	pages, err := s.browser.Pages(ctx)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("list tabs: %w", err)
	}
	if len(pages) == 0 {
		return entity.Warning(entity.ErrNotFound, "No tabs open."), nil
	}

	idx, ok := normalizeOrdinal(ordinal, len(pages))
	if !ok {
		return entity.Failure(entity.ErrNotFound, fmt.Sprintf(
			"Invalid tab index %d. Valid range is 0..%d (or -%d..-1 from the end), %d tabs open.",
			ordinal, len(pages)-1, len(pages), len(pages))), nil
	}

	page := pages[idx]
	if err := page.Activate(ctx); err != nil {
		s.log.Warn("Could not bring tab to front", "tab", idx, "error", err)
	}
	s.page = page
	s.clearIndexLocked("switch_tab")

	label, _ := page.Title(ctx)
	if label == "" {
		label, _ = page.URL(ctx)
	}
	return entity.Success(fmt.Sprintf("Switched to tab %d (%s)", idx, label)), nil
}

func (s *Session) ListTabs(ctx context.Context) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireBrowserLocked(); err != nil {
		return entity.Outcome{}, err
	}
	pages, err := s.browser.Pages(ctx)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("list tabs: %w", err)
	}
	if len(pages) == 0 {
		return entity.Warning(entity.ErrNotFound, "No tabs open."), nil
	}

	lines := []string{"Open tabs:"}
	for _, tab := range s.describeTabs(ctx, pages) {
		line := fmt.Sprintf("%d: %s (%s)", tab.Ordinal, tab.Title, tab.URL)
		if tab.Active {
			line += " [active]"
		}
		lines = append(lines, line)
	}
	return entity.Success(strings.Join(lines, "\n")), nil
}

func (s *Session) describeTabs(ctx context.Context, pages []output.PagePort) []entity.TabInfo {
	tabs := make([]entity.TabInfo, 0, len(pages))
	for i, p := range pages {
		title, _ := p.Title(ctx)
		url, _ := p.URL(ctx)
		tabs = append(tabs, entity.TabInfo{
			Ordinal: i,
			Title:   title,
			URL:     url,
			Active:  s.page != nil && p.ID() == s.page.ID(),
		})
	}
	return tabs
}
