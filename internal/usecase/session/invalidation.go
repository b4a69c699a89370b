package session

import (
	"context"

	"browser-mcp/internal/application/port/output"
)

// navigatedAway reports whether the page moved off the URL the index was
// built on. Unknown URLs never count as a move.
func navigatedAway(snapshotURL, currentURL string) bool {
	return snapshotURL != "" && currentURL != "" && snapshotURL != currentURL
}

// InvalidateIfNavigated clears the index when currentURL differs from the
// snapshot URL. DOM changes that keep the URL are not detected here; the
// per-call locator re-resolution catches elements that went away.
func (x *Index) InvalidateIfNavigated(currentURL string) bool {
	if !navigatedAway(x.url, currentURL) {
		return false
	}
	x.Clear()
	return true
}

func (s *Session) invalidateIfNavigatedLocked(ctx context.Context, page output.PagePort, action string) {
	current, err := page.URL(ctx)
	if err != nil {
		s.log.Warn("Could not read page URL after action", "action", action, "error", err)
		return
	}
	snapshotURL := s.index.URL()
	if s.index.InvalidateIfNavigated(current) {
		s.log.Info("Index invalidated by navigation", "action", action, "from", snapshotURL, "to", current, "epoch", s.index.Epoch())
	}
}

func (s *Session) clearIndexLocked(reason string) {
	s.index.Clear()
	s.log.Debug("Index cleared", "reason", reason, "epoch", s.index.Epoch())
}
