package session

import (
	"context"
	"fmt"
	"net/url"

	"browser-mcp/internal/domain/entity"
)

func (s *Session) Navigate(ctx context.Context, target string) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.navigateLocked(ctx, target, "navigate"); err != nil {
		return entity.Outcome{}, err
	}
	return entity.Success("Navigated to " + target), nil
}

func (s *Session) Search(ctx context.Context, query string) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := fmt.Sprintf(s.cfg.SearchURL, url.QueryEscape(query))
	if err := s.navigateLocked(ctx, target, "search"); err != nil {
		return entity.Outcome{}, err
	}
	return entity.Success(fmt.Sprintf("Searched for %q in Google", query)), nil
}

func (s *Session) navigateLocked(ctx context.Context, target, reason string) error {
	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return err
	}
	if err := page.Navigate(ctx, target); err != nil {
		return fmt.Errorf("navigate to %s: %w", target, err)
	}
	if err := s.settle(ctx, s.cfg.NavigationSettle); err != nil {
		return err
	}
	s.clearIndexLocked(reason)
	s.log.Info("Navigated", "url", target)
	return nil
}

func (s *Session) GoBack(ctx context.Context) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	if err := page.GoBack(ctx); err != nil {
		return entity.Outcome{}, fmt.Errorf("go back: %w", err)
	}
	if err := s.settle(ctx, s.cfg.ActionSettle); err != nil {
		return entity.Outcome{}, err
	}
	s.clearIndexLocked("go_back")
	return entity.Success("Navigated back"), nil
}

// Wait touches no session state and therefore does not take the lock.
func (s *Session) Wait(ctx context.Context, seconds int) (entity.Outcome, error) {
	if seconds < 0 {
		seconds = 0
	}
	if err := s.settle(ctx, secondsToDuration(seconds)); err != nil {
		return entity.Outcome{}, err
	}
	return entity.Success(fmt.Sprintf("Waited for %d seconds", seconds)), nil
}
