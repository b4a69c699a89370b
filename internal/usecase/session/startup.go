package session

import (
	"context"
	"errors"
	"fmt"

	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/domain/entity"
)

// DefaultLaunchProfiles is the startup fallback order: a hardened container
// profile first, then plainer ones.
func DefaultLaunchProfiles() []entity.LaunchProfile {
	return []entity.LaunchProfile{
		{
			Name:    "robust",
			Stealth: true,
			Args: []string{
				"no-sandbox",
				"disable-dev-shm-usage",
				"disable-gpu",
				"disable-web-security",
				"disable-features=VizDisplayCompositor",
			},
		},
		{
			Name: "basic",
			Args: []string{"no-sandbox", "disable-dev-shm-usage"},
		},
		{
			Name: "minimal",
		},
	}
}

// launch tries every profile in order under one overall deadline and returns
// the first browser that comes up.
func (s *Session) launch(ctx context.Context, headless bool) (output.BrowserPort, error) {
	if len(s.cfg.Profiles) == 0 {
		return nil, fmt.Errorf("%w: no launch profiles configured", entity.ErrStartup)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.StartupTimeout)
	defer cancel()

	var lastErr error
	total := len(s.cfg.Profiles)
	for i, profile := range s.cfg.Profiles {
		if ctx.Err() != nil {
			lastErr = fmt.Errorf("startup deadline of %s exceeded before configuration %d", s.cfg.StartupTimeout, i+1)
			break
		}

		s.log.Info("Trying browser configuration", "attempt", i+1, "total", total, "profile", profile.Name)
		browser, err := s.launchOnce(ctx, headless, profile)
		if err == nil {
			s.log.Info("Browser started", "attempt", i+1, "profile", profile.Name)
			return browser, nil
		}

		lastErr = fmt.Errorf("configuration %d (%s) failed: %w", i+1, profile.Name, err)
		s.log.Warn("Browser configuration failed", "attempt", i+1, "profile", profile.Name, "error", err)
	}

	return nil, fmt.Errorf("%w with all %d configurations, last error: %v", entity.ErrStartup, total, lastErr)
}

// launchOnce bounds a single attempt. A launch that outlives its deadline is
// abandoned; if it still produces a browser later, that browser is closed.
func (s *Session) launchOnce(ctx context.Context, headless bool, profile entity.LaunchProfile) (output.BrowserPort, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.AttemptTimeout)
	defer cancel()

	type result struct {
		browser output.BrowserPort
		err     error
	}
	done := make(chan result, 1)
	go func() {
		b, err := s.launcher.Launch(ctx, headless, profile)
		done <- result{browser: b, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && r.browser != nil {
			_ = r.browser.Close()
		}
		return r.browser, r.err
	case <-ctx.Done():
		go func() {
			if r := <-done; r.browser != nil {
				_ = r.browser.Close()
			}
		}()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timed out after %s", s.cfg.AttemptTimeout)
		}
		return nil, ctx.Err()
	}
}
