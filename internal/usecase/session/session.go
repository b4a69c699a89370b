// Package session owns one browser session: the active page, the snapshot
// index over its interactive elements, and every tool action on top of them.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"browser-mcp/internal/application/port/input"
	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.BrowserSession = (*Session)(nil)

const (
	defaultStartupTimeout   = 90 * time.Second
	defaultAttemptTimeout   = 30 * time.Second
	defaultNavigationSettle = 500 * time.Millisecond
	defaultActionSettle     = 300 * time.Millisecond
	defaultSearchURL        = "https://www.google.com/search?udm=14&q=%s"
)

type Config struct {
	StartupTimeout time.Duration
	AttemptTimeout time.Duration
	// Fixed delays after navigation-like actions. They are not readiness
	// waits; callers re-snapshot when a page was not ready yet.
	NavigationSettle time.Duration
	ActionSettle     time.Duration
	// SearchURL is a format string receiving the escaped query.
	SearchURL string
	Profiles  []entity.LaunchProfile
}

func DefaultConfig() Config {
	return Config{
		StartupTimeout:   defaultStartupTimeout,
		AttemptTimeout:   defaultAttemptTimeout,
		NavigationSettle: defaultNavigationSettle,
		ActionSettle:     defaultActionSettle,
		SearchURL:        defaultSearchURL,
		Profiles:         DefaultLaunchProfiles(),
	}
}

// Session serializes every state transition behind mu. Page handles belong
// to the engine; the session only remembers which one is active.
type Session struct {
	mu sync.Mutex

	cfg       Config
	launcher  output.LauncherPort
	converter output.MarkupConverter
	baseLog   output.LoggerPort
	log       output.LoggerPort

	id      string
	browser output.BrowserPort
	page    output.PagePort
	index   *Index
}

// New builds an idle session. converter may be nil, validate_page then
// returns raw markup.
func New(launcher output.LauncherPort, converter output.MarkupConverter, logger output.LoggerPort, cfg Config) *Session {
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = defaultStartupTimeout
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = defaultAttemptTimeout
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = defaultSearchURL
	}
	if cfg.Profiles == nil {
		cfg.Profiles = DefaultLaunchProfiles()
	}

	return &Session{
		cfg:       cfg,
		launcher:  launcher,
		converter: converter,
		baseLog:   logger,
		log:       logger,
		index:     NewIndex(),
	}
}

// Start replaces any running session with a fresh browser on about:blank.
func (s *Session) Start(ctx context.Context, headless bool, task string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked()

	browser, err := s.launch(ctx, headless)
	if err != nil {
		s.log.Error("Browser startup failed", "error", err)
		return "", err
	}
	page, err := browser.NewPage(ctx, "about:blank")
	if err != nil {
		_ = browser.Close()
		return "", fmt.Errorf("%w: open initial page: %v", entity.ErrStartup, err)
	}

	s.id = uuid.NewString()
	s.log = s.baseLog.WithField("session_id", s.id)
	s.browser = browser
	s.page = page
	s.clearIndexLocked("start")
	s.log.Info("Browser session started", "headless", headless, "task", task)

	return guidance(task), nil
}

// End releases the browser. Ending without a session is a no-op.
func (s *Session) End(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		return "Browser closed successfully", nil
	}
	err := s.browser.Close()
	s.browser = nil
	s.page = nil
	s.clearIndexLocked("close")
	s.log.Info("Browser session closed")
	s.log = s.baseLog

	if err != nil {
		return "", fmt.Errorf("close browser: %w", err)
	}
	return "Browser closed successfully", nil
}

func (s *Session) teardownLocked() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.log.Warn("Closing previous browser failed", "error", err)
		}
	}
	s.browser = nil
	s.page = nil
	s.clearIndexLocked("teardown")
	s.log = s.baseLog
}

func (s *Session) requireBrowserLocked() error {
	if s.browser == nil {
		return entity.ErrPrecondition
	}
	return nil
}

// requirePageLocked returns the active page, opening a blank one when the
// session has none.
func (s *Session) requirePageLocked(ctx context.Context) (output.PagePort, error) {
	if err := s.requireBrowserLocked(); err != nil {
		return nil, err
	}
	if s.page == nil {
		page, err := s.browser.NewPage(ctx, "about:blank")
		if err != nil {
			return nil, fmt.Errorf("open page: %w", err)
		}
		s.page = page
		s.clearIndexLocked("new_page")
	}
	return s.page, nil
}

func (s *Session) settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func guidance(task string) string {
	names := make([]string, 0, len(entity.SessionTools))
	for _, t := range entity.SessionTools {
		names = append(names, t.String())
	}
	return fmt.Sprintf(
		"You can control a real browser with direct tools. Available actions: %s.\n"+
			"Your ultimate task is: %s\n"+
			"Call inspect_page() to get element indices, and call it again after the page changes. "+
			"If the task is achieved, call done().",
		strings.Join(names, ", "), task)
}

func secondsToDuration(n int) time.Duration {
	return time.Duration(n) * time.Second
}
