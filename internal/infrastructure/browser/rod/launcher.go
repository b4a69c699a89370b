package rod

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

var (
	_ output.LauncherPort = (*Launcher)(nil)
	_ output.BrowserPort  = (*Browser)(nil)
)

const defaultTimeout = 15 * time.Second

type LauncherConfig struct {
	// Bin is the browser executable. Empty lets rod find or download one.
	Bin string
	// Timeout bounds every single page or element operation.
	Timeout    time.Duration
	SlowMotion time.Duration
}

type Launcher struct {
	cfg LauncherConfig
}

func NewLauncher(cfg LauncherConfig) *Launcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Launcher{cfg: cfg}
}

// Launch starts a local browser for profile. The process is not bound to
// ctx: it must outlive the call that started it.
func (l *Launcher) Launch(ctx context.Context, headless bool, profile entity.LaunchProfile) (output.BrowserPort, error) {
	lnch := launcher.New().
		Headless(headless).
		Leakless(true).
		Delete("use-mock-keychain")
	if l.cfg.Bin != "" {
		lnch = lnch.Bin(l.cfg.Bin)
	}
	if profile.Stealth {
		lnch = lnch.Set("disable-blink-features", "AutomationControlled")
	}
	for _, arg := range profile.Args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if hasValue {
			lnch = lnch.Set(flags.Flag(name), value)
		} else {
			lnch = lnch.Set(flags.Flag(name))
		}
	}

	u, err := lnch.Launch()
	if err != nil {
		lnch.Kill()
		lnch.Cleanup()
		return nil, fmt.Errorf("launch %s: %w", profile.Name, err)
	}
	if err := ctx.Err(); err != nil {
		lnch.Kill()
		lnch.Cleanup()
		return nil, err
	}

	b := rod.New().ControlURL(u)
	if l.cfg.SlowMotion > 0 {
		b = b.SlowMotion(l.cfg.SlowMotion)
	}
	if err := b.Connect(); err != nil {
		lnch.Kill()
		lnch.Cleanup()
		return nil, fmt.Errorf("connect %s: %w", profile.Name, err)
	}

	return &Browser{
		browser:  b,
		launcher: lnch,
		stealth:  profile.Stealth,
		timeout:  l.cfg.Timeout,
	}, nil
}

type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	stealth  bool
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
}

// Pages lists open tabs in the order the browser reports its targets.
func (b *Browser) Pages(ctx context.Context) ([]output.PagePort, error) {
	pages, err := b.browser.Context(ctx).Pages()
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	out := make([]output.PagePort, 0, len(pages))
	for _, p := range pages {
		out = append(out, b.wrap(p))
	}
	return out, nil
}

func (b *Browser) NewPage(ctx context.Context, url string) (output.PagePort, error) {
	var (
		page *rod.Page
		err  error
	)
	if b.stealth {
		page, err = stealth.Page(b.browser)
		if err == nil && url != "" && url != "about:blank" {
			p := b.wrap(page)
			if navErr := p.Navigate(ctx, url); navErr != nil {
				_ = page.Close()
				return nil, navErr
			}
			return p, nil
		}
	} else {
		page, err = b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	}
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return b.wrap(page), nil
}

func (b *Browser) wrap(p *rod.Page) *Page {
	return &Page{page: p, timeout: b.timeout}
}

// Close is idempotent and also kills the browser process.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.browser.Close()
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}
