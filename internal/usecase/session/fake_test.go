package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/domain/entity"
)

// fakeEngine stands in for a real browser. Pages hold a flat list of
// elements addressed by locator; scripts are dispatched by identity.

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                          {}
func (nopLogger) Info(string, ...any)                           {}
func (nopLogger) Warn(string, ...any)                           {}
func (nopLogger) Error(string, ...any)                          {}
func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                  { return nil }

type launchStep struct {
	delay time.Duration
	err   error
}

type fakeLauncher struct {
	mu       sync.Mutex
	steps    map[string]launchStep
	attempts []string
	browser  *fakeBrowser
	launched []*fakeBrowser
}

func newFakeLauncher() *fakeLauncher {
	return &fakeLauncher{steps: map[string]launchStep{}}
}

func (l *fakeLauncher) Launch(ctx context.Context, _ bool, profile entity.LaunchProfile) (output.BrowserPort, error) {
	l.mu.Lock()
	l.attempts = append(l.attempts, profile.Name)
	step := l.steps[profile.Name]
	l.mu.Unlock()

	if step.delay > 0 {
		select {
		case <-time.After(step.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if step.err != nil {
		return nil, step.err
	}

	b := newFakeBrowser()
	l.mu.Lock()
	l.browser = b
	l.launched = append(l.launched, b)
	l.mu.Unlock()
	return b, nil
}

func (l *fakeLauncher) Attempts() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.attempts...)
}

type fakeBrowser struct {
	mu     sync.Mutex
	pages  []*fakePage
	next   int
	closed bool
	// sites seeds pages opened on a url.
	sites map[string]func(*fakePage)
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{sites: map[string]func(*fakePage){}}
}

func (b *fakeBrowser) Pages(context.Context) ([]output.PagePort, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]output.PagePort, 0, len(b.pages))
	for _, p := range b.pages {
		out = append(out, p)
	}
	return out, nil
}

func (b *fakeBrowser) NewPage(_ context.Context, url string) (output.PagePort, error) {
	return b.open(url), nil
}

func (b *fakeBrowser) open(url string) *fakePage {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	p := &fakePage{id: fmt.Sprintf("page-%d", b.next), browser: b, url: url}
	if seed, ok := b.sites[url]; ok {
		seed(p)
	}
	b.pages = append(b.pages, p)
	return p
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *fakeBrowser) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

type fakePage struct {
	id      string
	browser *fakeBrowser

	url      string
	title    string
	history  []string
	html     string
	elements []*fakeElement
	scrollY  int
	keys     []string

	// extraction, when set, replaces the element listing payload.
	extraction    json.RawMessage
	extractionErr error
	urlErr        error
	scriptOut     json.RawMessage
	scriptErr     error
	lastScript    string
	activated     bool
}

func (p *fakePage) add(els ...*fakeElement) *fakePage {
	for _, el := range els {
		el.page = p
	}
	p.elements = append(p.elements, els...)
	return p
}

// remove detaches the element with locator from the page.
func (p *fakePage) remove(locator string) {
	for _, el := range p.elements {
		if el.locator == locator {
			el.detached = true
		}
	}
}

func (p *fakePage) ID() string                            { return p.id }
func (p *fakePage) Title(context.Context) (string, error) { return p.title, nil }

func (p *fakePage) URL(context.Context) (string, error) {
	if p.urlErr != nil {
		return "", p.urlErr
	}
	return p.url, nil
}

func (p *fakePage) Activate(context.Context) error {
	p.activated = true
	return nil
}

func (p *fakePage) Press(_ context.Context, keys string) error {
	p.keys = append(p.keys, keys)
	return nil
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	if p.url != "" {
		p.history = append(p.history, p.url)
	}
	p.url = url
	p.elements = nil
	if seed, ok := p.browser.sites[url]; ok {
		seed(p)
	}
	return nil
}

func (p *fakePage) GoBack(context.Context) error {
	if len(p.history) == 0 {
		return nil
	}
	prev := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.url = prev
	return nil
}

func (p *fakePage) Query(_ context.Context, locator string) ([]output.ElementPort, error) {
	var out []output.ElementPort
	for _, el := range p.elements {
		if el.locator == locator && !el.detached {
			out = append(out, el)
		}
	}
	return out, nil
}

func (p *fakePage) Screenshot(context.Context) (*entity.Screenshot, error) {
	return &entity.Screenshot{Data: []byte{0x89, 'P', 'N', 'G'}, Format: "png", Width: 1, Height: 1}, nil
}

func (p *fakePage) find(locator string) *fakeElement {
	for _, el := range p.elements {
		if el.locator == locator && !el.detached {
			return el
		}
	}
	return nil
}

func (p *fakePage) Evaluate(_ context.Context, js string, args ...any) (json.RawMessage, error) {
	switch js {
	case interactiveElementsJS:
		if p.extractionErr != nil {
			return nil, p.extractionErr
		}
		if p.extraction != nil {
			return p.extraction, nil
		}
		items := []entity.ElementDescriptor{}
		for _, el := range p.elements {
			if el.detached || el.hidden {
				continue
			}
			items = append(items, el.descriptor())
		}
		return json.Marshal(items)

	case dropdownOptionsJS:
		el := p.find(args[0].(string))
		if el == nil || el.tag != "select" {
			return json.RawMessage("null"), nil
		}
		return json.Marshal(el.options)

	case optionValueForTextJS:
		el := p.find(args[0].(string))
		if el == nil || el.tag != "select" {
			return json.RawMessage("null"), nil
		}
		want := strings.TrimSpace(args[1].(string))
		for _, o := range el.options {
			if strings.TrimSpace(o.Text) == want {
				return json.Marshal(o.Value)
			}
		}
		return json.RawMessage("null"), nil

	case scrollByJS:
		p.scrollY += args[0].(int)
		return json.RawMessage{}, nil

	case scrollViewportJS:
		p.scrollY += args[0].(int) * 1000
		return json.RawMessage{}, nil

	case scrollToTextJS:
		found := strings.Contains(strings.ToLower(p.html), strings.ToLower(args[0].(string)))
		return json.Marshal(found)

	case outerHTMLJS:
		return json.Marshal(p.html)
	}

	p.lastScript = js
	if p.scriptErr != nil {
		return nil, p.scriptErr
	}
	if p.scriptOut == nil {
		return json.RawMessage(""), nil
	}
	return p.scriptOut, nil
}

type fakeElement struct {
	page     *fakePage
	locator  string
	tag      string
	typ      string
	text     string
	value    string
	options  []entity.DropdownOption
	hidden   bool
	detached bool
	clicks   int
	onClick  func(p *fakePage)
}

func (e *fakeElement) descriptor() entity.ElementDescriptor {
	return entity.ElementDescriptor{Locator: e.locator, Tag: e.tag, InputType: e.typ, Text: e.text}
}

func (e *fakeElement) TagName(context.Context) (string, error) { return e.tag, nil }

func (e *fakeElement) Attribute(_ context.Context, name string) (string, error) {
	if name == "type" {
		return e.typ, nil
	}
	return "", nil
}

func (e *fakeElement) Click(context.Context) error {
	if e.detached {
		return errors.New("node is detached")
	}
	e.clicks++
	if e.onClick != nil {
		e.onClick(e.page)
	}
	return nil
}

func (e *fakeElement) Fill(_ context.Context, text string) error {
	e.value = text
	return nil
}

func (e *fakeElement) SelectValue(_ context.Context, value string) error {
	e.value = value
	return nil
}

func testConfig() Config {
	return Config{
		StartupTimeout: 2 * time.Second,
		AttemptTimeout: time.Second,
		Profiles:       []entity.LaunchProfile{{Name: "robust"}, {Name: "basic"}, {Name: "minimal"}},
	}
}

type mapConverter map[string]string

func (m mapConverter) Convert(html string) (string, error) {
	if out, ok := m[html]; ok {
		return out, nil
	}
	return "", errors.New("unknown markup")
}
