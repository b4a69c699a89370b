package rod

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"time"

	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var (
	_ output.PagePort    = (*Page)(nil)
	_ output.ElementPort = (*Element)(nil)
)

const maxScreenshotWidth = 1024

type Page struct {
	page    *rod.Page
	timeout time.Duration
}

// bound returns the page scoped to ctx and the operation timeout.
func (p *Page) bound(ctx context.Context) (*rod.Page, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	return p.page.Context(ctx), cancel
}

func (p *Page) ID() string {
	return string(p.page.TargetID)
}

func (p *Page) URL(ctx context.Context) (string, error) {
	pg, cancel := p.bound(ctx)
	defer cancel()
	info, err := pg.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.URL, nil
}

func (p *Page) Title(ctx context.Context) (string, error) {
	pg, cancel := p.bound(ctx)
	defer cancel()
	info, err := pg.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.Title, nil
}

func (p *Page) Activate(ctx context.Context) error {
	pg, cancel := p.bound(ctx)
	defer cancel()
	if _, err := pg.Activate(); err != nil {
		return fmt.Errorf("activate page: %w", err)
	}
	return nil
}

// Navigate waits for the load event but does not fail when it never fires.
func (p *Page) Navigate(ctx context.Context, url string) error {
	pg, cancel := p.bound(ctx)
	defer cancel()
	if err := pg.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	_ = pg.WaitLoad()
	return nil
}

func (p *Page) GoBack(ctx context.Context) error {
	pg, cancel := p.bound(ctx)
	defer cancel()
	if err := pg.NavigateBack(); err != nil {
		return fmt.Errorf("navigate back: %w", err)
	}
	return nil
}

// Evaluate calls the function source js with args and returns its result
// serialized as JSON. An undefined result is returned as an empty payload.
func (p *Page) Evaluate(ctx context.Context, js string, args ...any) (json.RawMessage, error) {
	pg, cancel := p.bound(ctx)
	defer cancel()
	res, err := pg.Eval(js, args...)
	if err != nil {
		return nil, err
	}
	if res.Type == proto.RuntimeRemoteObjectTypeUndefined {
		return json.RawMessage{}, nil
	}
	return json.RawMessage(res.Value.JSON("", "")), nil
}

func (p *Page) Query(ctx context.Context, locator string) ([]output.ElementPort, error) {
	pg, cancel := p.bound(ctx)
	defer cancel()
	els, err := pg.Elements(locator)
	if err != nil {
		return nil, err
	}
	out := make([]output.ElementPort, 0, len(els))
	for _, el := range els {
		out = append(out, &Element{el: el, timeout: p.timeout})
	}
	return out, nil
}

// Press sends a key or a combination such as "Control+A". Text that names no
// key is inserted as typed characters.
func (p *Page) Press(ctx context.Context, keys string) error {
	pg, cancel := p.bound(ctx)
	defer cancel()

	combo, ok := parseKeys(keys)
	if !ok {
		if err := pg.InsertText(keys); err != nil {
			return fmt.Errorf("insert text: %w", err)
		}
		return nil
	}
	if err := pg.KeyActions().Press(combo.modifiers...).Type(combo.key).Do(); err != nil {
		return fmt.Errorf("key actions: %w", err)
	}
	return nil
}

func (p *Page) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	pg, cancel := p.bound(ctx)
	defer cancel()

	imgBytes, err := pg.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	if img.Bounds().Dx() > maxScreenshotWidth {
		img = imaging.Resize(img, maxScreenshotWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

type Element struct {
	el      *rod.Element
	timeout time.Duration
}

func (e *Element) bound(ctx context.Context) (*rod.Element, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	return e.el.Context(ctx), cancel
}

func (e *Element) TagName(ctx context.Context) (string, error) {
	el, cancel := e.bound(ctx)
	defer cancel()
	res, err := el.Eval(`() => this.tagName.toLowerCase()`)
	if err != nil {
		return "", fmt.Errorf("tag name: %w", err)
	}
	return res.Value.Str(), nil
}

func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	el, cancel := e.bound(ctx)
	defer cancel()
	v, err := el.Attribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute %s: %w", name, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

func (e *Element) Click(ctx context.Context) error {
	el, cancel := e.bound(ctx)
	defer cancel()
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// Fill replaces the current value with text.
func (e *Element) Fill(ctx context.Context, text string) error {
	el, cancel := e.bound(ctx)
	defer cancel()
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}
	return nil
}

const selectValueJS = `(v) => {
  this.value = v;
  this.dispatchEvent(new Event('input', {bubbles: true}));
  this.dispatchEvent(new Event('change', {bubbles: true}));
}`

func (e *Element) SelectValue(ctx context.Context, value string) error {
	el, cancel := e.bound(ctx)
	defer cancel()
	if _, err := el.Eval(selectValueJS, value); err != nil {
		return fmt.Errorf("select value: %w", err)
	}
	return nil
}
