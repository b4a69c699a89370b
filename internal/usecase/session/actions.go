package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/domain/entity"

	"github.com/tidwall/gjson"
)

// Snapshot rebuilds the index from one scan of the active page.
func (s *Session) Snapshot(ctx context.Context) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	raw, err := page.Evaluate(ctx, interactiveElementsJS)
	if err != nil {
		// Cancellation and a dead page are fatal; other evaluation errors are
		// extraction failures.
		if ctx.Err() != nil {
			return entity.Outcome{}, fmt.Errorf("evaluate interactive elements: %w", err)
		}
		if _, urlErr := page.URL(ctx); urlErr != nil {
			return entity.Outcome{}, fmt.Errorf("evaluate interactive elements: %w", err)
		}
		return s.extractionFailedLocked(fmt.Errorf("%w: %v", entity.ErrExtraction, err)), nil
	}

	items, err := parseDescriptors(raw)
	if err != nil {
		return s.extractionFailedLocked(err), nil
	}

	current, err := page.URL(ctx)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("read page url: %w", err)
	}
	s.index.Replace(items, current)
	s.log.Info("Snapshot taken", "url", current, "elements", len(items), "epoch", s.index.Epoch())

	if len(items) == 0 {
		return entity.Warning(nil, "No interactive elements found on this page."), nil
	}
	return entity.Success(formatListing(items)), nil
}

func (s *Session) extractionFailedLocked(err error) entity.Outcome {
	s.clearIndexLocked("extraction_failed")
	s.log.Error("Element extraction failed", "error", err)
	return entity.Failure(err, "Error extracting elements from page. Page might not be fully loaded.")
}

// liveElement resolves index to its locator and re-queries the page. An
// index whose locator matches nothing any more is evicted.
func (s *Session) liveElement(ctx context.Context, page output.PagePort, index int) (output.ElementPort, string, error) {
	locator, err := s.index.Resolve(index)
	if err != nil {
		return nil, "", err
	}
	els, err := page.Query(ctx, locator)
	if err != nil {
		return nil, "", fmt.Errorf("query %q: %w", locator, err)
	}
	if len(els) == 0 {
		s.index.Evict(index)
		s.log.Info("Stale index evicted", "index", index, "locator", locator, "epoch", s.index.Epoch())
		return nil, "", fmt.Errorf("%w: index %d", entity.ErrStaleElement, index)
	}
	return els[0], locator, nil
}

// missOutcome turns a soft resolution miss into an outcome.
func missOutcome(index int, err error) (entity.Outcome, bool) {
	switch {
	case errors.Is(err, entity.ErrIndexNotFound):
		return entity.Failure(err, fmt.Sprintf(
			"Element with index %d does not exist - call inspect_page() first and retry", index)), true
	case errors.Is(err, entity.ErrStaleElement):
		return entity.Failure(err, fmt.Sprintf(
			"Index %d: element not found anymore (page changed). Re-run inspect_page().", index)), true
	}
	return entity.Outcome{}, false
}

func (s *Session) Click(ctx context.Context, index int) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	el, _, err := s.liveElement(ctx, page, index)
	if err != nil {
		if out, ok := missOutcome(index, err); ok {
			return out, nil
		}
		return entity.Outcome{}, err
	}

	tag, _ := el.TagName(ctx)
	typ, _ := el.Attribute(ctx, "type")
	if strings.EqualFold(tag, "input") && strings.EqualFold(typ, "file") {
		return entity.Warning(nil, fmt.Sprintf("Index %d opens a file picker. Use a dedicated upload tool.", index)), nil
	}

	before, err := s.browser.Pages(ctx)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("list tabs: %w", err)
	}
	if err := el.Click(ctx); err != nil {
		return entity.Outcome{}, fmt.Errorf("click index %d: %w", index, err)
	}
	if err := s.settle(ctx, s.cfg.ActionSettle); err != nil {
		return entity.Outcome{}, err
	}
	after, err := s.browser.Pages(ctx)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("list tabs: %w", err)
	}

	msg := fmt.Sprintf("Clicked element at index %d", index)
	if fresh := openedSince(pageIDs(before), after); len(fresh) > 0 {
		s.page = fresh[len(fresh)-1]
		s.clearIndexLocked("new_tab")
		s.log.Info("Click opened a new tab", "index", index, "new_tabs", len(fresh))
		return entity.Success(msg + " - New tab opened and switched to it."), nil
	}

	s.invalidateIfNavigatedLocked(ctx, page, "click")
	return entity.Success(msg), nil
}

func (s *Session) Fill(ctx context.Context, index int, text string, sensitive bool) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	el, _, err := s.liveElement(ctx, page, index)
	if err != nil {
		if out, ok := missOutcome(index, err); ok {
			return out, nil
		}
		return entity.Outcome{}, err
	}
	if err := el.Fill(ctx, text); err != nil {
		return entity.Outcome{}, fmt.Errorf("fill index %d: %w", index, err)
	}
	s.invalidateIfNavigatedLocked(ctx, page, "fill")

	if sensitive {
		return entity.Success(fmt.Sprintf("Input sensitive data into index %d", index)), nil
	}
	return entity.Success(fmt.Sprintf("Input %s into index %d", text, index)), nil
}

func (s *Session) ListDropdownOptions(ctx context.Context, index int) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	_, locator, err := s.liveElement(ctx, page, index)
	if err != nil {
		if out, ok := missOutcome(index, err); ok {
			return out, nil
		}
		return entity.Outcome{}, err
	}

	raw, err := page.Evaluate(ctx, dropdownOptionsJS, locator)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("read options of index %d: %w", index, err)
	}
	var opts []entity.DropdownOption
	if res := gjson.ParseBytes(raw); res.IsArray() {
		if err := json.Unmarshal([]byte(res.Raw), &opts); err != nil {
			return entity.Outcome{}, fmt.Errorf("decode options of index %d: %w", index, err)
		}
	}
	if len(opts) == 0 {
		return entity.Warning(entity.ErrNotFound, fmt.Sprintf(
			"No options found (or element %d is not a <select>).", index)), nil
	}

	lines := make([]string, 0, len(opts)+1)
	for _, o := range opts {
		lines = append(lines, fmt.Sprintf("%d: text=%q value=%q", o.Index, o.Text, o.Value))
	}
	lines = append(lines, "Use select_dropdown_option(index, text=<visible text>)")
	return entity.Success(strings.Join(lines, "\n")), nil
}

// SelectDropdownOption picks the option whose visible text equals text and
// sets the control to that option's value.
func (s *Session) SelectDropdownOption(ctx context.Context, index int, text string) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	el, locator, err := s.liveElement(ctx, page, index)
	if err != nil {
		if out, ok := missOutcome(index, err); ok {
			return out, nil
		}
		return entity.Outcome{}, err
	}

	raw, err := page.Evaluate(ctx, optionValueForTextJS, locator, text)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("match option of index %d: %w", index, err)
	}
	res := gjson.ParseBytes(raw)
	if res.Type != gjson.String {
		return entity.Warning(entity.ErrNotFound, fmt.Sprintf("Could not find option with visible text %q.", text)), nil
	}

	value := res.String()
	if err := el.SelectValue(ctx, value); err != nil {
		return entity.Outcome{}, fmt.Errorf("select option of index %d: %w", index, err)
	}
	s.invalidateIfNavigatedLocked(ctx, page, "select_option")
	return entity.Success(fmt.Sprintf("Selected option %q with value %q", text, value)), nil
}

func (s *Session) ScrollDown(ctx context.Context, amount *int) (entity.Outcome, error) {
	return s.scroll(ctx, "down", 1, amount)
}

func (s *Session) ScrollUp(ctx context.Context, amount *int) (entity.Outcome, error) {
	return s.scroll(ctx, "up", -1, amount)
}

// scroll moves by amount pixels, or by one viewport when amount is nil.
func (s *Session) scroll(ctx context.Context, direction string, sign int, amount *int) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}

	if amount == nil {
		if _, err := page.Evaluate(ctx, scrollViewportJS, sign); err != nil {
			return entity.Outcome{}, fmt.Errorf("scroll %s: %w", direction, err)
		}
		return entity.Success(fmt.Sprintf("Scrolled %s the page by one page", direction)), nil
	}

	if _, err := page.Evaluate(ctx, scrollByJS, sign*(*amount)); err != nil {
		return entity.Outcome{}, fmt.Errorf("scroll %s: %w", direction, err)
	}
	return entity.Success(fmt.Sprintf("Scrolled %s the page by %d pixels", direction, *amount)), nil
}

func (s *Session) ScrollToText(ctx context.Context, text string) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	raw, err := page.Evaluate(ctx, scrollToTextJS, text)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("scroll to text: %w", err)
	}
	if !gjson.ParseBytes(raw).Bool() {
		return entity.Warning(entity.ErrNotFound, fmt.Sprintf("Text '%s' not found or not visible on page", text)), nil
	}
	return entity.Success("Scrolled to text: " + text), nil
}

func (s *Session) SendKeys(ctx context.Context, keys string) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	if err := page.Press(ctx, keys); err != nil {
		return entity.Outcome{}, fmt.Errorf("send keys %q: %w", keys, err)
	}
	if err := s.settle(ctx, s.cfg.ActionSettle); err != nil {
		return entity.Outcome{}, err
	}
	s.invalidateIfNavigatedLocked(ctx, page, "send_keys")
	return entity.Success("Sent keys: " + keys), nil
}
