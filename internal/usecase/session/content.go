package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"browser-mcp/internal/domain/entity"

	"github.com/tidwall/gjson"
)

const validatePreviewLen = 800

// ValidatePage extracts the page content and optionally checks that expected
// appears in it, ignoring case.
func (s *Session) ValidatePage(ctx context.Context, expected string) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	raw, err := page.Evaluate(ctx, outerHTMLJS)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("read page html: %w", err)
	}

	content := gjson.ParseBytes(raw).String()
	if s.converter != nil {
		md, err := s.converter.Convert(content)
		switch {
		case err != nil:
			s.log.Warn("Markup conversion failed, using raw html", "error", err)
		case strings.TrimSpace(md) != "":
			content = md
		}
	}

	snippet := content
	if r := []rune(content); len(r) > validatePreviewLen {
		snippet = string(r[:validatePreviewLen])
	}

	if expected == "" {
		return entity.Success(fmt.Sprintf("Page content extracted:\n%s...", snippet)), nil
	}
	if strings.Contains(strings.ToLower(content), strings.ToLower(expected)) {
		return entity.Success(fmt.Sprintf("Validation successful: Expected text '%s' found on page.", expected)), nil
	}
	return entity.Warning(entity.ErrNotFound, fmt.Sprintf(
		"Validation warning: Expected text '%s' not found.\nExtracted snippet: %s...", expected, snippet)), nil
}

var functionSource = regexp.MustCompile(`^(async\s+)?(function\b|\([^)]*\)\s*=>|[A-Za-z_$][\w$]*\s*=>)`)

// asFunction wraps a bare expression so the engine can call it.
func asFunction(source string) string {
	src := strings.TrimSpace(source)
	if functionSource.MatchString(src) {
		return src
	}
	return "() => (" + src + ")"
}

// RunScript executes caller supplied code in the page. Script errors are
// reported as text, not as tool failures.
func (s *Session) RunScript(ctx context.Context, source string) (entity.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return entity.Outcome{}, err
	}
	raw, err := page.Evaluate(ctx, asFunction(source))
	if err != nil {
		return entity.Failure(err, "Error executing JavaScript: "+err.Error()), nil
	}

	res := gjson.ParseBytes(raw)
	if res.IsObject() || res.IsArray() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(res.Raw), "", "  "); err == nil {
			return entity.Success("JavaScript executed successfully:\n" + buf.String()), nil
		}
		return entity.Success("JavaScript executed successfully. Result (non-serializable): " + res.Raw), nil
	}

	result := res.Raw
	switch {
	case res.Type == gjson.String:
		result = res.String()
	case result == "":
		result = "undefined"
	}
	return entity.Success("JavaScript executed successfully. Result: " + result), nil
}

func (s *Session) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.requirePageLocked(ctx)
	if err != nil {
		return nil, err
	}
	shot, err := page.Screenshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return shot, nil
}

func (s *Session) Complete(success bool, text string) entity.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Info("Task completed", "success", success)
	return entity.Completion{Done: true, Success: success, ExtractedContent: text}
}
