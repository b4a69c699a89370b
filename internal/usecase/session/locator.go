package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"browser-mcp/internal/domain/entity"

	"github.com/tidwall/gjson"
)

// parseDescriptors decodes the payload of interactiveElementsJS. Anything
// that is not a list of objects is an extraction failure. A JSON string that
// itself holds a list is accepted, some engines return that shape.
func parseDescriptors(raw []byte) ([]entity.ElementDescriptor, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: payload is not JSON", entity.ErrExtraction)
	}

	res := gjson.ParseBytes(raw)
	if res.Type == gjson.String {
		inner := strings.TrimSpace(res.String())
		if !strings.HasPrefix(inner, "[") || !strings.HasSuffix(inner, "]") || !gjson.Valid(inner) {
			return nil, fmt.Errorf("%w: page returned %q", entity.ErrExtraction, preview(inner, 200))
		}
		res = gjson.Parse(inner)
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: unexpected payload type %s", entity.ErrExtraction, res.Type)
	}

	var items []entity.ElementDescriptor
	if err := json.Unmarshal([]byte(res.Raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrExtraction, err)
	}

	return dedupeByLocator(items), nil
}

// dedupeByLocator keeps the first descriptor for every locator and drops
// entries without one. Collisions happen when the depth cap truncates paths.
func dedupeByLocator(items []entity.ElementDescriptor) []entity.ElementDescriptor {
	seen := make(map[string]bool, len(items))
	out := make([]entity.ElementDescriptor, 0, len(items))
	for _, it := range items {
		if it.Locator == "" || seen[it.Locator] {
			continue
		}
		seen[it.Locator] = true
		it.Tag = strings.ToLower(it.Tag)
		it.Text = collapseWhitespace(it.Text)
		out = append(out, it)
	}
	return out
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// preview returns at most n runes of s, marking truncation with an ellipsis.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
