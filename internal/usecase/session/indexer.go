package session

import (
	"fmt"
	"strconv"
	"strings"

	"browser-mcp/internal/domain/entity"
)

const textPreviewLen = 120

// Index maps snapshot indices to locators for the active page. The mapping and
// the URL it was taken on are always replaced or cleared together; every
// change starts a new epoch.
type Index struct {
	locators map[int]string
	url      string
	epoch    uint64
}

func NewIndex() *Index {
	return &Index{locators: make(map[int]string)}
}

// Replace installs a fresh mapping 1..len(items) in item order.
func (x *Index) Replace(items []entity.ElementDescriptor, url string) {
	x.locators = make(map[int]string, len(items))
	for i, it := range items {
		x.locators[i+1] = it.Locator
	}
	x.url = url
	x.epoch++
}

func (x *Index) Resolve(index int) (string, error) {
	loc, ok := x.locators[index]
	if !ok {
		return "", fmt.Errorf("%w: %d", entity.ErrIndexNotFound, index)
	}
	return loc, nil
}

// Evict forgets one index whose element disappeared from the page.
func (x *Index) Evict(index int) {
	delete(x.locators, index)
}

func (x *Index) Clear() {
	if len(x.locators) == 0 && x.url == "" {
		return
	}
	x.locators = make(map[int]string)
	x.url = ""
	x.epoch++
}

func (x *Index) Len() int      { return len(x.locators) }
func (x *Index) URL() string   { return x.url }
func (x *Index) Epoch() uint64 { return x.epoch }

func formatListing(items []entity.ElementDescriptor) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, "Interactive elements:")
	for i, it := range items {
		lines = append(lines, formatElementLine(i+1, it))
	}
	return strings.Join(lines, "\n")
}

func formatElementLine(index int, d entity.ElementDescriptor) string {
	head := fmt.Sprintf("%d: <%s", index, d.Tag)
	if d.InputType != "" {
		head += " type=" + d.InputType
	}
	bits := []string{head + ">"}

	if d.Role != "" {
		bits = append(bits, "[role="+d.Role+"]")
	}
	for _, attr := range []struct{ name, value string }{
		{"placeholder", d.Placeholder},
		{"aria-label", d.AriaLabel},
		{"title", d.Title},
	} {
		if v := collapseWhitespace(attr.value); v != "" {
			bits = append(bits, attr.name+"="+strconv.Quote(v))
		}
	}
	if text := collapseWhitespace(d.Text); text != "" {
		bits = append(bits, "text="+strconv.Quote(preview(text, textPreviewLen)))
	}
	return strings.Join(bits, " ")
}
