package markup

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

var errNoBody = errors.New("no <body> in document")

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	// MaxOutputSize caps the rendered body in bytes. Zero means no cap.
	MaxOutputSize int
}

var DefaultCleanConfig = CleanConfig{
	TagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe",
		"link", "meta", "head", "title", "template",
	},
	AttrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "tabindex",
	},
	MaxOutputSize: 130_000,
}

// Clean returns the <body> of rawHTML without comments, non-content tags and
// presentation attributes.
func Clean(rawHTML string, cfg *CleanConfig) (string, error) {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}
	body := findBody(doc)
	if body == nil {
		return "", errNoBody
	}

	cleanNode(body, cfg)

	var sb strings.Builder
	if err := html.Render(&sb, body); err != nil {
		return "", err
	}
	return truncate(sb.String(), cfg.MaxOutputSize), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func cleanNode(n *html.Node, cfg *CleanConfig) {
	if n.Type == html.CommentNode {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}
	if n.Type != html.ElementNode {
		return
	}
	if isOneOf(n.Data, cfg.TagsToRemove...) {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}

	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if !dropAttr(attr.Key, cfg) {
			kept = append(kept, attr)
		}
	}
	n.Attr = kept

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		cleanNode(c, cfg)
		c = next
	}
}

func dropAttr(key string, cfg *CleanConfig) bool {
	if isOneOf(key, cfg.AttrsToRemove...) {
		return true
	}
	return strings.HasPrefix(key, "data-") || strings.HasPrefix(key, "on")
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "\n<!-- truncated -->"
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
