// Package markup turns page HTML into compact markdown for content checks.
package markup

import (
	"fmt"
	"strings"

	"browser-mcp/internal/application/port/output"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var _ output.MarkupConverter = (*Converter)(nil)

type Converter struct {
	md    *converter.Converter
	clean *CleanConfig
}

func NewConverter() *Converter {
	return &Converter{
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		clean: &DefaultCleanConfig,
	}
}

// Convert cleans rawHTML and renders it as markdown. Documents without a body
// are converted as they are.
func (c *Converter) Convert(rawHTML string) (string, error) {
	body, err := Clean(rawHTML, c.clean)
	if err != nil {
		body = rawHTML
	}
	md, err := c.md.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
