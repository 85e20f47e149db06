package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML inside post markdown is not trusted and gets dropped.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// RenderHTML converts the post body from markdown to an HTML fragment.
func (p BlogPost) RenderHTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(p.Content), &buf); err != nil {
		return nil, fmt.Errorf("render post %d: %w", p.ID, err)
	}
	return buf.Bytes(), nil
}
