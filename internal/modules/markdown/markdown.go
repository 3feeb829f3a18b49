// Package markdown renders blog bodies to HTML for the public read path.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Render converts markdown text to HTML. Empty input renders to "".
func Render(markdownText string) (string, error) {
	if markdownText == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := engine.Convert([]byte(markdownText), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
