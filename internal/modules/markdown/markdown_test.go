package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasics(t *testing.T) {
	html, err := Render("# Title\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderGFMTable(t *testing.T) {
	html, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
}

func TestRenderStrikethrough(t *testing.T) {
	html, err := Render("~~gone~~")
	require.NoError(t, err)
	assert.Contains(t, html, "<del>gone</del>")
}

func TestRenderEmpty(t *testing.T) {
	html, err := Render("")
	require.NoError(t, err)
	assert.Equal(t, "", html)
}
