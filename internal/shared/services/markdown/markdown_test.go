package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_BasicMarkdown(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("**bold** and _italic_")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<em>italic</em>")
}

func TestRenderer_StripsScripts(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("hello <script>alert(1)</script> world")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "hello")
}
