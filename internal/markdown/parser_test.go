package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithFrontmatter(t *testing.T) {
	source := []byte("---\ntitle: Using goals\n---\n\n## Filters\n\nPick **short-term** or long-term.\n")

	html, meta, err := NewParser().ParseWithFrontmatter(source)
	require.NoError(t, err)

	assert.Equal(t, "Using goals", meta["title"])
	assert.Contains(t, string(html), `<h2 id="filters">Filters</h2>`)
	assert.Contains(t, string(html), "<strong>short-term</strong>")
	assert.NotContains(t, string(html), "title: Using goals")
}

func TestParse_StripsUnsafeHTML(t *testing.T) {
	html, err := NewParser().Parse([]byte("Hello <script>alert(1)</script><a href=\"javascript:alert(1)\">x</a>"))
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script")
	assert.NotContains(t, string(html), "javascript:")
	assert.Contains(t, string(html), "Hello")
}

func TestParseWithFrontmatter_NoFrontmatter(t *testing.T) {
	_, meta, err := NewParser().ParseWithFrontmatter([]byte("# Plain"))
	require.NoError(t, err)
	assert.Empty(t, meta)
}
