package service

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpService_Page(t *testing.T) {
	content := fstest.MapFS{
		"help/help.md": {Data: []byte("---\ntitle: How it works\ndescription: The short version\n---\n\nCreate a **goal**.\n")},
	}

	page, err := NewHelpService(content, "help/help.md").Page()
	require.NoError(t, err)

	assert.Equal(t, "How it works", page.Title)
	assert.Equal(t, "The short version", page.Description)
	assert.Contains(t, page.Content, "<strong>goal</strong>")
}

func TestHelpService_TitleFallsBackToFileName(t *testing.T) {
	content := fstest.MapFS{
		"getting-started.md": {Data: []byte("Just text.")},
	}

	page, err := NewHelpService(content, "getting-started.md").Page()
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", page.Title)
}

func TestHelpService_MissingFile(t *testing.T) {
	_, err := NewHelpService(fstest.MapFS{}, "help.md").Page()
	assert.Error(t, err)
}
