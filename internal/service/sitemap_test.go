package service

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/smartgoals/internal/model"
)

func TestSitemapService_GenerateSitemap(t *testing.T) {
	svc := NewSitemapService("https://goals.example.com/")
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC) }

	out, err := svc.GenerateSitemap()
	require.NoError(t, err)

	var sitemap model.Sitemap
	require.NoError(t, xml.Unmarshal(out, &sitemap))
	require.Len(t, sitemap.URLs, 3)
	assert.Equal(t, "https://goals.example.com/", sitemap.URLs[0].Loc)
	assert.Equal(t, "https://goals.example.com/goals", sitemap.URLs[1].Loc)
	assert.Equal(t, "2026-05-04", sitemap.URLs[1].LastMod)
}

func TestSitemapService_RobotsBlocksWriteLinks(t *testing.T) {
	robots := string(NewSitemapService("https://goals.example.com").Robots())

	assert.Contains(t, robots, "Disallow: /delete/\n")
	assert.Contains(t, robots, "Disallow: /toggle_complete/\n")
	assert.Contains(t, robots, "Sitemap: https://goals.example.com/sitemap.xml\n")
}
