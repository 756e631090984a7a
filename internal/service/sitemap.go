package service

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/templui/smartgoals/internal/model"
)

// publicRoutes are the read-only pages worth indexing
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "monthly"},
	{"/goals", "0.8", "daily"},
	{"/help", "0.5", "monthly"},
}

// crawlerDisallowed lists the prefixes of links that change data on GET.
// Crawlers following them would delete or toggle goals.
var crawlerDisallowed = []string{
	"/delete/",
	"/toggle_complete/",
	"/edit/",
	"/goals/export",
}

type SitemapService struct {
	baseURL string
	now     func() time.Time
}

func NewSitemapService(baseURL string) *SitemapService {
	return &SitemapService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateSitemap renders sitemap.xml for the public pages
func (s *SitemapService) GenerateSitemap() ([]byte, error) {
	today := s.now().Format("2006-01-02")

	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]model.SitemapURL, 0, len(publicRoutes)),
	}
	for _, route := range publicRoutes {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return []byte(xml.Header + string(output)), nil
}

// Robots renders robots.txt
func (s *SitemapService) Robots() []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	for _, prefix := range crawlerDisallowed {
		b.WriteString("Disallow: " + prefix + "\n")
	}
	b.WriteString("Sitemap: " + s.baseURL + "/sitemap.xml\n")
	return []byte(b.String())
}
