package service

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/templui/smartgoals/internal/markdown"
	"github.com/templui/smartgoals/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HelpService renders the static help page from embedded markdown.
type HelpService struct {
	content fs.FS
	file    string

	once sync.Once
	page *model.HelpPage
	err  error
}

func NewHelpService(content fs.FS, file string) *HelpService {
	return &HelpService{
		content: content,
		file:    file,
	}
}

// Page returns the rendered help page. The markdown is parsed once; the
// content is embedded in the binary so it cannot change at runtime.
func (s *HelpService) Page() (*model.HelpPage, error) {
	s.once.Do(func() {
		s.page, s.err = s.load()
	})
	return s.page, s.err
}

func (s *HelpService) load() (*model.HelpPage, error) {
	source, err := fs.ReadFile(s.content, s.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read help content: %w", err)
	}

	html, meta, err := markdown.NewParser().ParseWithFrontmatter(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse help content: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		// Generate title from file name
		slug := strings.TrimSuffix(path.Base(s.file), path.Ext(s.file))
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}
	description, _ := meta["description"].(string)

	return &model.HelpPage{
		Title:       title,
		Description: description,
		Content:     string(html),
	}, nil
}
