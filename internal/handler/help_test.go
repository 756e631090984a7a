package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/templui/smartgoals/internal/service"
)

func TestHelpHandler(t *testing.T) {
	content := fstest.MapFS{
		"help.md": {Data: []byte("---\ntitle: Help\n---\n\n## Check-ins\n\nAdd a note <script>alert(1)</script>\n")},
	}
	h := NewHelpHandler(service.NewHelpService(content, "help.md"))

	rec := httptest.NewRecorder()
	h.HelpPage(rec, httptest.NewRequest(http.MethodGet, "/help", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Help</h1>")
	assert.Contains(t, rec.Body.String(), `<h2 id="check-ins">Check-ins</h2>`)
	assert.NotContains(t, rec.Body.String(), "<script>alert")
}

func TestHelpHandler_MissingContent(t *testing.T) {
	h := NewHelpHandler(service.NewHelpService(fstest.MapFS{}, "help.md"))

	rec := httptest.NewRecorder()
	h.HelpPage(rec, httptest.NewRequest(http.MethodGet, "/help", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHomeHandler(t *testing.T) {
	h := NewHomeHandler()

	rec := httptest.NewRecorder()
	h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/add"`)
	assert.Contains(t, rec.Body.String(), `<option value="short-term" selected>`)

	rec = httptest.NewRecorder()
	h.NotFoundPage(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}
