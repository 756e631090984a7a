package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/smartgoals/internal/app"
	"github.com/templui/smartgoals/internal/config"
	"github.com/templui/smartgoals/internal/db/dbtest"
)

type exportedGoal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Completed bool   `json:"completed"`
	Checkins  []struct {
		Note string `json:"note"`
	} `json:"checkins"`
}

// browser is an HTTP client that keeps cookies and does not follow redirects,
// so tests can assert on the 303 itself.
type browser struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newBrowser(t *testing.T, cfg *config.Config) *browser {
	t.Helper()

	a := app.NewWithDB(cfg, dbtest.New(t))
	server := httptest.NewServer(SetupRoutes(a))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:      t,
		server: server,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:        "Goals",
		AppEnv:         "development",
		AppURL:         "http://localhost",
		MetricsEnabled: true,
	}
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()

	resp, err := b.client.Get(b.server.URL + path)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp.StatusCode, string(body)
}

// post submits a form with the CSRF token the server handed out earlier.
func (b *browser) post(path string, form url.Values) (int, string) {
	b.t.Helper()

	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", b.csrfToken())

	resp, err := b.client.PostForm(b.server.URL+path, form)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp.StatusCode, string(body)
}

func (b *browser) csrfToken() string {
	b.t.Helper()

	u, err := url.Parse(b.server.URL)
	require.NoError(b.t, err)
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == "csrf_token" {
			return c.Value
		}
	}

	// First visit issues the cookie
	b.get("/")
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == "csrf_token" {
			return c.Value
		}
	}
	b.t.Fatal("no csrf cookie issued")
	return ""
}

func (b *browser) export() []exportedGoal {
	b.t.Helper()

	status, body := b.get("/goals/export")
	require.Equal(b.t, http.StatusOK, status)

	var goals []exportedGoal
	require.NoError(b.t, json.Unmarshal([]byte(body), &goals))
	return goals
}

func TestLearnSpanishScenario(t *testing.T) {
	b := newBrowser(t, testConfig())

	status, _ := b.post("/add", url.Values{"title": {"Learn Spanish"}, "type": {"long-term"}})
	require.Equal(t, http.StatusSeeOther, status)

	goals := b.export()
	require.Len(t, goals, 1)
	goalID := goals[0].ID
	assert.False(t, goals[0].Completed)

	_, body := b.get("/goals")
	assert.Contains(t, body, "Learn Spanish")
	_, body = b.get("/goals?filter=long-term")
	assert.Contains(t, body, "Learn Spanish")
	_, body = b.get("/goals?filter=short-term")
	assert.NotContains(t, body, "Learn Spanish")

	status, _ = b.post("/checkin/"+goalID, url.Values{"note": {"Finished lesson 1"}})
	require.Equal(t, http.StatusSeeOther, status)
	status, _ = b.post("/checkin/"+goalID, url.Values{"note": {"Finished lesson 2"}})
	require.Equal(t, http.StatusSeeOther, status)

	_, body = b.get("/goals")
	first := strings.Index(body, "Finished lesson 1")
	second := strings.Index(body, "Finished lesson 2")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, second, first, "newest check-in is listed first")

	status, _ = b.get("/toggle_complete/" + goalID)
	require.Equal(t, http.StatusSeeOther, status)
	assert.True(t, b.export()[0].Completed)

	status, _ = b.get("/delete/" + goalID)
	require.Equal(t, http.StatusSeeOther, status)
	assert.Empty(t, b.export())

	_, body = b.get("/goals")
	assert.NotContains(t, body, "Learn Spanish")
	assert.NotContains(t, body, "Finished lesson 1")
}

func TestInvalidTypeIsRejected(t *testing.T) {
	b := newBrowser(t, testConfig())

	status, body := b.post("/add", url.Values{"title": {"Get fit"}, "type": {"medium-term"}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "Type must be short-term or long-term")

	status, _ = b.post("/add", url.Values{"title": {"Get fit"}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	assert.Empty(t, b.export())
}

func TestDoubleToggleIsIdentity(t *testing.T) {
	b := newBrowser(t, testConfig())

	b.post("/add", url.Values{"title": {"Read 12 books"}, "type": {"long-term"}})
	goalID := b.export()[0].ID

	b.get("/toggle_complete/" + goalID)
	b.get("/toggle_complete/" + goalID)

	assert.False(t, b.export()[0].Completed)
}

func TestEditOverwritesOptionalFields(t *testing.T) {
	b := newBrowser(t, testConfig())

	b.post("/add", url.Values{"title": {"Ship v1"}, "type": {"short-term"}, "description": {"MVP"}, "specific": {"Landing page"}})
	goalID := b.export()[0].ID

	status, body := b.get("/edit/" + goalID)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `value="Ship v1"`)

	status, _ = b.post("/edit/"+goalID, url.Values{"title": {"Ship v1.1"}, "type": {"long-term"}})
	require.Equal(t, http.StatusSeeOther, status)

	_, body = b.get("/goals/export")
	assert.Contains(t, body, `"title":"Ship v1.1"`)
	assert.Contains(t, body, `"type":"long-term"`)
	assert.Contains(t, body, `"description":""`)
	assert.Contains(t, body, `"specific":""`)
}

func TestCSRFRequiredOnWrites(t *testing.T) {
	b := newBrowser(t, testConfig())

	resp, err := b.client.PostForm(b.server.URL+"/add", url.Values{"title": {"Sneaky"}, "type": {"short-term"}})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, b.export())
}

func TestWriteRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.WriteRateLimit = 0.001
	cfg.WriteRateBurst = 2
	b := newBrowser(t, cfg)

	form := func() url.Values { return url.Values{"title": {"Spam"}, "type": {"short-term"}} }
	status, _ := b.post("/add", form())
	assert.Equal(t, http.StatusSeeOther, status)
	status, _ = b.post("/add", form())
	assert.Equal(t, http.StatusSeeOther, status)
	status, _ = b.post("/add", form())
	assert.Equal(t, http.StatusTooManyRequests, status)

	// Reads are never limited
	status, _ = b.get("/goals")
	assert.Equal(t, http.StatusOK, status)
}

func TestPagesAndFallback(t *testing.T) {
	b := newBrowser(t, testConfig())

	status, body := b.get("/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `name="csrf_token"`)

	status, body = b.get("/help")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "What is a SMART goal?")

	status, body = b.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Page not found")

	status, _ = b.get("/edit/does-not-exist")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = b.get("/assets/css/input.css")
	assert.Equal(t, http.StatusOK, status)

	status, body = b.get("/robots.txt")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Disallow: /delete/")

	status, body = b.get("/sitemap.xml")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<loc>http://localhost/help</loc>")
}

func TestMetricsEndpoint(t *testing.T) {
	b := newBrowser(t, testConfig())

	b.post("/add", url.Values{"title": {"Measure me"}, "type": {"short-term"}})

	status, body := b.get("/metrics")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `smartgoals_operations_total{operation="create_goal",status="success"} 1`)
	assert.Contains(t, body, "smartgoals_http_requests_total")

	cfg := testConfig()
	cfg.MetricsEnabled = false
	status, _ = newBrowser(t, cfg).get("/metrics")
	assert.Equal(t, http.StatusNotFound, status)
}
