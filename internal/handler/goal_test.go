package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/smartgoals/internal/db/dbtest"
	"github.com/templui/smartgoals/internal/metrics"
	"github.com/templui/smartgoals/internal/model"
	"github.com/templui/smartgoals/internal/repository"
	"github.com/templui/smartgoals/internal/service"
)

// newGoalMux serves the goal handlers without the middleware chain.
func newGoalMux(t *testing.T) (*http.ServeMux, *service.GoalService) {
	t.Helper()

	database := dbtest.New(t)
	svc := service.NewGoalService(repository.NewGoalRepository(database), repository.NewCheckinRepository(database), metrics.NewNoop())
	h := NewGoalHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /goals", h.GoalsPage)
	mux.HandleFunc("GET /goals/export", h.Export)
	mux.HandleFunc("POST /add", h.Create)
	mux.HandleFunc("GET /edit/{id}", h.EditPage)
	mux.HandleFunc("POST /edit/{id}", h.Update)
	mux.HandleFunc("GET /delete/{id}", h.Delete)
	mux.HandleFunc("GET /toggle_complete/{id}", h.ToggleComplete)
	mux.HandleFunc("POST /checkin/{id}", h.CreateCheckin)
	return mux, svc
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postForm(mux http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGoalHandler_CreateRedirects(t *testing.T) {
	mux, svc := newGoalMux(t)

	rec := postForm(mux, "/add", url.Values{
		"title":      {"Run a 10k"},
		"type":       {"short-term"},
		"measurable": {"Under 60 minutes"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/goals", rec.Header().Get("Location"))

	items, err := svc.Goals(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Run a 10k", items[0].Title)
	assert.Equal(t, "Under 60 minutes", items[0].Measurable)
}

func TestGoalHandler_CreateInvalidRendersForm(t *testing.T) {
	mux, svc := newGoalMux(t)

	rec := postForm(mux, "/add", url.Values{"title": {"Read more"}, "type": {"someday"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Type must be short-term or long-term")
	// Submitted values survive the round trip
	assert.Contains(t, rec.Body.String(), `value="Read more"`)

	items, err := svc.Goals(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGoalHandler_GoalsPageFilter(t *testing.T) {
	mux, svc := newGoalMux(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.GoalInput{Title: "Stretch daily", Type: "short-term"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.GoalInput{Title: "Write a novel", Type: "long-term"})
	require.NoError(t, err)

	body := get(mux, "/goals?filter=short-term").Body.String()
	assert.Contains(t, body, "Stretch daily")
	assert.NotContains(t, body, "Write a novel")

	// Unknown filters list everything
	rec := get(mux, "/goals?filter=someday")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stretch daily")
	assert.Contains(t, rec.Body.String(), "Write a novel")
}

func TestGoalHandler_MissingGoalIsNotFound(t *testing.T) {
	mux, _ := newGoalMux(t)

	assert.Equal(t, http.StatusNotFound, get(mux, "/edit/missing").Code)
	assert.Equal(t, http.StatusNotFound, get(mux, "/delete/missing").Code)
	assert.Equal(t, http.StatusNotFound, get(mux, "/toggle_complete/missing").Code)
	assert.Equal(t, http.StatusNotFound, postForm(mux, "/edit/missing", url.Values{"title": {"x"}, "type": {"long-term"}}).Code)
	assert.Equal(t, http.StatusNotFound, postForm(mux, "/checkin/missing", url.Values{"note": {"x"}}).Code)
}

func TestGoalHandler_EditPrefillsAndUpdates(t *testing.T) {
	mux, svc := newGoalMux(t)
	ctx := context.Background()

	goal, err := svc.Create(ctx, model.GoalInput{Title: "Learn Go", Type: "long-term", Relevant: "Work"})
	require.NoError(t, err)

	rec := get(mux, "/edit/"+goal.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Learn Go"`)
	assert.Contains(t, rec.Body.String(), ">Work</textarea>")

	rec = postForm(mux, "/edit/"+goal.ID, url.Values{"title": {""}, "type": {"long-term"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title is required")

	rec = postForm(mux, "/edit/"+goal.ID, url.Values{"title": {"Learn Go well"}, "type": {"short-term"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	updated, err := svc.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Learn Go well", updated.Title)
	assert.Equal(t, model.GoalTypeShortTerm, updated.Type)
	assert.Empty(t, updated.Relevant)
}

func TestGoalHandler_ToggleAndCheckin(t *testing.T) {
	mux, svc := newGoalMux(t)
	ctx := context.Background()

	goal, err := svc.Create(ctx, model.GoalInput{Title: "Meditate", Type: "short-term"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, get(mux, "/toggle_complete/"+goal.ID).Code)
	stored, err := svc.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)

	rec := postForm(mux, "/checkin/"+goal.ID, url.Values{"note": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Note is required")

	rec = postForm(mux, "/checkin/"+goal.ID, url.Values{"note": {"Ten minutes today"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, get(mux, "/goals").Body.String(), "Ten minutes today")
}

func TestGoalHandler_Export(t *testing.T) {
	mux, svc := newGoalMux(t)
	ctx := context.Background()

	goal, err := svc.Create(ctx, model.GoalInput{Title: "Save money", Type: "long-term"})
	require.NoError(t, err)
	_, err = svc.AddCheckin(ctx, goal.ID, "Opened an account")
	require.NoError(t, err)

	rec := get(mux, "/goals/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "goals-export.json")

	var exported []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Checkins []struct {
			Note string `json:"note"`
		} `json:"checkins"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, goal.ID, exported[0].ID)
	require.Len(t, exported[0].Checkins, 1)
	assert.Equal(t, "Opened an account", exported[0].Checkins[0].Note)
}
