package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/smartgoals/internal/db/dbtest"
	"github.com/templui/smartgoals/internal/metrics"
	"github.com/templui/smartgoals/internal/model"
	"github.com/templui/smartgoals/internal/repository"
	"github.com/templui/smartgoals/internal/validation"
)

// newTestGoalService returns a service whose clock advances one second per call,
// so creation order is always reflected in created_at.
func newTestGoalService(t *testing.T, recorder metrics.Recorder) *GoalService {
	t.Helper()

	database := dbtest.New(t)
	svc := NewGoalService(repository.NewGoalRepository(database), repository.NewCheckinRepository(database), recorder)

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func goalTitles(items []*model.GoalWithCheckins) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func TestGoalService_CreateDefaults(t *testing.T) {
	svc := newTestGoalService(t, metrics.NewNoop())
	ctx := context.Background()

	goal, err := svc.Create(ctx, model.GoalInput{Title: " Learn Spanish ", Type: "long-term", Specific: "Weekly tutor"})
	require.NoError(t, err)

	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, "Learn Spanish", goal.Title)
	assert.Equal(t, model.GoalTypeLongTerm, goal.Type)
	assert.False(t, goal.Completed)
	assert.False(t, goal.CreatedAt.IsZero())

	stored, err := svc.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekly tutor", stored.Specific)
}

func TestGoalService_CreateInvalidPersistsNothing(t *testing.T) {
	collector := metrics.NewCollector()
	svc := newTestGoalService(t, collector)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.GoalInput{Title: "Run", Type: "mid-term"})
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, errs.Has("type"))

	_, err = svc.Create(ctx, model.GoalInput{Type: "short-term"})
	errs, ok = validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, errs.Has("title"))

	items, err := svc.Goals(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)

	series, err := testutil.GatherAndCount(collector.Registry(), "smartgoals_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series, "both attempts land in create_goal/invalid")
}

func TestGoalService_GoalsFilter(t *testing.T) {
	svc := newTestGoalService(t, metrics.NewNoop())
	ctx := context.Background()

	_, err := svc.Create(ctx, model.GoalInput{Title: "Learn Spanish", Type: "long-term"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.GoalInput{Title: "Clean garage", Type: "short-term"})
	require.NoError(t, err)

	all, err := svc.Goals(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Clean garage", "Learn Spanish"}, goalTitles(all))

	long, err := svc.Goals(ctx, model.GoalTypeLongTerm)
	require.NoError(t, err)
	assert.Equal(t, []string{"Learn Spanish"}, goalTitles(long))

	short, err := svc.Goals(ctx, model.GoalTypeShortTerm)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clean garage"}, goalTitles(short))
}

func TestGoalService_UpdateOverwritesOmittedFields(t *testing.T) {
	svc := newTestGoalService(t, metrics.NewNoop())
	ctx := context.Background()

	goal, err := svc.Create(ctx, model.GoalInput{
		Title:       "Run",
		Type:        "short-term",
		Description: "Couch to 5k",
		Measurable:  "5 km",
		Achievable:  "3 runs a week",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, goal.ID, model.GoalInput{Title: "Run 10k", Type: "long-term", Measurable: "10 km"})
	require.NoError(t, err)
	assert.Equal(t, "Run 10k", updated.Title)

	stored, err := svc.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run 10k", stored.Title)
	assert.Equal(t, model.GoalTypeLongTerm, stored.Type)
	assert.Equal(t, "10 km", stored.Measurable)
	assert.Empty(t, stored.Description)
	assert.Empty(t, stored.Achievable)
	assert.True(t, goal.CreatedAt.Equal(stored.CreatedAt))
}

func TestGoalService_UpdateErrors(t *testing.T) {
	svc := newTestGoalService(t, metrics.NewNoop())
	ctx := context.Background()

	_, err := svc.Update(ctx, uuid.New().String(), model.GoalInput{Title: "Ghost", Type: "short-term"})
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	goal, err := svc.Create(ctx, model.GoalInput{Title: "Run", Type: "short-term"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, goal.ID, model.GoalInput{Title: "Run", Type: "forever"})
	_, ok := validation.AsErrors(err)
	assert.True(t, ok)

	stored, err := svc.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalTypeShortTerm, stored.Type)
}

func TestGoalService_DoubleToggleRestoresState(t *testing.T) {
	svc := newTestGoalService(t, metrics.NewNoop())
	ctx := context.Background()

	goal, err := svc.Create(ctx, model.GoalInput{Title: "Read", Type: "short-term"})
	require.NoError(t, err)

	completed, err := svc.ToggleCompleted(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, completed)

	completed, err = svc.ToggleCompleted(ctx, goal.ID)
	require.NoError(t, err)
	assert.False(t, completed)

	_, err = svc.ToggleCompleted(ctx, uuid.New().String())
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalService_CheckinsAndCascade(t *testing.T) {
	svc := newTestGoalService(t, metrics.NewNoop())
	ctx := context.Background()

	goal, err := svc.Create(ctx, model.GoalInput{Title: "Learn Spanish", Type: "long-term"})
	require.NoError(t, err)

	_, err = svc.AddCheckin(ctx, goal.ID, "Finished lesson 1")
	require.NoError(t, err)
	_, err = svc.AddCheckin(ctx, goal.ID, "Finished lesson 2")
	require.NoError(t, err)

	checkins, err := svc.Checkins(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, checkins, 2)
	assert.Equal(t, "Finished lesson 2", checkins[0].Note)
	assert.Equal(t, "Finished lesson 1", checkins[1].Note)

	items, err := svc.Goals(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Len(t, items[0].Checkins, 2)

	require.NoError(t, svc.Delete(ctx, goal.ID))

	_, err = svc.Checkins(ctx, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
	items, err = svc.Goals(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.Delete(ctx, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalService_AddCheckinErrors(t *testing.T) {
	collector := metrics.NewCollector()
	svc := newTestGoalService(t, collector)
	ctx := context.Background()

	_, err := svc.AddCheckin(ctx, uuid.New().String(), "Orphan note")
	assert.True(t, errors.Is(err, repository.ErrGoalNotFound))

	goal, err := svc.Create(ctx, model.GoalInput{Title: "Read", Type: "short-term"})
	require.NoError(t, err)

	_, err = svc.AddCheckin(ctx, goal.ID, "   ")
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Note is required", errs.Get("note"))

	checkins, err := svc.Checkins(ctx, goal.ID)
	require.NoError(t, err)
	assert.Empty(t, checkins)
}
