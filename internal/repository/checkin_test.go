package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/smartgoals/internal/db/dbtest"
	"github.com/templui/smartgoals/internal/model"
)

func newCheckin(goalID, note string, createdAt time.Time) *model.Checkin {
	return &model.Checkin{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Note:      note,
		CreatedAt: createdAt,
	}
}

func notes(checkins []*model.Checkin) []string {
	out := make([]string, 0, len(checkins))
	for _, c := range checkins {
		out = append(out, c.Note)
	}
	return out
}

func TestCheckinRepository_CheckinsNewestFirst(t *testing.T) {
	database := dbtest.New(t)
	goals := NewGoalRepository(database)
	repo := NewCheckinRepository(database)
	ctx := context.Background()

	goal := newGoal("Learn Spanish", model.GoalTypeLongTerm, baseTime)
	require.NoError(t, goals.Create(ctx, goal))

	require.NoError(t, repo.Create(ctx, newCheckin(goal.ID, "Lesson 1", baseTime.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newCheckin(goal.ID, "Lesson 3", baseTime.Add(3*time.Hour))))
	require.NoError(t, repo.Create(ctx, newCheckin(goal.ID, "Lesson 2", baseTime.Add(2*time.Hour))))

	got, err := repo.Checkins(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lesson 3", "Lesson 2", "Lesson 1"}, notes(got))
	assert.Equal(t, goal.ID, got[0].GoalID)
}

func TestCheckinRepository_CreateRequiresExistingGoal(t *testing.T) {
	repo := NewCheckinRepository(dbtest.New(t))

	err := repo.Create(context.Background(), newCheckin(uuid.New().String(), "Orphan", baseTime))
	assert.Error(t, err)
}

func TestCheckinRepository_CheckinsByGoals(t *testing.T) {
	database := dbtest.New(t)
	goals := NewGoalRepository(database)
	repo := NewCheckinRepository(database)
	ctx := context.Background()

	spanish := newGoal("Learn Spanish", model.GoalTypeLongTerm, baseTime)
	running := newGoal("Run a 5k", model.GoalTypeShortTerm, baseTime)
	idle := newGoal("Someday", model.GoalTypeShortTerm, baseTime)
	for _, g := range []*model.Goal{spanish, running, idle} {
		require.NoError(t, goals.Create(ctx, g))
	}

	require.NoError(t, repo.Create(ctx, newCheckin(spanish.ID, "Lesson 1", baseTime.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newCheckin(spanish.ID, "Lesson 2", baseTime.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newCheckin(running.ID, "First run", baseTime.Add(time.Hour))))

	grouped, err := repo.CheckinsByGoals(ctx, []string{spanish.ID, running.ID, idle.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lesson 2", "Lesson 1"}, notes(grouped[spanish.ID]))
	assert.Equal(t, []string{"First run"}, notes(grouped[running.ID]))
	assert.Empty(t, grouped[idle.ID])

	empty, err := repo.CheckinsByGoals(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
