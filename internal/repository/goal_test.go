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

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newGoal(title string, goalType model.GoalType, createdAt time.Time) *model.Goal {
	return &model.Goal{
		ID:        uuid.New().String(),
		Title:     title,
		Type:      goalType,
		CreatedAt: createdAt,
	}
}

func titles(goals []*model.Goal) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.Title)
	}
	return out
}

func TestGoalRepository_CreateAndByID(t *testing.T) {
	repo := NewGoalRepository(dbtest.New(t))
	ctx := context.Background()

	goal := newGoal("Learn Spanish", model.GoalTypeLongTerm, baseTime)
	goal.Description = "Conversational by summer"
	goal.Specific = "Speak with a tutor weekly"
	goal.TimeBound = "By June"
	require.NoError(t, repo.Create(ctx, goal))

	got, err := repo.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.Title, got.Title)
	assert.Equal(t, goal.Description, got.Description)
	assert.Equal(t, model.GoalTypeLongTerm, got.Type)
	assert.Equal(t, goal.Specific, got.Specific)
	assert.Equal(t, goal.TimeBound, got.TimeBound)
	assert.False(t, got.Completed)
	assert.True(t, baseTime.Equal(got.CreatedAt), "created_at: got %v", got.CreatedAt)
}

func TestGoalRepository_ByIDNotFound(t *testing.T) {
	repo := NewGoalRepository(dbtest.New(t))

	_, err := repo.ByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalRepository_CreateRejectsInvalidType(t *testing.T) {
	repo := NewGoalRepository(dbtest.New(t))
	ctx := context.Background()

	err := repo.Create(ctx, newGoal("Run", model.GoalType("someday"), baseTime))
	require.Error(t, err)

	err = repo.Create(ctx, newGoal("", model.GoalTypeShortTerm, baseTime))
	require.Error(t, err)

	goals, err := repo.Goals(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalRepository_GoalsFilterAndOrder(t *testing.T) {
	repo := NewGoalRepository(dbtest.New(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newGoal("Oldest short", model.GoalTypeShortTerm, baseTime)))
	require.NoError(t, repo.Create(ctx, newGoal("Middle long", model.GoalTypeLongTerm, baseTime.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newGoal("Newest short", model.GoalTypeShortTerm, baseTime.Add(2*time.Hour))))

	all, err := repo.Goals(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Newest short", "Middle long", "Oldest short"}, titles(all))

	short, err := repo.Goals(ctx, model.GoalTypeShortTerm)
	require.NoError(t, err)
	assert.Equal(t, []string{"Newest short", "Oldest short"}, titles(short))

	long, err := repo.Goals(ctx, model.GoalTypeLongTerm)
	require.NoError(t, err)
	assert.Equal(t, []string{"Middle long"}, titles(long))
}

func TestGoalRepository_UpdateOverwritesEditableFields(t *testing.T) {
	repo := NewGoalRepository(dbtest.New(t))
	ctx := context.Background()

	goal := newGoal("Run", model.GoalTypeShortTerm, baseTime)
	goal.Description = "5k"
	goal.Relevant = "Health"
	require.NoError(t, repo.Create(ctx, goal))
	_, err := repo.ToggleCompleted(ctx, goal.ID)
	require.NoError(t, err)

	err = repo.Update(ctx, &model.Goal{ID: goal.ID, Title: "Run a 10k", Type: model.GoalTypeLongTerm})
	require.NoError(t, err)

	got, err := repo.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run a 10k", got.Title)
	assert.Equal(t, model.GoalTypeLongTerm, got.Type)
	assert.Empty(t, got.Description)
	assert.Empty(t, got.Relevant)
	assert.True(t, got.Completed, "update must not touch completed")
	assert.True(t, baseTime.Equal(got.CreatedAt), "update must not touch created_at")
}

func TestGoalRepository_UpdateMissing(t *testing.T) {
	repo := NewGoalRepository(dbtest.New(t))

	err := repo.Update(context.Background(), newGoal("Ghost", model.GoalTypeShortTerm, baseTime))
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalRepository_ToggleCompleted(t *testing.T) {
	repo := NewGoalRepository(dbtest.New(t))
	ctx := context.Background()

	goal := newGoal("Read a book", model.GoalTypeShortTerm, baseTime)
	require.NoError(t, repo.Create(ctx, goal))

	completed, err := repo.ToggleCompleted(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, completed)

	completed, err = repo.ToggleCompleted(ctx, goal.ID)
	require.NoError(t, err)
	assert.False(t, completed)

	got, err := repo.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)

	_, err = repo.ToggleCompleted(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalRepository_DeleteCascadesCheckins(t *testing.T) {
	database := dbtest.New(t)
	goals := NewGoalRepository(database)
	checkins := NewCheckinRepository(database)
	ctx := context.Background()

	goal := newGoal("Learn Spanish", model.GoalTypeLongTerm, baseTime)
	require.NoError(t, goals.Create(ctx, goal))
	require.NoError(t, checkins.Create(ctx, &model.Checkin{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		Note:      "Finished lesson 1",
		CreatedAt: baseTime.Add(time.Minute),
	}))

	require.NoError(t, goals.Delete(ctx, goal.ID))

	_, err := goals.ByID(ctx, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	var remaining int
	require.NoError(t, database.Get(&remaining, `SELECT COUNT(*) FROM checkins WHERE goal_id = $1`, goal.ID))
	assert.Zero(t, remaining)

	err = goals.Delete(ctx, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}
