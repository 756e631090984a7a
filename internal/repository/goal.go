package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/smartgoals/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, goalID string) (*model.Goal, error)
	Goals(ctx context.Context, goalType model.GoalType) ([]*model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, goalID string) error
	ToggleCompleted(ctx context.Context, goalID string) (bool, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, title, description, type, specific, measurable, achievable, relevant, time_bound, completed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.Title,
		goal.Description,
		string(goal.Type),
		goal.Specific,
		goal.Measurable,
		goal.Achievable,
		goal.Relevant,
		goal.TimeBound,
		goal.Completed,
		goal.CreatedAt,
	)

	return err
}

func (r *goalRepository) ByID(ctx context.Context, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.GetContext(ctx, goal, query, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Goals lists goals newest first. An empty goalType lists every goal.
func (r *goalRepository) Goals(ctx context.Context, goalType model.GoalType) ([]*model.Goal, error) {
	goals := []*model.Goal{}

	var err error
	if goalType == "" {
		err = r.db.SelectContext(ctx, &goals, `SELECT * FROM goals ORDER BY created_at DESC`)
	} else {
		err = r.db.SelectContext(ctx, &goals, `SELECT * FROM goals WHERE type = $1 ORDER BY created_at DESC`, string(goalType))
	}
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// Update overwrites every editable field. completed and created_at are untouched.
func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, type = $3, specific = $4, measurable = $5,
	              achievable = $6, relevant = $7, time_bound = $8
	          WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		goal.Title,
		goal.Description,
		string(goal.Type),
		goal.Specific,
		goal.Measurable,
		goal.Achievable,
		goal.Relevant,
		goal.TimeBound,
		goal.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// Delete removes the goal; its check-ins go with it through ON DELETE CASCADE.
func (r *goalRepository) Delete(ctx context.Context, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// ToggleCompleted flips completed in a single statement and returns the new value.
func (r *goalRepository) ToggleCompleted(ctx context.Context, goalID string) (bool, error) {
	var completed bool
	query := `UPDATE goals SET completed = NOT completed WHERE id = $1 RETURNING completed`

	err := r.db.GetContext(ctx, &completed, query, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrGoalNotFound
	}
	if err != nil {
		return false, err
	}

	return completed, nil
}
