package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/templui/smartgoals/internal/model"
)

type CheckinRepository interface {
	Create(ctx context.Context, checkin *model.Checkin) error
	Checkins(ctx context.Context, goalID string) ([]*model.Checkin, error)
	CheckinsByGoals(ctx context.Context, goalIDs []string) (map[string][]*model.Checkin, error)
}

type checkinRepository struct {
	db *sqlx.DB
}

func NewCheckinRepository(db *sqlx.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) Create(ctx context.Context, checkin *model.Checkin) error {
	query := `INSERT INTO checkins (id, goal_id, note, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		checkin.ID,
		checkin.GoalID,
		checkin.Note,
		checkin.CreatedAt,
	)

	return err
}

func (r *checkinRepository) Checkins(ctx context.Context, goalID string) ([]*model.Checkin, error) {
	checkins := []*model.Checkin{}
	query := `SELECT * FROM checkins WHERE goal_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &checkins, query, goalID)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}

// CheckinsByGoals loads the check-ins of several goals in one query,
// grouped by goal id and ordered newest first within each group.
func (r *checkinRepository) CheckinsByGoals(ctx context.Context, goalIDs []string) (map[string][]*model.Checkin, error) {
	grouped := make(map[string][]*model.Checkin, len(goalIDs))
	if len(goalIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM checkins WHERE goal_id IN (?) ORDER BY created_at DESC`, goalIDs)
	if err != nil {
		return nil, err
	}

	var checkins []*model.Checkin
	err = r.db.SelectContext(ctx, &checkins, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	for _, checkin := range checkins {
		grouped[checkin.GoalID] = append(grouped[checkin.GoalID], checkin)
	}

	return grouped, nil
}
