package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/templui/smartgoals/internal/metrics"
	"github.com/templui/smartgoals/internal/model"
	"github.com/templui/smartgoals/internal/repository"
	"github.com/templui/smartgoals/internal/validation"
)

type GoalService struct {
	repo        repository.GoalRepository
	checkinRepo repository.CheckinRepository
	metrics     metrics.Recorder
	now         func() time.Time
}

func NewGoalService(
	repo repository.GoalRepository,
	checkinRepo repository.CheckinRepository,
	recorder metrics.Recorder,
) *GoalService {
	return &GoalService{
		repo:        repo,
		checkinRepo: checkinRepo,
		metrics:     recorder,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Goals lists goals newest first together with their check-ins.
// An empty goalType lists every goal.
func (s *GoalService) Goals(ctx context.Context, goalType model.GoalType) ([]*model.GoalWithCheckins, error) {
	goals, err := s.repo.Goals(ctx, goalType)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	ids := make([]string, 0, len(goals))
	for _, goal := range goals {
		ids = append(ids, goal.ID)
	}

	checkins, err := s.checkinRepo.CheckinsByGoals(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}

	items := make([]*model.GoalWithCheckins, 0, len(goals))
	for _, goal := range goals {
		items = append(items, &model.GoalWithCheckins{
			Goal:     goal,
			Checkins: checkins[goal.ID],
		})
	}

	return items, nil
}

func (s *GoalService) ByID(ctx context.Context, goalID string) (*model.Goal, error) {
	return s.repo.ByID(ctx, goalID)
}

func (s *GoalService) Checkins(ctx context.Context, goalID string) ([]*model.Checkin, error) {
	_, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	return s.checkinRepo.Checkins(ctx, goalID)
}

func (s *GoalService) Create(ctx context.Context, in model.GoalInput) (*model.Goal, error) {
	in, err := validation.ValidateGoal(in)
	if err != nil {
		s.record("create_goal", err)
		return nil, err
	}

	goal := &model.Goal{
		ID:        uuid.New().String(),
		Completed: false,
		CreatedAt: s.now(),
	}
	applyInput(goal, in)

	err = s.repo.Create(ctx, goal)
	s.record("create_goal", err)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// Update overwrites every editable field; optional fields left out of in become empty.
func (s *GoalService) Update(ctx context.Context, goalID string, in model.GoalInput) (*model.Goal, error) {
	in, err := validation.ValidateGoal(in)
	if err != nil {
		s.record("update_goal", err)
		return nil, err
	}

	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		s.record("update_goal", err)
		return nil, err
	}
	applyInput(goal, in)

	err = s.repo.Update(ctx, goal)
	s.record("update_goal", err)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, goalID string) error {
	err := s.repo.Delete(ctx, goalID)
	s.record("delete_goal", err)
	return err
}

// ToggleCompleted flips the completion flag and returns the new value.
func (s *GoalService) ToggleCompleted(ctx context.Context, goalID string) (bool, error) {
	completed, err := s.repo.ToggleCompleted(ctx, goalID)
	s.record("toggle_goal", err)
	return completed, err
}

func (s *GoalService) AddCheckin(ctx context.Context, goalID, note string) (*model.Checkin, error) {
	note, err := validation.ValidateNote(note)
	if err != nil {
		s.record("create_checkin", err)
		return nil, err
	}

	_, err = s.repo.ByID(ctx, goalID)
	if err != nil {
		s.record("create_checkin", err)
		return nil, err
	}

	checkin := &model.Checkin{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Note:      note,
		CreatedAt: s.now(),
	}

	err = s.checkinRepo.Create(ctx, checkin)
	s.record("create_checkin", err)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkin: %w", err)
	}

	return checkin, nil
}

func applyInput(goal *model.Goal, in model.GoalInput) {
	goalType, _ := model.ParseGoalType(in.Type)

	goal.Title = in.Title
	goal.Description = in.Description
	goal.Type = goalType
	goal.Specific = in.Specific
	goal.Measurable = in.Measurable
	goal.Achievable = in.Achievable
	goal.Relevant = in.Relevant
	goal.TimeBound = in.TimeBound
}

func (s *GoalService) record(operation string, err error) {
	status := "success"
	if err != nil {
		if _, ok := validation.AsErrors(err); ok {
			status = "invalid"
		} else if errors.Is(err, repository.ErrGoalNotFound) {
			status = "not_found"
		} else {
			status = "error"
		}
	}
	s.metrics.RecordOperation(operation, status)
}
