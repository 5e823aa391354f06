package services

import (
	"context"
	"strings"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// GoalService handles the weekly goal checklist
type GoalService struct {
	goals GoalStore
	sync  Syncer
}

// NewGoalService creates a new goal service
func NewGoalService(goals GoalStore, sync Syncer) *GoalService {
	return &GoalService{goals: goals, sync: sync}
}

// CreateGoal stores a new checklist item, incomplete by definition.
func (s *GoalService) CreateGoal(ctx context.Context, text string) (*models.WeeklyGoal, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Texto da meta é obrigatório")
	}

	goal := &models.WeeklyGoal{
		Text:      strings.TrimSpace(text),
		Completed: false,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	if _, err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionGoals)
	return goal, nil
}

// ListGoals returns the checklist in creation order.
func (s *GoalService) ListGoals(ctx context.Context) ([]*models.WeeklyGoal, error) {
	return s.goals.List(ctx)
}

// ToggleGoal flips the completed flag relative to the state the caller
// saw. Only the flag is written; concurrent togglers overwrite each
// other last-write-wins.
func (s *GoalService) ToggleGoal(ctx context.Context, id string, previous bool) (*models.WeeklyGoal, error) {
	if err := s.goals.SetCompleted(ctx, id, !previous); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionGoals)

	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, goal := range goals {
		if goal.ID == id {
			return goal, nil
		}
	}
	return nil, apperrors.ErrGoalNotFound
}

// DeleteGoal removes a checklist item.
func (s *GoalService) DeleteGoal(ctx context.Context, id string) error {
	if err := s.goals.Delete(ctx, id); err != nil {
		return err
	}

	s.sync.CollectionChanged(ctx, models.CollectionGoals)
	return nil
}
