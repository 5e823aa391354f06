package services

import (
	"context"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// MealLogService handles meal log entries
type MealLogService struct {
	logs     MealLogStore
	students StudentStore
	sync     Syncer
}

// NewMealLogService creates a new meal log service
func NewMealLogService(logs MealLogStore, students StudentStore, sync Syncer) *MealLogService {
	return &MealLogService{logs: logs, students: students, sync: sync}
}

// CreateLog records a meal. The student must exist; consumption is
// clamped to the 0-100 range.
func (s *MealLogService) CreateLog(ctx context.Context, log *models.MealLog) (*models.MealLog, error) {
	if log.StudentID == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Aluno é obrigatório")
	}

	if _, err := s.students.GetByID(ctx, log.StudentID); err != nil {
		return nil, err
	}

	if log.ConsumptionPercentage < 0 {
		log.ConsumptionPercentage = 0
	}
	if log.ConsumptionPercentage > 100 {
		log.ConsumptionPercentage = 100
	}
	if log.Date == "" {
		log.Date = time.Now().Format(time.RFC3339)
	}
	if log.Mood == "" {
		log.Mood = models.MoodNeutral
	}

	if _, err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionLogs)
	return log, nil
}

// ListLogs returns all meal logs, most recent first.
func (s *MealLogService) ListLogs(ctx context.Context) ([]*models.MealLog, error) {
	return s.logs.List(ctx)
}

// ListLogsForStudent filters the log history for one student.
func (s *MealLogService) ListLogsForStudent(ctx context.Context, studentID string) ([]*models.MealLog, error) {
	logs, err := s.logs.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.MealLog, 0)
	for _, log := range logs {
		if log.StudentID == studentID {
			filtered = append(filtered, log)
		}
	}
	return filtered, nil
}
