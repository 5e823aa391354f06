package services

import (
	"context"
	"strings"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// StudentService handles student enrollment records
type StudentService struct {
	students StudentStore
	sync     Syncer
}

// NewStudentService creates a new student service
func NewStudentService(students StudentStore, sync Syncer) *StudentService {
	return &StudentService{students: students, sync: sync}
}

// CreateStudent validates and stores a new student record.
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if strings.TrimSpace(student.FullName) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Nome do aluno é obrigatório")
	}

	student.Normalize()
	student.SyncRestriction()

	if _, err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionStudents)
	return student, nil
}

// GetStudent returns a single student.
func (s *StudentService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// ListStudents returns the full roster ordered by name.
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.students.List(ctx)
}

// UpdateStudent replaces a student record. The restriction flag is
// recomputed from the allergy list on every write.
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if student.ID == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "ID do aluno é obrigatório")
	}

	student.Normalize()
	student.SyncRestriction()

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionStudents)
	return student, nil
}

// DeleteStudent removes a student record.
func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	s.sync.CollectionChanged(ctx, models.CollectionStudents)
	return nil
}
