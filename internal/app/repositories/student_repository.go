package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// StudentRepository handles the students document collection
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student document and returns the assigned ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (string, error) {
	doc, err := stripID(student)
	if err != nil {
		return "", err
	}

	var id string
	err = r.db.QueryRow(ctx,
		`INSERT INTO students (doc) VALUES ($1) RETURNING id::text`, doc).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("error creating student: %w", err)
	}

	student.ID = id
	return id, nil
}

// GetByID retrieves a single student with defaults applied.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT doc FROM students WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		return nil, docReadErr(err, "student", apperrors.ErrStudentNotFound)
	}

	var student models.Student
	if err := json.Unmarshal(raw, &student); err != nil {
		return nil, fmt.Errorf("error decoding student document: %w", err)
	}
	student.ID = id
	student.Normalize()
	return &student, nil
}

// List returns the full collection ordered by name, every document
// normalized with the documented defaults.
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, doc FROM students ORDER BY doc->>'fullName'`)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		var student models.Student
		if err := json.Unmarshal(raw, &student); err != nil {
			return nil, fmt.Errorf("error decoding student document: %w", err)
		}
		student.ID = id
		student.Normalize()
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

// Update replaces the stored document for the given ID.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	doc, err := stripID(student)
	if err != nil {
		return err
	}

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET doc = $2 WHERE id = $1`, student.ID, doc)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student document by ID.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
