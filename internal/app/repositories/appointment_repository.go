package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// AppointmentRepository handles the appointments document collection
type AppointmentRepository struct {
	db *pgxpool.Pool
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts a new appointment and returns the assigned ID.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (string, error) {
	doc, err := stripID(appointment)
	if err != nil {
		return "", err
	}

	var id string
	err = r.db.QueryRow(ctx,
		`INSERT INTO appointments (doc) VALUES ($1) RETURNING id::text`, doc).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("error creating appointment: %w", err)
	}

	appointment.ID = id
	return id, nil
}

// List returns all appointments in chronological order.
func (r *AppointmentRepository) List(ctx context.Context) ([]*models.Appointment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, doc FROM appointments ORDER BY doc->>'date'`)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		var appointment models.Appointment
		if err := json.Unmarshal(raw, &appointment); err != nil {
			return nil, fmt.Errorf("error decoding appointment document: %w", err)
		}
		appointment.ID = id
		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return appointments, nil
}

// Delete removes an appointment by ID.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting appointment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAppointmentNotFound
	}
	return nil
}
