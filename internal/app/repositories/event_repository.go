package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// EventRepository handles the events document collection
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event and returns the assigned ID.
func (r *EventRepository) Create(ctx context.Context, event *models.SchoolEvent) (string, error) {
	doc, err := stripID(event)
	if err != nil {
		return "", err
	}

	var id string
	err = r.db.QueryRow(ctx,
		`INSERT INTO events (doc) VALUES ($1) RETURNING id::text`, doc).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("error creating event: %w", err)
	}

	event.ID = id
	return id, nil
}

// GetByID retrieves a single event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.SchoolEvent, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT doc FROM events WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		return nil, docReadErr(err, "event", apperrors.ErrEventNotFound)
	}

	var event models.SchoolEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("error decoding event document: %w", err)
	}
	event.ID = id
	return &event, nil
}

// List returns all events in chronological order.
func (r *EventRepository) List(ctx context.Context) ([]*models.SchoolEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, doc FROM events ORDER BY doc->>'date'`)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.SchoolEvent
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		var event models.SchoolEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("error decoding event document: %w", err)
		}
		event.ID = id
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Update replaces the stored document for the given ID.
func (r *EventRepository) Update(ctx context.Context, event *models.SchoolEvent) error {
	doc, err := stripID(event)
	if err != nil {
		return err
	}

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE events SET doc = $2 WHERE id = $1`, event.ID, doc)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event by ID.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
