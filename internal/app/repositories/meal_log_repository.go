package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pintando7/escolinha/internal/app/models"
)

// MealLogRepository handles the logs document collection.
// Meal logs are append-only: there is no update or delete path.
type MealLogRepository struct {
	db *pgxpool.Pool
}

// NewMealLogRepository creates a new meal log repository
func NewMealLogRepository(db *pgxpool.Pool) *MealLogRepository {
	return &MealLogRepository{db: db}
}

// Create inserts a new meal log entry and returns the assigned ID.
func (r *MealLogRepository) Create(ctx context.Context, log *models.MealLog) (string, error) {
	doc, err := stripID(log)
	if err != nil {
		return "", err
	}

	var id string
	err = r.db.QueryRow(ctx,
		`INSERT INTO logs (doc) VALUES ($1) RETURNING id::text`, doc).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("error creating meal log: %w", err)
	}

	log.ID = id
	return id, nil
}

// List returns all meal logs, most recent first.
func (r *MealLogRepository) List(ctx context.Context) ([]*models.MealLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, doc FROM logs ORDER BY doc->>'date' DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing meal logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.MealLog
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		var log models.MealLog
		if err := json.Unmarshal(raw, &log); err != nil {
			return nil, fmt.Errorf("error decoding meal log document: %w", err)
		}
		log.ID = id
		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
