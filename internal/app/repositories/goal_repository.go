package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// GoalRepository handles the goals document collection
type GoalRepository struct {
	db *pgxpool.Pool
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create inserts a new weekly goal and returns the assigned ID.
func (r *GoalRepository) Create(ctx context.Context, goal *models.WeeklyGoal) (string, error) {
	doc, err := stripID(goal)
	if err != nil {
		return "", err
	}

	var id string
	err = r.db.QueryRow(ctx,
		`INSERT INTO goals (doc) VALUES ($1) RETURNING id::text`, doc).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("error creating goal: %w", err)
	}

	goal.ID = id
	return id, nil
}

// List returns all weekly goals in creation order.
func (r *GoalRepository) List(ctx context.Context) ([]*models.WeeklyGoal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, doc FROM goals ORDER BY doc->>'createdAt'`)
	if err != nil {
		return nil, fmt.Errorf("error listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.WeeklyGoal
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		var goal models.WeeklyGoal
		if err := json.Unmarshal(raw, &goal); err != nil {
			return nil, fmt.Errorf("error decoding goal document: %w", err)
		}
		goal.ID = id
		goals = append(goals, &goal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

// SetCompleted writes only the completed flag of the stored document.
// The value is taken as given; no read-modify-write cycle happens here.
func (r *GoalRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE goals SET doc = jsonb_set(doc, '{completed}', to_jsonb($2::boolean)) WHERE id = $1`,
		id, completed)
	if err != nil {
		return fmt.Errorf("error updating goal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// Delete removes a weekly goal by ID.
func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting goal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}
