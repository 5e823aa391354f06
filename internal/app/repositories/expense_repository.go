package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// ExpenseRepository handles the expenses document collection
type ExpenseRepository struct {
	db *pgxpool.Pool
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts a new expense and returns the assigned ID.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) (string, error) {
	doc, err := stripID(expense)
	if err != nil {
		return "", err
	}

	var id string
	err = r.db.QueryRow(ctx,
		`INSERT INTO expenses (doc) VALUES ($1) RETURNING id::text`, doc).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("error creating expense: %w", err)
	}

	expense.ID = id
	return id, nil
}

// List returns all expenses, most recent first.
func (r *ExpenseRepository) List(ctx context.Context) ([]*models.Expense, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, doc FROM expenses ORDER BY doc->>'date' DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		var expense models.Expense
		if err := json.Unmarshal(raw, &expense); err != nil {
			return nil, fmt.Errorf("error decoding expense document: %w", err)
		}
		expense.ID = id
		expenses = append(expenses, &expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

// Update replaces the stored document for the given ID.
func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	doc, err := stripID(expense)
	if err != nil {
		return err
	}

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE expenses SET doc = $2 WHERE id = $1`, expense.ID, doc)
	if err != nil {
		return fmt.Errorf("error updating expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense by ID.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}
