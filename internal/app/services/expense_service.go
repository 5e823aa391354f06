package services

import (
	"context"
	"strings"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// ExpenseService handles school expenditures
type ExpenseService struct {
	expenses ExpenseStore
	sync     Syncer
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenses ExpenseStore, sync Syncer) *ExpenseService {
	return &ExpenseService{expenses: expenses, sync: sync}
}

// normalizeCategory coerces unknown categories into the fallback bucket.
func normalizeCategory(category string) string {
	for _, known := range models.ExpenseCategories {
		if category == known {
			return category
		}
	}
	return models.DefaultExpenseCategory
}

func (s *ExpenseService) validate(expense *models.Expense) error {
	if strings.TrimSpace(expense.Description) == "" {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Descrição é obrigatória")
	}
	if expense.Amount <= 0 {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Valor deve ser maior que zero")
	}
	if expense.Date == "" {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Data é obrigatória")
	}
	if _, err := time.Parse("2006-01-02", expense.Date); err != nil {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Data inválida, use AAAA-MM-DD")
	}
	return nil
}

// CreateExpense validates and stores a new expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if err := s.validate(expense); err != nil {
		return nil, err
	}

	expense.Category = normalizeCategory(expense.Category)
	if expense.CreatedAt == "" {
		expense.CreatedAt = time.Now().Format(time.RFC3339)
	}

	if _, err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionExpenses)
	return expense, nil
}

// ListExpenses returns expenses, most recent first. A month selector
// (AAAA-MM) keeps only that month; a search term matches the
// description case-insensitively. Both filters are optional.
func (s *ExpenseService) ListExpenses(ctx context.Context, month, search string) ([]*models.Expense, error) {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, err
	}
	if month == "" && search == "" {
		return expenses, nil
	}

	search = strings.ToLower(strings.TrimSpace(search))
	filtered := make([]*models.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if month != "" && !strings.HasPrefix(expense.Date, month) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(expense.Description), search) {
			continue
		}
		filtered = append(filtered, expense)
	}
	return filtered, nil
}

// UpdateExpense replaces an expense record.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if expense.ID == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "ID da despesa é obrigatório")
	}
	if err := s.validate(expense); err != nil {
		return nil, err
	}

	expense.Category = normalizeCategory(expense.Category)

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionExpenses)
	return expense, nil
}

// DeleteExpense removes an expense record.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		return err
	}

	s.sync.CollectionChanged(ctx, models.CollectionExpenses)
	return nil
}
