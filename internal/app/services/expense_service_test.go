package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

func TestCreateExpenseKeepsKnownCategory(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseStore(), &fakeSyncer{})

	expense, err := svc.CreateExpense(context.Background(), &models.Expense{
		Description: "Compras do mês",
		Category:    "Alimentação",
		Amount:      150.00,
		Date:        "2024-03-15",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if expense.Category != "Alimentação" {
		t.Fatalf("Category = %s, want Alimentação", expense.Category)
	}
	if expense.CreatedAt == "" {
		t.Fatal("CreatedAt not stamped")
	}
}

func TestCreateExpenseCoercesUnknownCategory(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseStore(), &fakeSyncer{})

	tests := []string{"Jardinagem", "", "alimentação"}
	for _, category := range tests {
		expense, err := svc.CreateExpense(context.Background(), &models.Expense{
			Description: "Despesa avulsa",
			Category:    category,
			Amount:      10.00,
			Date:        "2024-03-15",
		})
		if err != nil {
			t.Fatalf("CreateExpense(%q): %v", category, err)
		}
		if expense.Category != models.DefaultExpenseCategory {
			t.Errorf("Category(%q) = %s, want %s", category, expense.Category, models.DefaultExpenseCategory)
		}
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseStore(), &fakeSyncer{})
	ctx := context.Background()

	tests := []struct {
		name    string
		expense models.Expense
	}{
		{"blank description", models.Expense{Amount: 10, Date: "2024-03-15"}},
		{"zero amount", models.Expense{Description: "x", Amount: 0, Date: "2024-03-15"}},
		{"negative amount", models.Expense{Description: "x", Amount: -5, Date: "2024-03-15"}},
		{"missing date", models.Expense{Description: "x", Amount: 10}},
		{"malformed date", models.Expense{Description: "x", Amount: 10, Date: "15/03/2024"}},
	}
	for _, tt := range tests {
		if _, err := svc.CreateExpense(ctx, &tt.expense); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("%s: err = %v, want ErrValidationFailed", tt.name, err)
		}
	}
}

func TestListExpensesFilters(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseStore(), &fakeSyncer{})
	ctx := context.Background()

	svc.CreateExpense(ctx, &models.Expense{Description: "Compras do mês", Category: "Alimentação", Amount: 150, Date: "2024-03-15"})
	svc.CreateExpense(ctx, &models.Expense{Description: "Papel sulfite", Category: "Material Escolar", Amount: 50, Date: "2024-03-20"})
	svc.CreateExpense(ctx, &models.Expense{Description: "Compras de abril", Category: "Alimentação", Amount: 80, Date: "2024-04-02"})

	all, err := svc.ListExpenses(ctx, "", "")
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered = %d, want 3", len(all))
	}

	march, err := svc.ListExpenses(ctx, "2024-03", "")
	if err != nil {
		t.Fatalf("ListExpenses(month): %v", err)
	}
	if len(march) != 2 {
		t.Fatalf("march = %d, want 2", len(march))
	}

	compras, err := svc.ListExpenses(ctx, "", "COMPRAS")
	if err != nil {
		t.Fatalf("ListExpenses(search): %v", err)
	}
	if len(compras) != 2 {
		t.Fatalf("search = %d, want 2 case-insensitive matches", len(compras))
	}

	both, err := svc.ListExpenses(ctx, "2024-03", "compras")
	if err != nil {
		t.Fatalf("ListExpenses(both): %v", err)
	}
	if len(both) != 1 || both[0].Description != "Compras do mês" {
		t.Fatalf("combined filter = %+v", both)
	}
}

func TestUpdateExpenseUnknownID(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseStore(), &fakeSyncer{})

	_, err := svc.UpdateExpense(context.Background(), &models.Expense{
		ID:          "missing",
		Description: "x",
		Amount:      10,
		Date:        "2024-03-15",
	})
	if !errors.Is(err, apperrors.ErrExpenseNotFound) {
		t.Fatalf("err = %v, want ErrExpenseNotFound", err)
	}
}

func TestDeleteExpenseBroadcasts(t *testing.T) {
	store := newFakeExpenseStore()
	syncer := &fakeSyncer{}
	svc := NewExpenseService(store, syncer)
	ctx := context.Background()

	expense, err := svc.CreateExpense(ctx, &models.Expense{
		Description: "Material",
		Amount:      30,
		Date:        "2024-03-15",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if err := svc.DeleteExpense(ctx, expense.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}

	if len(syncer.changed) != 2 {
		t.Fatalf("broadcasts = %v, want create + delete", syncer.changed)
	}
	for _, collection := range syncer.changed {
		if collection != models.CollectionExpenses {
			t.Fatalf("unexpected collection %s", collection)
		}
	}
}
