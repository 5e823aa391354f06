package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

func TestCreateGoalStartsIncomplete(t *testing.T) {
	store := newFakeGoalStore()
	sync := &fakeSyncer{}
	svc := NewGoalService(store, sync)

	goal, err := svc.CreateGoal(context.Background(), "  Introduzir frutas no lanche  ")
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if goal.Completed {
		t.Fatal("new goal created as completed")
	}
	if goal.Text != "Introduzir frutas no lanche" {
		t.Fatalf("Text = %q, not trimmed", goal.Text)
	}
	if len(sync.changed) != 1 || sync.changed[0] != models.CollectionGoals {
		t.Fatalf("sync.changed = %v, want one goals broadcast", sync.changed)
	}
}

func TestCreateGoalRejectsBlankText(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore(), &fakeSyncer{})

	if _, err := svc.CreateGoal(context.Background(), "   "); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want validation failure", err)
	}
}

func TestToggleGoalFlipsFromCallerState(t *testing.T) {
	store := newFakeGoalStore()
	svc := NewGoalService(store, &fakeSyncer{})
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, "Reduzir açúcar")
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	toggled, err := svc.ToggleGoal(ctx, goal.ID, false)
	if err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("toggle from false should complete the goal")
	}

	toggled, err = svc.ToggleGoal(ctx, goal.ID, true)
	if err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}
	if toggled.Completed {
		t.Fatal("toggle from true should reopen the goal")
	}
}

func TestToggleGoalUsesCallerValueNotStoredValue(t *testing.T) {
	// Two clients that both saw completed=false land on the same final
	// state: the stored negation of what each sent
	store := newFakeGoalStore()
	svc := NewGoalService(store, &fakeSyncer{})
	ctx := context.Background()

	goal, _ := svc.CreateGoal(ctx, "Cardápio da semana")

	first, err := svc.ToggleGoal(ctx, goal.ID, false)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	second, err := svc.ToggleGoal(ctx, goal.ID, false)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}

	if !first.Completed || !second.Completed {
		t.Fatalf("both togglers sent previous=false, both should read completed=true (got %v, %v)",
			first.Completed, second.Completed)
	}
}

func TestToggleGoalUnknownID(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore(), &fakeSyncer{})

	if _, err := svc.ToggleGoal(context.Background(), "missing", false); !errors.Is(err, apperrors.ErrGoalNotFound) {
		t.Fatalf("err = %v, want ErrGoalNotFound", err)
	}
}

func TestDeleteGoal(t *testing.T) {
	store := newFakeGoalStore()
	sync := &fakeSyncer{}
	svc := NewGoalService(store, sync)
	ctx := context.Background()

	goal, _ := svc.CreateGoal(ctx, "Semana da fruta")
	if err := svc.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}

	goals, _ := svc.ListGoals(ctx)
	if len(goals) != 0 {
		t.Fatalf("goal list has %d entries after delete", len(goals))
	}
}
