package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

func TestCreateStudentAppliesDefaults(t *testing.T) {
	store := newFakeStudentStore()
	syncer := &fakeSyncer{}
	svc := NewStudentService(store, syncer)

	student, err := svc.CreateStudent(context.Background(), &models.Student{FullName: "Ana Clara"})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	if student.Gender != "M" {
		t.Fatalf("Gender = %s, want default M", student.Gender)
	}
	if student.Shift != models.ShiftMorning {
		t.Fatalf("Shift = %s, want Matutino", student.Shift)
	}
	if student.Medical.Allergies == nil || student.Medical.Intolerances == nil {
		t.Fatal("medical slices left nil")
	}
	if len(syncer.changed) != 1 || syncer.changed[0] != models.CollectionStudents {
		t.Fatalf("broadcasts = %v, want [students]", syncer.changed)
	}
}

func TestCreateStudentRequiresName(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore(), &fakeSyncer{})

	if _, err := svc.CreateStudent(context.Background(), &models.Student{FullName: "   "}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
}

func TestCreateStudentSyncsRestrictionFlag(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore(), &fakeSyncer{})

	student := &models.Student{FullName: "Bia"}
	student.Medical.Allergies = []models.Allergy{{Name: "Leite", Severity: models.SeverityMild}}

	created, err := svc.CreateStudent(context.Background(), student)
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	if !created.Medical.HasRestriction {
		t.Fatal("restriction flag not raised for allergy list")
	}
}

func TestUpdateStudentClearsStaleRestrictionFlag(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store, &fakeSyncer{})
	ctx := context.Background()

	student := &models.Student{FullName: "Caio"}
	student.Medical.Allergies = []models.Allergy{{Name: "Ovo", Severity: models.SeverityMild}}
	created, err := svc.CreateStudent(ctx, student)
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	created.Medical.Allergies = []models.Allergy{}
	updated, err := svc.UpdateStudent(ctx, created)
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	if updated.Medical.HasRestriction {
		t.Fatal("restriction flag survived an emptied allergy list")
	}
}

func TestUpdateStudentRequiresID(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore(), &fakeSyncer{})

	if _, err := svc.UpdateStudent(context.Background(), &models.Student{FullName: "Ana"}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
}

func TestDeleteStudentUnknownID(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore(), &fakeSyncer{})

	if err := svc.DeleteStudent(context.Background(), "missing"); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
}
