package services

import (
	"context"
	"math"
	"testing"

	"github.com/pintando7/escolinha/internal/app/models"
)

func newDashboardFixture() (*DashboardService, *fakeStudentStore, *fakeExpenseStore, *fakeEventStore, *fakeAppointmentStore) {
	students := newFakeStudentStore()
	logs := &fakeMealLogStore{}
	expenses := newFakeExpenseStore()
	events := newFakeEventStore()
	appointments := newFakeAppointmentStore()
	svc := NewDashboardService(students, logs, expenses, events, appointments)
	return svc, students, expenses, events, appointments
}

func TestSummaryCountsRestrictionsAndSevereAllergies(t *testing.T) {
	svc, students, _, _, _ := newDashboardFixture()
	ctx := context.Background()

	plain := &models.Student{FullName: "Ana"}
	students.Create(ctx, plain)

	flagged := &models.Student{FullName: "Bia"}
	flagged.Medical.HasRestriction = true
	students.Create(ctx, flagged)

	severe := &models.Student{FullName: "Caio"}
	severe.Medical.Allergies = []models.Allergy{{Name: "Amendoim", Severity: models.SeveritySevere}}
	students.Create(ctx, severe)

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.TotalStudents != 3 {
		t.Fatalf("TotalStudents = %d, want 3", summary.TotalStudents)
	}
	if summary.WithRestrictions != 2 {
		t.Fatalf("WithRestrictions = %d, want 2 (flag or allergy list)", summary.WithRestrictions)
	}
	if summary.SevereAllergies != 1 {
		t.Fatalf("SevereAllergies = %d, want 1", summary.SevereAllergies)
	}
}

func TestExpenseSummaryBucketsMonth(t *testing.T) {
	svc, _, expenses, _, _ := newDashboardFixture()
	ctx := context.Background()

	expenses.Create(ctx, &models.Expense{
		Description: "Compras do mês", Category: "Alimentação",
		Amount: 150.00, Date: "2024-03-15",
	})
	expenses.Create(ctx, &models.Expense{
		Description: "Papel", Category: "Material Escolar",
		Amount: 50.00, Date: "2024-04-02",
	})

	summary, err := svc.ExpenseSummary(ctx, "2024-03")
	if err != nil {
		t.Fatalf("ExpenseSummary: %v", err)
	}

	if summary.Total != 150.00 {
		t.Fatalf("Total = %.2f, want 150.00", summary.Total)
	}
	if len(summary.ByCategory) != 1 || summary.ByCategory[0].Category != "Alimentação" {
		t.Fatalf("ByCategory = %+v, want only Alimentação", summary.ByCategory)
	}
	if summary.ByCategory[0].Total != 150.00 {
		t.Fatalf("Alimentação total = %.2f, want 150.00", summary.ByCategory[0].Total)
	}
}

func TestExpenseSummaryZeroPriorMonthMeansZeroChange(t *testing.T) {
	svc, _, expenses, _, _ := newDashboardFixture()
	ctx := context.Background()

	// Nothing in February: March must report 0% change, not a division blowup
	expenses.Create(ctx, &models.Expense{
		Description: "Compras", Category: "Alimentação",
		Amount: 900.00, Date: "2024-03-10",
	})

	summary, err := svc.ExpenseSummary(ctx, "2024-03")
	if err != nil {
		t.Fatalf("ExpenseSummary: %v", err)
	}
	if summary.PercentageChange != 0 {
		t.Fatalf("PercentageChange = %.2f, want 0 with empty prior month", summary.PercentageChange)
	}
}

func TestExpenseSummaryChangeAgainstPriorMonth(t *testing.T) {
	svc, _, expenses, _, _ := newDashboardFixture()
	ctx := context.Background()

	expenses.Create(ctx, &models.Expense{
		Description: "Fevereiro", Category: "Alimentação",
		Amount: 200.00, Date: "2024-02-10",
	})
	expenses.Create(ctx, &models.Expense{
		Description: "Março", Category: "Alimentação",
		Amount: 300.00, Date: "2024-03-10",
	})

	summary, err := svc.ExpenseSummary(ctx, "2024-03")
	if err != nil {
		t.Fatalf("ExpenseSummary: %v", err)
	}
	if math.Abs(summary.PercentageChange-50.0) > 0.001 {
		t.Fatalf("PercentageChange = %.2f, want 50.00", summary.PercentageChange)
	}
}

func TestExpenseSummaryTrendLength(t *testing.T) {
	svc, _, _, _, _ := newDashboardFixture()

	summary, err := svc.ExpenseSummary(context.Background(), "2024-06")
	if err != nil {
		t.Fatalf("ExpenseSummary: %v", err)
	}
	if len(summary.Trend) != trendMonths {
		t.Fatalf("Trend has %d points, want %d", len(summary.Trend), trendMonths)
	}
	if summary.Trend[len(summary.Trend)-1].Month != "2024-06" {
		t.Fatalf("trend ends at %s, want 2024-06", summary.Trend[len(summary.Trend)-1].Month)
	}
	if summary.Trend[0].Month != "2024-01" {
		t.Fatalf("trend starts at %s, want 2024-01", summary.Trend[0].Month)
	}
}

func TestCalendarDaysAndLeadingBlanks(t *testing.T) {
	svc, _, _, _, _ := newDashboardFixture()
	ctx := context.Background()

	tests := []struct {
		year   int
		month  int
		days   int
		blanks int
	}{
		{2024, 2, 29, 4}, // leap February, starts on a Thursday
		{2024, 4, 30, 1}, // April, starts on a Monday
		{2023, 2, 28, 3}, // plain February, starts on a Wednesday
		{2024, 9, 30, 0}, // September, starts on a Sunday
	}

	for _, tt := range tests {
		grid, err := svc.Calendar(ctx, tt.year, tt.month)
		if err != nil {
			t.Fatalf("Calendar(%d, %d): %v", tt.year, tt.month, err)
		}
		if grid.Days != tt.days {
			t.Errorf("%d-%02d: Days = %d, want %d", tt.year, tt.month, grid.Days, tt.days)
		}
		if grid.LeadingBlanks != tt.blanks {
			t.Errorf("%d-%02d: LeadingBlanks = %d, want %d", tt.year, tt.month, grid.LeadingBlanks, tt.blanks)
		}
		if len(grid.Cells) != tt.days {
			t.Errorf("%d-%02d: %d cells, want %d", tt.year, tt.month, len(grid.Cells), tt.days)
		}
	}
}

func TestCalendarBucketsEventsAndAppointments(t *testing.T) {
	svc, _, _, events, appointments := newDashboardFixture()
	ctx := context.Background()

	event := &models.SchoolEvent{Title: "Festa Junina", Date: "2024-06-14"}
	events.Create(ctx, event)

	appointment := &models.Appointment{Title: "Reunião de pais", Date: "2024-06-14T15:00:00Z"}
	appointments.Create(ctx, appointment)

	grid, err := svc.Calendar(ctx, 2024, 6)
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}

	day := grid.Cells[13] // June 14th
	if day.Date != "2024-06-14" {
		t.Fatalf("cell 13 date = %s, want 2024-06-14", day.Date)
	}
	if len(day.EventIDs) != 1 || day.EventIDs[0] != event.ID {
		t.Fatalf("EventIDs = %v, want [%s]", day.EventIDs, event.ID)
	}
	if len(day.Appointments) != 1 || day.Appointments[0] != appointment.ID {
		t.Fatalf("Appointments = %v, want [%s]", day.Appointments, appointment.ID)
	}
}

func TestMealOverviewAveragesOneDay(t *testing.T) {
	students := newFakeStudentStore()
	logs := &fakeMealLogStore{}
	svc := NewDashboardService(students, logs, newFakeExpenseStore(), newFakeEventStore(), newFakeAppointmentStore())
	ctx := context.Background()

	logs.Create(ctx, &models.MealLog{StudentID: "s-1", Date: "2024-03-15T09:00:00Z", MealType: models.MealLunch, ConsumptionPercentage: 50})
	logs.Create(ctx, &models.MealLog{StudentID: "s-2", Date: "2024-03-15T09:05:00Z", MealType: models.MealLunch, ConsumptionPercentage: 100})
	logs.Create(ctx, &models.MealLog{StudentID: "s-1", Date: "2024-03-16T09:00:00Z", MealType: models.MealLunch, ConsumptionPercentage: 10})

	overview, err := svc.MealOverview(ctx, "2024-03-15")
	if err != nil {
		t.Fatalf("MealOverview: %v", err)
	}

	lunch, ok := overview[string(models.MealLunch)]
	if !ok {
		t.Fatalf("overview = %+v, missing lunch bucket", overview)
	}
	if lunch["count"] != 2 {
		t.Fatalf("count = %v, want 2 (other day excluded)", lunch["count"])
	}
	if lunch["averageConsumption"] != 75 {
		t.Fatalf("averageConsumption = %v, want 75", lunch["averageConsumption"])
	}
}

func TestCalendarRejectsBadMonth(t *testing.T) {
	svc, _, _, _, _ := newDashboardFixture()

	if _, err := svc.Calendar(context.Background(), 2024, 13); err == nil {
		t.Fatal("month 13 accepted")
	}
}
