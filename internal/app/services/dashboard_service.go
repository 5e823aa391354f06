package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/app/models/dto"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// trendMonths is the length of the monthly expense trend series.
const trendMonths = 6

// DashboardService computes the aggregated read models for the
// overview screens. All aggregation is done in memory over full
// collection reads, matching how the clients consume the data.
type DashboardService struct {
	students     StudentStore
	logs         MealLogStore
	expenses     ExpenseStore
	events       EventStore
	appointments AppointmentStore
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(students StudentStore, logs MealLogStore, expenses ExpenseStore,
	events EventStore, appointments AppointmentStore) *DashboardService {
	return &DashboardService{
		students:     students,
		logs:         logs,
		expenses:     expenses,
		events:       events,
		appointments: appointments,
	}
}

// Summary computes the student KPI cards.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummary{TotalStudents: len(students)}
	for _, student := range students {
		if student.HasDietaryRestriction() {
			summary.WithRestrictions++
		}
		if student.HasSevereAllergy() {
			summary.SevereAllergies++
		}
	}
	return summary, nil
}

// parseMonth validates a YYYY-MM selector.
func parseMonth(month string) (time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Mês inválido, use AAAA-MM")
	}
	return t, nil
}

// ExpenseSummary aggregates one month of expenses: total, change
// against the previous month, per-category breakdown and the trailing
// monthly trend. A zero previous month yields a zero change, not a
// division error.
func (s *DashboardService) ExpenseSummary(ctx context.Context, month string) (*dto.ExpenseSummary, error) {
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	monthStart, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, err
	}

	// Bucket totals by YYYY-MM prefix of the expense date
	monthTotals := make(map[string]float64)
	byCategory := make(map[string]float64)
	for _, expense := range expenses {
		if len(expense.Date) < 7 {
			continue
		}
		prefix := expense.Date[:7]
		monthTotals[prefix] += expense.Amount
		if prefix == month {
			byCategory[normalizeCategory(expense.Category)] += expense.Amount
		}
	}

	summary := &dto.ExpenseSummary{
		Month: month,
		Total: monthTotals[month],
	}

	previous := monthStart.AddDate(0, -1, 0).Format("2006-01")
	if prior := monthTotals[previous]; prior > 0 {
		summary.PercentageChange = (summary.Total - prior) / prior * 100
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if byCategory[categories[i]] != byCategory[categories[j]] {
			return byCategory[categories[i]] > byCategory[categories[j]]
		}
		return categories[i] < categories[j]
	})
	for _, category := range categories {
		summary.ByCategory = append(summary.ByCategory, dto.CategoryTotal{
			Category: category,
			Total:    byCategory[category],
		})
	}

	for i := trendMonths - 1; i >= 0; i-- {
		key := monthStart.AddDate(0, -i, 0).Format("2006-01")
		summary.Trend = append(summary.Trend, dto.MonthTotal{
			Month: key,
			Total: monthTotals[key],
		})
	}

	return summary, nil
}

// Calendar builds the month grid: leading blank cells up to the weekday
// of day one (Sunday first), then one cell per day with the events and
// appointments that fall on it.
func (s *DashboardService) Calendar(ctx context.Context, year, month int) (*dto.CalendarMonth, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Mês inválido")
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}

	eventsByDate := make(map[string][]string)
	for _, event := range events {
		eventsByDate[event.Date] = append(eventsByDate[event.Date], event.ID)
	}
	appointmentsByDate := make(map[string][]string)
	for _, appointment := range appointments {
		// Appointment dates are full timestamps; bucket by day
		if len(appointment.Date) >= 10 {
			day := appointment.Date[:10]
			appointmentsByDate[day] = append(appointmentsByDate[day], appointment.ID)
		}
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := &dto.CalendarMonth{
		Year:          year,
		Month:         month,
		Days:          daysInMonth,
		LeadingBlanks: int(first.Weekday()),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		grid.Cells = append(grid.Cells, dto.CalendarDay{
			Day:          day,
			Date:         date,
			EventIDs:     eventsByDate[date],
			Appointments: appointmentsByDate[date],
		})
	}

	return grid, nil
}

// MealOverview summarizes today's meal logs per meal type: how many
// entries exist and the average consumption.
func (s *DashboardService) MealOverview(ctx context.Context, date string) (map[string]map[string]float64, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	logs, err := s.logs.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.MealType]int)
	sums := make(map[models.MealType]int)
	for _, log := range logs {
		if !strings.HasPrefix(log.Date, date) {
			continue
		}
		counts[log.MealType]++
		sums[log.MealType] += log.ConsumptionPercentage
	}

	overview := make(map[string]map[string]float64)
	for mealType, count := range counts {
		overview[string(mealType)] = map[string]float64{
			"count":              float64(count),
			"averageConsumption": float64(sums[mealType]) / float64(count),
		}
	}
	return overview, nil
}
