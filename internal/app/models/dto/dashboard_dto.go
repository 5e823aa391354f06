package dto

// DashboardSummary mirrors the overview KPI cards.
type DashboardSummary struct {
	TotalStudents    int `json:"totalStudents"`
	WithRestrictions int `json:"withRestrictions"`
	SevereAllergies  int `json:"severeAllergies"`
}

// CategoryTotal is one slice of the by-category expense breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthTotal is one point of the monthly trend series.
type MonthTotal struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

// ExpenseSummary aggregates one month of expenses.
type ExpenseSummary struct {
	Month            string          `json:"month"`
	Total            float64         `json:"total"`
	PercentageChange float64         `json:"percentageChange"` // vs previous month, 0 when prior total is 0
	ByCategory       []CategoryTotal `json:"byCategory"`
	Trend            []MonthTotal    `json:"trend"`
}

// CalendarDay is a single day cell with its bucketed entries.
type CalendarDay struct {
	Day          int      `json:"day"`
	Date         string   `json:"date"` // YYYY-MM-DD
	EventIDs     []string `json:"eventIds,omitempty"`
	Appointments []string `json:"appointmentIds,omitempty"`
}

// CalendarMonth is the generated month grid: LeadingBlanks empty cells
// followed by exactly Days day cells.
type CalendarMonth struct {
	Year          int           `json:"year"`
	Month         int           `json:"month"` // 1-12
	Days          int           `json:"days"`
	LeadingBlanks int           `json:"leadingBlanks"` // weekday of day 1, Sunday = 0
	Cells         []CalendarDay `json:"cells"`
}

// DispatchResult reports the outcome of an event dispatch run.
type DispatchResult struct {
	EventID      string `json:"eventId"`
	Total        int    `json:"total"`
	Success      int    `json:"success"`
	Failed       int    `json:"failed"`
	WhatsAppLink string `json:"whatsappLink,omitempty"` // set for single-recipient dispatch
}
