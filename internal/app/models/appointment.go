package models

// Appointment is a scheduled agenda item. Create and delete only; an
// appointment is never edited in place.
type Appointment struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Date  string          `json:"date"` // ISO timestamp
	Type  AppointmentType `json:"type"`
	Notes string          `json:"notes,omitempty"`
}

// WeeklyGoal is a nutritionist checklist item.
type WeeklyGoal struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}
