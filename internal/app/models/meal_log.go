package models

// MealLog records a single meal for a student. Logs are immutable once
// created; there is no update path.
type MealLog struct {
	ID                    string   `json:"id"`
	StudentID             string   `json:"studentId"`
	Date                  string   `json:"date"` // ISO timestamp
	MealType              MealType `json:"mealType"`
	ConsumptionPercentage int      `json:"consumptionPercentage"` // 0-100
	Mood                  MealMood `json:"mood"`
	Notes                 string   `json:"notes"`
}
