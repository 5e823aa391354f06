package models

// Expense is a school expenditure entry.
type Expense struct {
	ID            string        `json:"id"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	Amount        float64       `json:"amount"`
	Date          string        `json:"date"` // YYYY-MM-DD
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Supplier      string        `json:"supplier"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     string        `json:"createdAt"`
}
