package models

// EventAudience selects who an event broadcast targets.
type EventAudience string

const (
	AudienceGlobal  EventAudience = "GLOBAL"
	AudienceClass   EventAudience = "CLASS"
	AudienceStudent EventAudience = "STUDENT"
)

// EventStatus is the publication state of the event record.
type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
)

// DispatchStatus is the lifecycle of a broadcast attempt, separate from
// the publication status of the event itself.
type DispatchStatus string

const (
	DispatchPending   DispatchStatus = "PENDING"
	DispatchSending   DispatchStatus = "SENDING"
	DispatchCompleted DispatchStatus = "COMPLETED"
)

// DeliveryStats accounts for a dispatch run. Written once when the run
// finishes; a crash mid-run loses the statistics for that run.
type DeliveryStats struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// SchoolEvent is an agenda event broadcast to guardians.
type SchoolEvent struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Date           string         `json:"date"` // YYYY-MM-DD
	Time           string         `json:"time"` // HH:MM
	Audience       EventAudience  `json:"audience"`
	TargetID       string         `json:"targetId,omitempty"` // class name or student ID
	Status         EventStatus    `json:"status"`
	DispatchStatus DispatchStatus `json:"whatsappStatus"`
	DeliveryStats  DeliveryStats  `json:"deliveryStats"`
	CreatedAt      string         `json:"createdAt"`
}
