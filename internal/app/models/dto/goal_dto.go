package dto

// CreateGoalRequest adds a weekly checklist item.
type CreateGoalRequest struct {
	Text string `json:"text" binding:"required"`
}

// ToggleGoalRequest flips a goal relative to the state the caller last
// saw; the server stores the negation of Completed.
type ToggleGoalRequest struct {
	Completed bool `json:"completed"`
}
