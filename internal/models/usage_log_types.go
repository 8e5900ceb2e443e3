package models

import "time"

// Action types recorded in usage_logs.action_type.
const (
	ActionListing  = "listing"
	ActionKeywords = "keywords"
)

// UsageLog defines the model for the append-only 'usage_logs' table
type UsageLog struct {
	ID         int64     `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	ActionType string    `json:"action" db:"action_type"`
	InputText  string    `json:"input" db:"input_text"`
	OutputText string    `json:"output" db:"output_text"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
