package models

import "time"

const (
	PredictionStatusActive    = "active"
	PredictionStatusCompleted = "completed"

	ResultSuccess = "success"
	ResultFailed  = "failed"
	// ResultNone marks a prediction whose outcome is not known yet.
	// Only completed predictions carry a real result.
	ResultNone = ""
)

type Prediction struct {
	ID         string    `json:"id"`
	Multiplier float64   `json:"multiplier"`
	Status     string    `json:"status"`
	Result     string    `json:"result,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
