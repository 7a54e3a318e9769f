package models

import "time"

const (
	AlgorithmRandom  = "random"
	AlgorithmPattern = "pattern"
	AlgorithmAI      = "ai"
)

type Settings struct {
	Algorithm        string    `json:"algorithm"`
	UpdateFrequency  int       `json:"updateFrequency"`
	SuccessThreshold int       `json:"successThreshold"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func DefaultSettings() Settings {
	return Settings{
		Algorithm:        AlgorithmRandom,
		UpdateFrequency:  5,
		SuccessThreshold: 70,
	}
}
