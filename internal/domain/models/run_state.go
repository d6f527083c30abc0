package models

import "time"

// RunStatus is the lifecycle status of a migration run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCompleted RunStatus = "completed"
)

// RunState records how far a migration run got, so a failed run can be resumed
type RunState struct {
	RunID       string            `json:"runId"`
	Migration   string            `json:"migration"`
	Network     string            `json:"network"`
	Source      string            `json:"source"`
	StartedAt   time.Time         `json:"startedAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Status      RunStatus         `json:"status"`
	CurrentStep int               `json:"currentStep"`
	Addresses   map[string]string `json:"addresses"`
	Error       string            `json:"error,omitempty"`
}
