package dtos

import (
	"time"

	"github.com/google/uuid"
)

// ImportJob is the status of one bulk catalog import.
type ImportJob struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`   // pending, processing, completed, failed
	Progress    int        `json:"progress"` // 0-100 percentage
	Total       int        `json:"total"`
	Processed   int        `json:"processed"`
	Created     int        `json:"created"`
	Updated     int        `json:"updated"`
	Failed      int        `json:"failed"`
	Errors      []JobError `json:"errors"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// JobError records why one import row failed.
type JobError struct {
	Row     int    `json:"row"`
	Product string `json:"product"`
	Message string `json:"message"`
}

// Job status values
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)
