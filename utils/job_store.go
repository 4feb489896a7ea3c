package utils

import (
	"sync"
	"time"

	"fitstore-backend/dtos"

	"github.com/google/uuid"
)

// JobStore tracks bulk import jobs in memory. Completed jobs expire after
// an hour.
type JobStore struct {
	jobs map[uuid.UUID]*dtos.ImportJob
	mu   sync.RWMutex
}

// Global job store instance
var Store = &JobStore{
	jobs: make(map[uuid.UUID]*dtos.ImportJob),
}

// CleanupOldJobs removes finished jobs older than 1 hour.
func (js *JobStore) CleanupOldJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	cutoff := time.Now().Add(-1 * time.Hour)
	for id, job := range js.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(js.jobs, id)
		} else if job.StartedAt.Before(cutoff) && (job.Status == dtos.JobStatusCompleted || job.Status == dtos.JobStatusFailed) {
			delete(js.jobs, id)
		}
	}
}

// CreateJob registers a new import job covering total rows.
func (js *JobStore) CreateJob(total int) *dtos.ImportJob {
	js.CleanupOldJobs()

	js.mu.Lock()
	defer js.mu.Unlock()

	job := &dtos.ImportJob{
		ID:        uuid.New(),
		Status:    dtos.JobStatusPending,
		Total:     total,
		Errors:    []dtos.JobError{},
		StartedAt: time.Now(),
	}

	js.jobs[job.ID] = job
	return job
}

// GetJob retrieves a job by ID.
func (js *JobStore) GetJob(id uuid.UUID) (*dtos.ImportJob, bool) {
	js.mu.RLock()
	defer js.mu.RUnlock()

	job, exists := js.jobs[id]
	return job, exists
}

// UpdateJob applies a mutation to a job under the store lock.
func (js *JobStore) UpdateJob(id uuid.UUID, updates func(*dtos.ImportJob)) {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[id]; exists {
		updates(job)
	}
}

// SetProcessing marks a job as running.
func (js *JobStore) SetProcessing(id uuid.UUID) {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[id]; exists {
		job.Status = dtos.JobStatusProcessing
	}
}

// CompleteJob marks a job finished with the given terminal status.
func (js *JobStore) CompleteJob(id uuid.UUID, status string) {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[id]; exists {
		job.Status = status
		job.Progress = 100
		now := time.Now()
		job.CompletedAt = &now
	}
}
