package jobs

import (
	"fmt"
	"slices"
)

// Job is a scheduled background task.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	started []Job
}

// NewJobManager creates a job manager for jobs. They start in the given order
// and stop in reverse.
func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts all scheduled jobs.
// If one fails, the jobs already started are stopped and the error is returned.
func (jm *JobManager) StartAll() error {
	for _, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s: %w", job.Name(), err)
		}
		jm.started = append(jm.started, job)
	}

	return nil
}

// StopAll stops every started job. Calling it twice is a no-op.
func (jm *JobManager) StopAll() {
	for _, job := range slices.Backward(jm.started) {
		job.Stop()
	}
	jm.started = nil
}

// Len reports how many jobs the manager holds.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}
