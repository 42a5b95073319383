// Package scheduler provides scheduled job execution for the front-page
// daemon: the market refresh and the news refresh run on fixed intervals.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Job represents a scheduled job.
type Job struct {
	Name     string
	Schedule Schedule
	Handler  func(ctx context.Context) error
	LastRun  time.Time
	NextRun  time.Time
}

// Schedule defines when a job should run.
type Schedule struct {
	// For fixed-interval jobs
	Interval time.Duration

	// For time-of-day jobs (in UTC)
	Hour   int
	Minute int

	// Type of schedule
	Type ScheduleType
}

// ScheduleType defines the type of schedule.
type ScheduleType string

const (
	ScheduleInterval ScheduleType = "interval"
	ScheduleDaily    ScheduleType = "daily"
)

const jobTimeout = 5 * time.Minute

// Scheduler manages scheduled jobs.
type Scheduler struct {
	jobs    []*Job
	jobsMux sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates an empty scheduler. Jobs are added by the caller
// before Start.
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]*Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a job to the scheduler.
func (s *Scheduler) AddJob(job *Job) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	job.NextRun = calculateNextRun(job.Schedule)
	s.jobs = append(s.jobs, job)

	log.Info().
		Str("job", job.Name).
		Time("next_run", job.NextRun).
		Msg("Job registered")
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	log.Info().Int("jobs", len(s.jobs)).Msg("Starting scheduler")
	s.wg.Add(1)
	go s.jobLoop()
}

// Stop stops the scheduler and waits for the loop to exit.
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler")
	s.cancel()
	s.wg.Wait()
}

// jobLoop checks and runs scheduled jobs once a minute.
func (s *Scheduler) jobLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRunJobs()
		}
	}
}

// checkAndRunJobs runs any jobs that are due.
func (s *Scheduler) checkAndRunJobs() {
	now := time.Now().UTC()

	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	for _, job := range s.jobs {
		if now.After(job.NextRun) || now.Equal(job.NextRun) {
			go s.runJob(job)
			job.LastRun = now
			job.NextRun = calculateNextRun(job.Schedule)

			log.Debug().
				Str("job", job.Name).
				Time("next_run", job.NextRun).
				Msg("Job scheduled for next run")
		}
	}
}

// runJob executes a job with a bounded context.
func (s *Scheduler) runJob(job *Job) {
	log.Info().Str("job", job.Name).Msg("Running job")

	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	if err := job.Handler(ctx); err != nil {
		log.Error().Err(err).Str("job", job.Name).Msg("Job failed")
	} else {
		log.Info().Str("job", job.Name).Msg("Job completed")
	}
}

// RunJobNow runs a specific job immediately by name.
func (s *Scheduler) RunJobNow(name string) {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	for _, job := range s.jobs {
		if job.Name == name {
			go s.runJob(job)
			return
		}
	}
}

// GetJobStatus returns the status of all jobs.
func (s *Scheduler) GetJobStatus() []map[string]interface{} {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	status := make([]map[string]interface{}, len(s.jobs))
	for i, job := range s.jobs {
		status[i] = map[string]interface{}{
			"name":     job.Name,
			"last_run": job.LastRun,
			"next_run": job.NextRun,
		}
	}
	return status
}

// calculateNextRun calculates the next run time for a schedule.
func calculateNextRun(schedule Schedule) time.Time {
	now := time.Now().UTC()

	switch schedule.Type {
	case ScheduleInterval:
		return now.Add(schedule.Interval)

	case ScheduleDaily:
		next := time.Date(now.Year(), now.Month(), now.Day(),
			schedule.Hour, schedule.Minute, 0, 0, time.UTC)
		if next.Before(now) || next.Equal(now) {
			next = next.Add(24 * time.Hour)
		}
		return next

	default:
		return now.Add(time.Hour)
	}
}
