package scheduler

import (
	"voidbot/internal/config"

	"github.com/robfig/cron/v3"
)

// Scheduler handles periodic execution of background maintenance jobs
type Scheduler struct {
	config *config.Config
	cron   *cron.Cron
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{
		config: cfg,
		cron:   cron.New(),
	}
}

// AddJob registers a named job on a cron schedule ("@hourly", "@every 10m",
// or a standard five-field spec). Panics from a job are contained so one bad
// run cannot take the bot down.
func (s *Scheduler) AddJob(spec, name string, fn func()) error {
	logger := s.config.Logger
	_, err := s.cron.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Scheduled job panicked", "job", name, "panic", r)
			}
		}()
		logger.Debug("Running scheduled job", "job", name)
		fn()
	})
	if err != nil {
		return err
	}
	logger.Info("Scheduled job registered", "job", name, "spec", spec)
	return nil
}

// Start begins running registered jobs on their schedules
func (s *Scheduler) Start() {
	s.cron.Start()
	s.config.Logger.Info("Scheduler started!")
}

// Stop halts the scheduler, waiting for in-flight jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.config.Logger.Info("Scheduler stopped")
}
