package cron

import (
	"core/services"
	"log"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron      *cron.Cron
	lifecycle *services.LifecycleService
	cleanup   func() error
}

// NewScheduler builds the hourly job runner. cleanup is an optional
// extra task wired from the composition root (token pruning lives in
// another module), pass nil to skip it.
func NewScheduler(lifecycle *services.LifecycleService, cleanup func() error) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:      c,
		lifecycle: lifecycle,
		cleanup:   cleanup,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Cron expression: "0 0 * * * *" = at minute 0 of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.runLifecycle)
	if err != nil {
		log.Printf("Error scheduling lifecycle job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// RunNow triggers a lifecycle pass outside the schedule. Used at boot
// so a restarted server catches up immediately.
func (s *Scheduler) RunNow() {
	s.runLifecycle()
}

func (s *Scheduler) runLifecycle() {
	log.Println("Running lifecycle job...")

	s.lifecycle.Run()

	if s.cleanup != nil {
		if err := s.cleanup(); err != nil {
			log.Printf("Error during cleanup task: %v", err)
		}
	}

	log.Println("Lifecycle job completed")
}
