package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner drops idle sessions and reports how many were removed.
type Pruner interface {
	Prune() int
}

// Scheduler periodically prunes idle forecast sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
}

// New creates a new Scheduler.
func New(pruner Pruner, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		pruner:    pruner,
		interval:  interval,
	}
}

// Start schedules the prune job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.pruner == nil {
		log.Println("scheduler: no session store configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(s.runPrune)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runPrune() {
	if n := s.pruner.Prune(); n > 0 {
		log.Printf("scheduler: pruned %d idle sessions", n)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
