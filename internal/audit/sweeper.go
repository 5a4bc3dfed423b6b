package audit

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/readinglog/internal/database/audit"
)

// Sweeper deletes audit events older than the retention window on a cron
// schedule.
type Sweeper struct {
	repo          *audit.Repository
	retentionDays int
	cron          *cron.Cron
}

// NewSweeper creates a retention sweeper. It does nothing until Start is
// called.
func NewSweeper(repo *audit.Repository, retentionDays int) *Sweeper {
	return &Sweeper{
		repo:          repo,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the sweep. Retention of zero or less disables it.
func (s *Sweeper) Start(schedule string) error {
	if s.retentionDays <= 0 {
		log.Printf("Audit retention sweep: disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return fmt.Errorf("failed to schedule audit sweep %q: %w", schedule, err)
	}
	s.cron.Start()
	log.Printf("Audit retention sweep scheduled (%s, keeping %d days)", schedule, s.retentionDays)
	return nil
}

// Stop halts the scheduler. Safe to call when never started.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep deletes events past the retention window.
func (s *Sweeper) Sweep() {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.repo.DeleteOldEvents(cutoff)
	if err != nil {
		log.Printf("Audit retention sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Audit retention sweep removed %d events", deleted)
	}
}
