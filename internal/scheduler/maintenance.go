package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/janash/articlebase/internal/tasks"
)

// MaintenanceScheduler enqueues periodic maintenance tasks (orphan cleanup,
// audit log retention) on a cron schedule. The actual work happens in the
// task queue workers; the scheduler only submits tasks.
type MaintenanceScheduler struct {
	client             *tasks.Client
	schedule           string
	enabled            bool
	auditRetentionDays int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a scheduler that submits cleanup tasks to
// the given queue client. schedule is a standard 5-field cron expression.
func NewMaintenanceScheduler(client *tasks.Client, schedule string, enabled bool, auditRetentionDays int) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		client:             client,
		schedule:           schedule,
		enabled:            enabled,
		auditRetentionDays: auditRetentionDays,
		cron: cron.New(cron.WithParser(cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
		))),
	}
}

// Start begins the scheduled maintenance runs. It is a no-op when the
// scheduler is disabled in configuration.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		log.Println("[SCHEDULER] Maintenance scheduler is disabled")
		return nil
	}

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runMaintenance)
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}
	s.entryID = entryID

	ctx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel

	s.cron.Start()
	s.isRunning = true

	log.Printf("[SCHEDULER] Maintenance scheduler started with schedule: %s", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the scheduler and waits for any in-flight cron invocation to
// return.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	log.Println("[SCHEDULER] Maintenance scheduler stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// GetNextRunTime returns the time of the next scheduled maintenance run, or
// nil when the scheduler is not running.
func (s *MaintenanceScheduler) GetNextRunTime() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			next := entry.Next
			return &next
		}
	}
	return nil
}

// RunNow submits the maintenance tasks immediately, outside the schedule.
func (s *MaintenanceScheduler) RunNow() {
	log.Println("[SCHEDULER] Triggering immediate maintenance run")
	go s.runMaintenance()
}

func (s *MaintenanceScheduler) runMaintenance() {
	log.Println("[SCHEDULER] Submitting maintenance tasks")

	if _, err := s.client.Add(tasks.CleanupOrphansTask{}).Save(); err != nil {
		log.Printf("[SCHEDULER] Failed to submit orphan cleanup task: %v", err)
	}

	if _, err := s.client.Add(tasks.CleanupAuditEventsTask{RetentionDays: s.auditRetentionDays}).Save(); err != nil {
		log.Printf("[SCHEDULER] Failed to submit audit cleanup task: %v", err)
	}
}
