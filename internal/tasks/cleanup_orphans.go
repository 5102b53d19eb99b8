package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanCleaner provides the ability to delete rows no article references.
// Both the keywords and authors repositories satisfy it.
type OrphanCleaner interface {
	DeleteOrphans() (int64, error)
}

// CleanupRecorder receives the outcome of a cleanup run for the audit trail.
type CleanupRecorder interface {
	LogCleanup(keywordsRemoved, authorsRemoved int64, err error) error
}

// CleanupOrphansTask removes keywords and authors that lost their last
// article, either to a delete or to an import that failed partway.
type CleanupOrphansTask struct{}

// Config returns the queue configuration for cleanup tasks.
func (t CleanupOrphansTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphans",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphansProcessor creates a processor function for CleanupOrphansTask.
func CleanupOrphansProcessor(keywords, authors OrphanCleaner, recorder CleanupRecorder) backlite.QueueProcessor[CleanupOrphansTask] {
	return func(ctx context.Context, task CleanupOrphansTask) error {
		if keywords == nil || authors == nil {
			return fmt.Errorf("orphan cleaners not configured")
		}

		keywordsRemoved, err := keywords.DeleteOrphans()
		if err != nil {
			recordCleanup(recorder, keywordsRemoved, 0, err)
			return fmt.Errorf("cleanup orphan keywords: %w", err)
		}

		authorsRemoved, err := authors.DeleteOrphans()
		if err != nil {
			recordCleanup(recorder, keywordsRemoved, authorsRemoved, err)
			return fmt.Errorf("cleanup orphan authors: %w", err)
		}

		recordCleanup(recorder, keywordsRemoved, authorsRemoved, nil)
		log.Printf("[TASK] Cleaned up %d orphan keywords and %d orphan authors", keywordsRemoved, authorsRemoved)
		return nil
	}
}

func recordCleanup(recorder CleanupRecorder, keywordsRemoved, authorsRemoved int64, cause error) {
	if recorder == nil {
		return
	}
	if err := recorder.LogCleanup(keywordsRemoved, authorsRemoved, cause); err != nil {
		log.Printf("[TASK] Failed to record cleanup audit event: %v", err)
	}
}

// NewCleanupOrphansQueue creates a backlite queue for orphan cleanup tasks.
func NewCleanupOrphansQueue(keywords, authors OrphanCleaner, recorder CleanupRecorder) backlite.Queue {
	return backlite.NewQueue(CleanupOrphansProcessor(keywords, authors, recorder))
}
