package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/janash/articlebase/internal/database/audit"
	"github.com/janash/articlebase/internal/entities"
	"github.com/janash/articlebase/internal/services"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogImport records the outcome of an import run.
func (s *Service) LogImport(source string, result services.ImportResult, err error) error {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      source + "_import",
		Description: fmt.Sprintf("Imported %d of %d articles", result.ArticlesCreated, result.ArticlesProcessed),
		EntityType:  "article",
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"articles_processed": result.ArticlesProcessed,
		"articles_created":   result.ArticlesCreated,
		"articles_failed":    result.ArticlesFailed,
	}
	if len(result.Errors) > 0 {
		metadata["errors"] = result.Errors
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	} else if result.ArticlesFailed > 0 {
		event.Status = entities.AuditStatusFailed
	}

	return s.repo.LogEvent(event)
}

// LogDelete records an article deletion.
func (s *Service) LogDelete(doi string, err error) error {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      "article_delete",
		Description: "Deleted article " + doi,
		EntityType:  "article",
		EntityKey:   doi,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	return s.repo.LogEvent(event)
}

// LogCleanup records an orphan cleanup run.
func (s *Service) LogCleanup(keywordsRemoved, authorsRemoved int64, err error) error {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCleanup,
		Action:      "orphan_cleanup",
		Description: fmt.Sprintf("Removed %d orphan keywords, %d orphan authors", keywordsRemoved, authorsRemoved),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	return s.repo.LogEvent(event)
}

// LogReset records a full store reset.
func (s *Service) LogReset(dbPath string) error {
	return s.repo.LogEvent(&entities.AuditEvent{
		EventType:   entities.AuditEventReset,
		Action:      "store_reset",
		Description: "Recreated article store at " + dbPath,
		Status:      entities.AuditStatusSuccess,
	})
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetEventsForArticle retrieves the audit history of one article.
func (s *Service) GetEventsForArticle(doi string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity("article", doi)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
