package http

import (
	"github.com/janash/articlebase/internal/audit"
	"github.com/janash/articlebase/internal/database"
	"github.com/janash/articlebase/internal/demo"
	"github.com/janash/articlebase/internal/importers"
	"github.com/janash/articlebase/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces the long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Auditor  *audit.Auditor

	// Article operations
	ArticleStore ArticleStore
	DeleteStore  DeleteStore

	// Keyword and author operations
	KeywordStore KeywordStore
	AuthorStore  AuthorStore

	// Import pipeline dependencies
	Archiver importers.Archiver
	Sessions importers.SessionStore

	// Audit trail (optional)
	AuditService *audit.Service

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Demo mode middleware (optional)
	DemoMiddleware *demo.Middleware

	// Audit event retention, used by manually triggered cleanup tasks
	AuditRetentionDays int

	// Application info
	Version string
}
