package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/janash/articlebase/internal/audit"
	"github.com/janash/articlebase/internal/database"
	"github.com/janash/articlebase/internal/database/articles"
	"github.com/janash/articlebase/internal/database/authors"
	"github.com/janash/articlebase/internal/database/keywords"
	"github.com/janash/articlebase/internal/http"
	"github.com/janash/articlebase/internal/importers"
	"github.com/janash/articlebase/internal/services"
	"github.com/janash/articlebase/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// ArticleStore implementations
var _ http.ArticleStore = (*articles.Repository)(nil)
var _ http.DeleteStore = (*articles.Repository)(nil)
var _ http.ArticleGetter = (*articles.Repository)(nil)

// KeywordStore implementations
var _ http.KeywordStore = (*keywords.Repository)(nil)

// AuthorStore implementations
var _ http.AuthorStore = (*authors.Repository)(nil)

// SessionStore implementations
var _ http.SessionStore = (*database.Database)(nil)

// ArticleReader/ArticleArchiver implementations
var _ services.ArticleReader = (*articles.Repository)(nil)
var _ services.ArticleArchiver = (*articles.Repository)(nil)

// =============================================================================
// Association Resolution
// =============================================================================

// AuthorLinker/KeywordLinker implementations, used by the articles
// repository to resolve shared contributors and subjects during archiving
var _ articles.AuthorLinker = (*authors.Repository)(nil)
var _ articles.KeywordLinker = (*keywords.Repository)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

// Converter implementations
var _ importers.Converter = (*importers.JSONFeedConverter)(nil)
var _ importers.Converter = (*importers.CSVFileConverter)(nil)

// Archiver implementations
var _ importers.Archiver = (*articles.Repository)(nil)

// SessionStore implementations
var _ importers.SessionStore = (*database.Database)(nil)

// =============================================================================
// Task Queue
// =============================================================================

// OrphanCleaner implementations
var _ tasks.OrphanCleaner = (*keywords.Repository)(nil)
var _ tasks.OrphanCleaner = (*authors.Repository)(nil)

// CleanupRecorder/AuditEventCleaner implementations
var _ tasks.CleanupRecorder = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
