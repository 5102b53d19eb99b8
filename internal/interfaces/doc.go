// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// The application uses several categories of interfaces:
//
// ## Data Access Interfaces
//
//   - ArticleReader: Read-only access to articles (internal/services/interfaces.go)
//   - ArticleArchiver: Persist articles to storage (internal/services/interfaces.go)
//   - ArticleStore: Listing, search and lookup for controllers (internal/http/articles.go)
//   - DeleteStore: Article deletion (internal/http/articles.go)
//   - KeywordStore: Keyword listing and usage counts (internal/http/keywords.go)
//   - AuthorStore: Author listing and traversal (internal/http/authors.go)
//   - SessionStore: Recent import session listing (internal/http/imports.go)
//
// ## Association Resolution Interfaces
//
//   - AuthorLinker: Resolve and link contributors (internal/database/articles/repository.go)
//   - KeywordLinker: Resolve and link subject keywords (internal/database/articles/repository.go)
//
// ## Task Queue Interfaces
//
//   - OrphanCleaner: Remove unreferenced rows (internal/tasks/cleanup_orphans.go)
//   - CleanupRecorder: Audit trail for cleanup runs (internal/tasks/cleanup_orphans.go)
//   - AuditEventCleaner: Retention-based event pruning (internal/tasks/cleanup_audit.go)
//
// # Adding a New Import Source
//
// To add support for a new article feed format:
//
//  1. Create converter in internal/importers/
//
//     type BibEntry struct {
//         DOI   string `json:"DOI"`
//         Title string `json:"title"`
//     }
//
//     type BibConverter struct {
//         Entries []BibEntry
//     }
//
//     func (c *BibConverter) Convert() ([]importers.RawArticle, importers.Source) {
//         // Transform to common format
//     }
//
//     var _ importers.Converter = (*BibConverter)(nil)
//
//  2. Create HTTP handler in internal/http/
//
//     type BibImportController struct {
//         pipeline *importers.Pipeline
//     }
//
//     func (c *BibImportController) Import(ctx *gin.Context) {
//         converter := importers.NewBibConverter(req.Entries)
//         result, err := c.pipeline.Import(converter)
//     }
//
//  3. Register route in router.go
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., journals):
//
//  1. Create sub-package: internal/database/journals/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement interface methods
//
//  4. Add compile-time check:
//
//     var _ JournalStore = (*Repository)(nil)
//
// # Adding a New Maintenance Task
//
// To add a new background task to the queue:
//
//  1. Define the task payload in internal/tasks/ and give it a queue
//     configuration:
//
//     type RebuildStatsTask struct{}
//
//     func (t RebuildStatsTask) Config() backlite.QueueConfig
//
//  2. Create the queue with its processor and register it on the client
//     in entrypoint.go:
//
//     client.Register(tasks.NewRebuildStatsQueue(statsStore))
//
//  3. Expose it through the tasks controller if it should be manually
//     triggerable (internal/http/tasks.go)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
