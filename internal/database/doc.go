// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, schema verification
//	├── articles/        # Article CRUD, archiving and keyword traversal
//	├── authors/         # Author find-or-create and associations
//	├── keywords/        # Keyword normalization and associations
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./articlebase.db")
//
//	// Create domain-specific repositories
//	keywordsRepo := keywords.NewRepository(db.DB)
//	authorsRepo := authors.NewRepository(db.DB)
//	articlesRepo := articles.NewRepository(db.DB, authorsRepo, keywordsRepo)
//
//	// Use repositories
//	article, err := articlesRepo.GetByDOI("10.1000/example.doi")
//	matches, err := articlesRepo.SearchByKeyword("drug")
//
// # Interface Implementations
//
// Each sub-package implements specific interfaces:
//
//   - articles.Repository: implements services.ArticleReader and services.ArticleArchiver
//   - authors.Repository: implements http.AuthorStore
//   - keywords.Repository: implements http.KeywordStore
//
// # Schema Initialization
//
// NewDatabase is safe to call against an existing store: tables and indexes
// are created only when missing and existing rows are never modified. A table
// whose columns conflict with the current models fails initialization with an
// explicit error rather than being silently rewritten.
//
// # Adding a New Domain
//
// To add a new domain (e.g., journals):
//
//  1. Create a new sub-package: internal/database/journals/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
