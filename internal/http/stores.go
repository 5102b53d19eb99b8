package http

import "github.com/janash/articlebase/internal/entities"

// This file consolidates the shared store interface definitions used by HTTP
// controllers. Each controller defines its own interface (Interface
// Segregation Principle); the shared pieces live here.

// --- Entity Retrieval (shared across multiple controllers) ---

// ArticleGetter provides read access to a single article with its
// authors and keywords preloaded.
type ArticleGetter interface {
	GetByDOI(doi string) (*entities.Article, error)
}

// --- Interface Documentation ---
//
// Controller-specific interfaces (defined in their respective files):
//
// ArticleStore (articles.go):
//   - Paginated listing with total count
//   - Title and keyword substring search
//   - Single-article lookup by DOI
//
// DeleteStore (articles.go):
//   - Article removal together with its association rows
//
// KeywordStore (keywords.go):
//   - Keyword listing, substring search, per-keyword usage counts
//
// AuthorStore (authors.go):
//   - Author listing, substring search, articles-for-author traversal
//
// SessionStore (imports.go):
//   - Recent import session listing
//
// These interfaces follow the Interface Segregation Principle:
// each controller only depends on the methods it actually uses.
