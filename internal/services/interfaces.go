package services

import "github.com/janash/articlebase/internal/entities"

// ArticleReader provides read-only access to stored articles.
// Use this interface when you only need to query the archive.
type ArticleReader interface {
	GetAll(limit, offset int) ([]entities.Article, error)
	GetByDOI(doi string) (*entities.Article, error)
	SearchByTitle(query string) ([]entities.Article, error)
	SearchByKeyword(substring string) ([]entities.Article, error)
}

// ArticleArchiver persists articles together with their authors and keywords.
// Use this interface when you need to write to the archive.
type ArticleArchiver interface {
	Archive(articles []entities.Article) (ArchiveResult, error)
}

// ArchiveResult contains the outcome of an archive operation.
type ArchiveResult struct {
	ArticlesProcessed int
	ArticlesCreated   int
	ArticlesFailed    int
	Errors            []string
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	ArticlesProcessed int
	ArticlesCreated   int
	ArticlesFailed    int
	Errors            []string
}
