package importers

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/janash/articlebase/internal/entities"
	"github.com/janash/articlebase/internal/services"
)

// RawAuthor identifies one contributor on a raw article record.
type RawAuthor struct {
	FirstName   string
	LastName    string
	Affiliation string
}

// RawArticle represents an article from any import source.
// Each import source implements a converter that transforms its
// native format into this common representation.
type RawArticle struct {
	DOI             string
	Title           string
	PublicationYear int
	Abstract        string
	Authors         []RawAuthor
	Keywords        []string
}

// Source provides metadata about the import source.
type Source struct {
	Name     string
	FilePath string
}

// Converter transforms source data into raw articles ready for archiving.
// Each import source implements this interface.
//
// Implementations:
//   - JSONFeedConverter (jsonfeed.go) - JSON array of article records
//   - CSVFileConverter (csvfile.go) - tabular reference-manager exports
type Converter interface {
	// Convert transforms raw data from the import source into RawArticles.
	// Returns the articles and the source metadata.
	Convert() ([]RawArticle, Source)
}

// Archiver persists articles to storage.
type Archiver interface {
	Archive(articles []entities.Article) (services.ArchiveResult, error)
}

// SessionStore records import runs for later inspection.
type SessionStore interface {
	CreateImportSession(source string) (*entities.ImportSession, error)
	UpdateImportSession(session *entities.ImportSession) error
}

// Pipeline handles the common import workflow:
// parse → convert → dedupe → archive.
//
// This eliminates duplication across import handlers by providing
// a single point for the conversion and archiving logic.
type Pipeline struct {
	archiver Archiver
	sessions SessionStore
}

// NewPipeline creates a new import pipeline with the given archiver.
// sessions may be nil, in which case import runs are not recorded.
func NewPipeline(archiver Archiver, sessions SessionStore) *Pipeline {
	return &Pipeline{archiver: archiver, sessions: sessions}
}

// Import processes articles from a converter and archives them.
// This is the main entry point for all import operations.
//
// Records with a DOI already seen earlier in the same batch are dropped
// before archiving; a feed that repeats a record is not treated as a
// constraint violation.
func (p *Pipeline) Import(converter Converter) (services.ImportResult, error) {
	raw, source := converter.Convert()

	session := p.startSession(source.Name)

	if len(raw) == 0 {
		p.finishSession(session, services.ImportResult{}, nil)
		return services.ImportResult{}, nil
	}

	articles := dedupeByDOI(rawToArticles(raw))

	archiveResult, err := p.archiver.Archive(articles)
	if err != nil {
		p.finishSession(session, services.ImportResult(archiveResult), err)
		return services.ImportResult{}, err
	}

	result := services.ImportResult(archiveResult)
	p.finishSession(session, result, nil)
	return result, nil
}

// ImportArticles directly archives pre-built entities.
// Use this when the caller already holds article entities.
func (p *Pipeline) ImportArticles(articles []entities.Article) (services.ImportResult, error) {
	if len(articles) == 0 {
		return services.ImportResult{}, nil
	}

	archiveResult, err := p.archiver.Archive(dedupeByDOI(articles))
	if err != nil {
		return services.ImportResult{}, err
	}

	return services.ImportResult(archiveResult), nil
}

func (p *Pipeline) startSession(source string) *entities.ImportSession {
	if p.sessions == nil {
		return nil
	}

	session, err := p.sessions.CreateImportSession(source)
	if err != nil {
		log.Printf("Failed to create import session for %s: %v", source, err)
		return nil
	}
	return session
}

func (p *Pipeline) finishSession(session *entities.ImportSession, result services.ImportResult, importErr error) {
	if session == nil {
		return
	}

	now := time.Now()
	session.CompletedAt = &now
	session.ArticlesProcessed = result.ArticlesProcessed
	session.ArticlesCreated = result.ArticlesCreated
	session.ArticlesFailed = result.ArticlesFailed

	if importErr != nil {
		session.Status = entities.ImportStatusFailed
		session.Errors = marshalErrors(append(result.Errors, importErr.Error()))
	} else {
		session.Status = entities.ImportStatusCompleted
		session.Errors = marshalErrors(result.Errors)
	}

	if err := p.sessions.UpdateImportSession(session); err != nil {
		log.Printf("Failed to update import session %d: %v", session.ID, err)
	}
}

func marshalErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	data, err := json.Marshal(errs)
	if err != nil {
		return ""
	}
	return string(data)
}

// rawToArticles converts raw records into entities, trimming stray
// whitespace and dropping empty keyword strings.
func rawToArticles(raw []RawArticle) []entities.Article {
	articles := make([]entities.Article, 0, len(raw))

	for _, r := range raw {
		article := entities.Article{
			DOI:             strings.TrimSpace(r.DOI),
			Title:           strings.TrimSpace(r.Title),
			PublicationYear: r.PublicationYear,
			Abstract:        strings.TrimSpace(r.Abstract),
		}

		for _, a := range r.Authors {
			article.Authors = append(article.Authors, entities.Author{
				FirstName:   strings.TrimSpace(a.FirstName),
				LastName:    strings.TrimSpace(a.LastName),
				Affiliation: strings.TrimSpace(a.Affiliation),
			})
		}

		for _, k := range r.Keywords {
			normalized := entities.NormalizeKeyword(k)
			if normalized == "" {
				continue
			}
			article.Keywords = append(article.Keywords, entities.Keyword{Keyword: normalized})
		}

		articles = append(articles, article)
	}

	return articles
}

// dedupeByDOI keeps the first occurrence of each DOI in the batch.
func dedupeByDOI(articles []entities.Article) []entities.Article {
	seen := make(map[string]bool, len(articles))
	deduped := make([]entities.Article, 0, len(articles))

	for _, article := range articles {
		if seen[article.DOI] {
			log.Printf("Skipping duplicate record for DOI %s in import batch", article.DOI)
			continue
		}
		seen[article.DOI] = true
		deduped = append(deduped, article)
	}

	return deduped
}
