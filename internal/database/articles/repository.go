// Package articles provides database operations for the article archive.
//
// This package implements the ArticleReader and ArticleArchiver interfaces
// defined in internal/services/interfaces.go.
//
// # Interface Implementation
//
//	var _ services.ArticleReader = (*Repository)(nil)
//	var _ services.ArticleArchiver = (*Repository)(nil)
//
// # Usage
//
//	repo := articles.NewRepository(db, authorsRepo, keywordsRepo)
//	result, err := repo.Archive(batch)
package articles

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/janash/articlebase/internal/entities"
	"github.com/janash/articlebase/internal/services"
)

// AuthorLinker is the subset of the authors repository Archive depends on.
type AuthorLinker interface {
	GetOrCreate(firstName, lastName, affiliation string) (*entities.Author, error)
	Link(articleDOI string, authorID uint) error
}

// KeywordLinker is the subset of the keywords repository Archive depends on.
type KeywordLinker interface {
	GetOrCreate(name string) (*entities.Keyword, error)
	Link(articleDOI string, keywordID uint) error
}

// Repository handles all article database operations.
type Repository struct {
	db       *gorm.DB
	authors  AuthorLinker
	keywords KeywordLinker
}

// NewRepository creates a new articles repository.
func NewRepository(db *gorm.DB, authors AuthorLinker, keywords KeywordLinker) *Repository {
	return &Repository{
		db:       db,
		authors:  authors,
		keywords: keywords,
	}
}

// Create inserts the article row alone. Authors and keywords attached to the
// struct are not written; associations go through Archive or the Link methods
// of the author and keyword repositories.
func (r *Repository) Create(article *entities.Article) error {
	return r.db.Omit("Authors", "Keywords").Create(article).Error
}

// Exists reports whether an article with the given DOI is stored.
func (r *Repository) Exists(doi string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Article{}).Where("doi = ?", doi).Count(&count).Error
	return count > 0, err
}

// GetByDOI retrieves an article with its authors and keywords.
func (r *Repository) GetByDOI(doi string) (*entities.Article, error) {
	var article entities.Article
	err := r.db.
		Preload("Authors").
		Preload("Keywords").
		Where("doi = ?", doi).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetAll retrieves articles with their associations, newest first.
// A limit of 0 returns all articles.
func (r *Repository) GetAll(limit, offset int) ([]entities.Article, error) {
	var list []entities.Article
	query := r.db.
		Preload("Authors").
		Preload("Keywords").
		Order("created_at DESC, doi ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&list).Error
	return list, err
}

// Count returns the number of stored articles.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Article{}).Count(&count).Error
	return count, err
}

// SearchByTitle searches articles by title (case-insensitive partial match).
func (r *Repository) SearchByTitle(query string) ([]entities.Article, error) {
	var list []entities.Article
	searchPattern := "%" + query + "%"
	err := r.db.
		Preload("Authors").
		Preload("Keywords").
		Where("LOWER(title) LIKE LOWER(?)", searchPattern).
		Order("created_at DESC, doi ASC").
		Find(&list).Error
	return list, err
}

// SearchByKeyword retrieves articles carrying at least one keyword whose
// normalized form contains the given substring. An article tagged with
// several matching keywords appears once.
func (r *Repository) SearchByKeyword(substring string) ([]entities.Article, error) {
	var list []entities.Article
	searchPattern := "%" + entities.NormalizeKeyword(substring) + "%"
	err := r.db.
		Preload("Authors").
		Preload("Keywords").
		Where(`articles.doi IN (
			SELECT article_keywords.article_doi FROM article_keywords
			JOIN keywords ON keywords.id = article_keywords.keyword_id
			WHERE keywords.keyword LIKE ?
		)`, searchPattern).
		Order("created_at DESC, doi ASC").
		Find(&list).Error
	return list, err
}

// ForEachByKeyword streams the articles matching a keyword substring to fn in
// batches instead of loading the whole result set. Iteration stops at the
// first error fn returns. Each batch is a separate query, so the walk holds
// no cursor open between calls.
func (r *Repository) ForEachByKeyword(substring string, batchSize int, fn func(entities.Article) error) error {
	if batchSize <= 0 {
		batchSize = 100
	}
	searchPattern := "%" + entities.NormalizeKeyword(substring) + "%"

	var batch []entities.Article
	result := r.db.
		Preload("Authors").
		Preload("Keywords").
		Where(`articles.doi IN (
			SELECT article_keywords.article_doi FROM article_keywords
			JOIN keywords ON keywords.id = article_keywords.keyword_id
			WHERE keywords.keyword LIKE ?
		)`, searchPattern).
		FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
			for _, article := range batch {
				if err := fn(article); err != nil {
					return err
				}
			}
			return nil
		})
	return result.Error
}

// Archive stores a batch of articles with their authors and keywords.
//
// Each article is processed independently: the article row is inserted first,
// then every author and keyword is found or created and linked through the
// association tables. Every insert commits as it happens, so a failure
// partway through one article leaves its earlier rows in place and never
// affects the other articles in the batch. A duplicate DOI surfaces as the
// engine's uniqueness violation and fails only that article.
func (r *Repository) Archive(batch []entities.Article) (services.ArchiveResult, error) {
	result := services.ArchiveResult{}
	for i := range batch {
		article := &batch[i]
		result.ArticlesProcessed++
		if err := r.archiveOne(article); err != nil {
			result.ArticlesFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("article %s: %v", article.DOI, err))
			log.Printf("Failed to archive article %s: %v", article.DOI, err)
			continue
		}
		result.ArticlesCreated++
	}
	return result, nil
}

func (r *Repository) archiveOne(article *entities.Article) error {
	if err := r.Create(article); err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	for _, a := range article.Authors {
		author, err := r.authors.GetOrCreate(a.FirstName, a.LastName, a.Affiliation)
		if err != nil {
			return fmt.Errorf("failed to resolve author %s %s: %w", a.FirstName, a.LastName, err)
		}
		if err := r.authors.Link(article.DOI, author.ID); err != nil {
			return fmt.Errorf("failed to link author %s %s: %w", a.FirstName, a.LastName, err)
		}
	}

	for _, k := range article.Keywords {
		keyword, err := r.keywords.GetOrCreate(k.Keyword)
		if err != nil {
			return fmt.Errorf("failed to resolve keyword %q: %w", k.Keyword, err)
		}
		if err := r.keywords.Link(article.DOI, keyword.ID); err != nil {
			return fmt.Errorf("failed to link keyword %q: %w", k.Keyword, err)
		}
	}

	return nil
}

// Delete removes an article and its association rows.
func (r *Repository) Delete(doi string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_authors WHERE article_doi = ?", doi).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM article_keywords WHERE article_doi = ?", doi).Error; err != nil {
			return err
		}
		result := tx.Where("doi = ?", doi).Delete(&entities.Article{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
