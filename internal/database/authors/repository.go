// Package authors provides database operations for author management.
//
// An author's identity is the full (first name, last name, affiliation)
// triple. Two researchers sharing a name at different institutions are
// distinct rows; the same name at the same institution is deduplicated.
//
// This package implements the AuthorStore interface defined in
// internal/http/authors.go.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetOrCreate("Grace", "Hopper", "Yale University")
//	err = repo.Link("10.1000/example.doi", author.ID)
package authors

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janash/articlebase/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a new author.
func (r *Repository) Create(firstName, lastName, affiliation string) (*entities.Author, error) {
	author := &entities.Author{
		FirstName:   firstName,
		LastName:    lastName,
		Affiliation: affiliation,
	}
	if err := r.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// GetOrCreate retrieves or creates an author by the exact identity triple.
func (r *Repository) GetOrCreate(firstName, lastName, affiliation string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.
		Where("first_name = ? AND last_name = ? AND affiliation = ?", firstName, lastName, affiliation).
		First(&author).Error
	if err == gorm.ErrRecordNotFound {
		return r.Create(firstName, lastName, affiliation)
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAll retrieves all authors ordered by last then first name.
func (r *Repository) GetAll() ([]entities.Author, error) {
	var list []entities.Author
	err := r.db.Order("last_name ASC, first_name ASC").Find(&list).Error
	return list, err
}

// Search retrieves authors whose name or affiliation contains the query
// (case-insensitive partial match).
func (r *Repository) Search(query string) ([]entities.Author, error) {
	var list []entities.Author
	searchPattern := "%" + query + "%"
	err := r.db.
		Where(
			"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(affiliation) LIKE LOWER(?)",
			searchPattern, searchPattern, searchPattern,
		).
		Order("last_name ASC, first_name ASC").
		Find(&list).Error
	return list, err
}

// Link associates an author with an article. Linking an already-linked pair
// is a no-op rather than an error.
func (r *Repository) Link(articleDOI string, authorID uint) error {
	link := entities.ArticleAuthor{
		ArticleDOI: articleDOI,
		AuthorID:   authorID,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

// Unlink removes the association between an author and an article.
func (r *Repository) Unlink(articleDOI string, authorID uint) error {
	return r.db.
		Where("article_doi = ? AND author_id = ?", articleDOI, authorID).
		Delete(&entities.ArticleAuthor{}).Error
}

// GetArticles retrieves the articles an author contributed to.
func (r *Repository) GetArticles(authorID uint) ([]entities.Article, error) {
	var author entities.Author
	if err := r.db.First(&author, authorID).Error; err != nil {
		return nil, err
	}

	var articles []entities.Article
	err := r.db.
		Preload("Authors").
		Preload("Keywords").
		Where("articles.doi IN (SELECT article_doi FROM article_authors WHERE author_id = ?)", authorID).
		Order("articles.created_at DESC").
		Find(&articles).Error
	return articles, err
}

// IsOrphan checks if an author has no associated articles.
func (r *Repository) IsOrphan(authorID uint) (bool, error) {
	var count int64
	if err := r.db.Table("article_authors").Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// Delete deletes an author.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Author{}, id).Error
}

// DeleteIfOrphan deletes an author if they have no associations.
func (r *Repository) DeleteIfOrphan(authorID uint) error {
	orphan, err := r.IsOrphan(authorID)
	if err != nil {
		return err
	}
	if orphan {
		return r.Delete(authorID)
	}
	return nil
}

// DeleteOrphans removes all authors that no article references.
func (r *Repository) DeleteOrphans() (int64, error) {
	result := r.db.Exec(`
		DELETE FROM authors
		WHERE id NOT IN (SELECT author_id FROM article_authors)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
