// Package keywords provides database operations for keyword management.
//
// Keywords are stored in normalized form: lowercased with surrounding
// whitespace removed. Every lookup normalizes its input the same way, so
// "AI", "ai" and " AI " all resolve to the same row.
//
// This package implements the KeywordStore interface defined in
// internal/http/keywords.go.
//
// # Usage
//
//	repo := keywords.NewRepository(db)
//	keyword, err := repo.GetOrCreate("Machine Learning")
//	err = repo.Link("10.1000/example.doi", keyword.ID)
package keywords

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janash/articlebase/internal/entities"
)

// Repository handles all keyword database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new keywords repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a new keyword, storing the normalized form.
func (r *Repository) Create(name string) (*entities.Keyword, error) {
	keyword := &entities.Keyword{
		Keyword: entities.NormalizeKeyword(name),
	}
	if err := r.db.Create(keyword).Error; err != nil {
		return nil, err
	}
	return keyword, nil
}

// GetOrCreate retrieves or creates a keyword. The input is normalized before
// lookup, so variants differing only in case or surrounding whitespace map to
// a single row.
func (r *Repository) GetOrCreate(name string) (*entities.Keyword, error) {
	normalized := entities.NormalizeKeyword(name)
	var keyword entities.Keyword
	err := r.db.Where("keyword = ?", normalized).First(&keyword).Error
	if err == gorm.ErrRecordNotFound {
		return r.Create(normalized)
	}
	if err != nil {
		return nil, err
	}
	return &keyword, nil
}

// GetByName retrieves a keyword by its normalized form.
func (r *Repository) GetByName(name string) (*entities.Keyword, error) {
	var keyword entities.Keyword
	err := r.db.Where("keyword = ?", entities.NormalizeKeyword(name)).First(&keyword).Error
	if err != nil {
		return nil, err
	}
	return &keyword, nil
}

// GetByID retrieves a keyword by ID.
func (r *Repository) GetByID(id uint) (*entities.Keyword, error) {
	var keyword entities.Keyword
	err := r.db.First(&keyword, id).Error
	if err != nil {
		return nil, err
	}
	return &keyword, nil
}

// GetAll retrieves all keywords ordered alphabetically.
func (r *Repository) GetAll() ([]entities.Keyword, error) {
	var kws []entities.Keyword
	err := r.db.Order("keyword ASC").Find(&kws).Error
	return kws, err
}

// Search retrieves keywords whose normalized form contains the query as a
// substring.
func (r *Repository) Search(query string) ([]entities.Keyword, error) {
	var kws []entities.Keyword
	searchPattern := "%" + entities.NormalizeKeyword(query) + "%"
	err := r.db.Where("keyword LIKE ?", searchPattern).Order("keyword ASC").Find(&kws).Error
	return kws, err
}

// Link associates a keyword with an article. Linking an already-linked pair
// is a no-op rather than an error, so repeated imports of the same feed do
// not fail on their own associations.
func (r *Repository) Link(articleDOI string, keywordID uint) error {
	link := entities.ArticleKeyword{
		ArticleDOI: articleDOI,
		KeywordID:  keywordID,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

// Unlink removes the association between a keyword and an article.
func (r *Repository) Unlink(articleDOI string, keywordID uint) error {
	return r.db.
		Where("article_doi = ? AND keyword_id = ?", articleDOI, keywordID).
		Delete(&entities.ArticleKeyword{}).Error
}

// GetArticles retrieves the articles associated with a keyword.
func (r *Repository) GetArticles(keywordID uint) ([]entities.Article, error) {
	var keyword entities.Keyword
	if err := r.db.First(&keyword, keywordID).Error; err != nil {
		return nil, err
	}

	var articles []entities.Article
	err := r.db.
		Preload("Authors").
		Preload("Keywords").
		Where("articles.doi IN (SELECT article_doi FROM article_keywords WHERE keyword_id = ?)", keywordID).
		Order("articles.created_at DESC").
		Find(&articles).Error
	return articles, err
}

// Usage pairs a keyword with the number of articles carrying it.
type Usage struct {
	Keyword      string `json:"keyword"`
	ArticleCount int64  `json:"article_count"`
}

// GetUsage returns keywords with their article counts, most used first.
// A limit of 0 returns all keywords.
func (r *Repository) GetUsage(limit int) ([]Usage, error) {
	var usage []Usage
	query := r.db.
		Table("keywords").
		Select("keywords.keyword AS keyword, COUNT(article_keywords.article_doi) AS article_count").
		Joins("LEFT JOIN article_keywords ON article_keywords.keyword_id = keywords.id").
		Group("keywords.id").
		Order("article_count DESC, keywords.keyword ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Scan(&usage).Error
	return usage, err
}

// IsOrphan checks if a keyword has no associated articles.
func (r *Repository) IsOrphan(keywordID uint) (bool, error) {
	var count int64
	if err := r.db.Table("article_keywords").Where("keyword_id = ?", keywordID).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// Delete deletes a keyword.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Keyword{}, id).Error
}

// DeleteIfOrphan deletes a keyword if it has no associations.
func (r *Repository) DeleteIfOrphan(keywordID uint) error {
	orphan, err := r.IsOrphan(keywordID)
	if err != nil {
		return err
	}
	if orphan {
		return r.Delete(keywordID)
	}
	return nil
}

// DeleteOrphans removes all keywords that no article references.
func (r *Repository) DeleteOrphans() (int64, error) {
	result := r.db.Exec(`
		DELETE FROM keywords
		WHERE id NOT IN (SELECT keyword_id FROM article_keywords)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
