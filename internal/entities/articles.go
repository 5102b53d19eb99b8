package entities

import (
	"strings"
	"time"
)

type ImportStatus string

const (
	ImportStatusPending   ImportStatus = "pending"
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// Article is a single published paper, keyed by its DOI.
type Article struct {
	DOI             string `gorm:"primaryKey;size:255" json:"doi"`
	Title           string `gorm:"index;size:512" json:"title"`
	PublicationYear int    `json:"publication_year,omitempty"`
	Abstract        string `gorm:"type:text" json:"abstract,omitempty"`

	// Relationships via explicit join tables (see ArticleAuthor, ArticleKeyword)
	Authors  []Author  `gorm:"many2many:article_authors;foreignKey:DOI;joinForeignKey:ArticleDOI;references:ID;joinReferences:AuthorID" json:"authors,omitempty"`
	Keywords []Keyword `gorm:"many2many:article_keywords;foreignKey:DOI;joinForeignKey:ArticleDOI;references:ID;joinReferences:KeywordID" json:"keywords,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Author identity is the (first name, last name, affiliation) triple.
// Two people with the same name at different affiliations are distinct rows.
type Author struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FirstName   string `gorm:"uniqueIndex:idx_author_identity;size:100" json:"first_name"`
	LastName    string `gorm:"uniqueIndex:idx_author_identity;size:100" json:"last_name"`
	Affiliation string `gorm:"uniqueIndex:idx_author_identity;size:256" json:"affiliation,omitempty"`

	Articles []Article `gorm:"many2many:article_authors;foreignKey:ID;joinForeignKey:AuthorID;references:DOI;joinReferences:ArticleDOI" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Keyword values are stored lower-cased; NormalizeKeyword is applied on every
// write and lookup path so "AI" and "ai" resolve to the same row.
type Keyword struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Keyword string `gorm:"uniqueIndex;size:100" json:"keyword"`

	Articles []Article `gorm:"many2many:article_keywords;foreignKey:ID;joinForeignKey:KeywordID;references:DOI;joinReferences:ArticleDOI" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// ArticleAuthor links an article to one of its authors. The composite primary
// key makes duplicate links impossible at the engine level.
type ArticleAuthor struct {
	ArticleDOI string `gorm:"primaryKey;size:255" json:"article_doi"`
	AuthorID   uint   `gorm:"primaryKey" json:"author_id"`
}

// ArticleKeyword links an article to one of its keywords.
type ArticleKeyword struct {
	ArticleDOI string `gorm:"primaryKey;size:255" json:"article_doi"`
	KeywordID  uint   `gorm:"primaryKey" json:"keyword_id"`
}

// ImportSession records a single feed import run.
type ImportSession struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	Source            string       `gorm:"index;size:50" json:"source"`
	Status            ImportStatus `gorm:"size:20;default:'pending'" json:"status"`
	ArticlesProcessed int          `json:"articles_processed"`
	ArticlesCreated   int          `json:"articles_created"`
	ArticlesFailed    int          `json:"articles_failed"`
	Errors            string       `gorm:"type:text" json:"errors,omitempty"` // JSON array of errors
	StartedAt         time.Time    `json:"started_at"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}

func (Author) TableName() string {
	return "authors"
}

func (Keyword) TableName() string {
	return "keywords"
}

func (ArticleAuthor) TableName() string {
	return "article_authors"
}

func (ArticleKeyword) TableName() string {
	return "article_keywords"
}

func (ImportSession) TableName() string {
	return "import_sessions"
}

// NormalizeKeyword lower-cases and trims a keyword before storage or lookup.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
