package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/janash/articlebase/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the article store at dbPath and ensures the
// schema exists. Reapplying against an already-initialized store is a no-op:
// tables and indexes are only created when missing and existing rows are never
// touched. A conflicting column definition on an existing table is an error.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Register the explicit join models so the association tables carry
	// composite primary keys instead of gorm's generated defaults.
	if err := db.SetupJoinTable(&entities.Article{}, "Authors", &entities.ArticleAuthor{}); err != nil {
		return nil, fmt.Errorf("failed to set up article_authors join table: %w", err)
	}
	if err := db.SetupJoinTable(&entities.Article{}, "Keywords", &entities.ArticleKeyword{}); err != nil {
		return nil, fmt.Errorf("failed to set up article_keywords join table: %w", err)
	}
	if err := db.SetupJoinTable(&entities.Author{}, "Articles", &entities.ArticleAuthor{}); err != nil {
		return nil, fmt.Errorf("failed to set up author articles join table: %w", err)
	}
	if err := db.SetupJoinTable(&entities.Keyword{}, "Articles", &entities.ArticleKeyword{}); err != nil {
		return nil, fmt.Errorf("failed to set up keyword articles join table: %w", err)
	}

	if err := verifySchemaCompatible(db, migratedModels()...); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(migratedModels()...)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// migratedModels lists every entity AutoMigrate manages. The join models are
// created through the Article relations and need no separate entry.
func migratedModels() []any {
	return []any{
		&entities.Article{},
		&entities.Author{},
		&entities.Keyword{},
		&entities.ImportSession{},
		&entities.AuditEvent{},
	}
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats holds row counts for every table in the store.
type Stats struct {
	Articles        int64 `json:"articles"`
	Authors         int64 `json:"authors"`
	Keywords        int64 `json:"keywords"`
	ArticleAuthors  int64 `json:"article_authors"`
	ArticleKeywords int64 `json:"article_keywords"`
	ImportSessions  int64 `json:"import_sessions"`
	AuditEvents     int64 `json:"audit_events"`
}

func (d *Database) GetStats() (Stats, error) {
	var stats Stats
	counts := []struct {
		model any
		dest  *int64
	}{
		{&entities.Article{}, &stats.Articles},
		{&entities.Author{}, &stats.Authors},
		{&entities.Keyword{}, &stats.Keywords},
		{&entities.ArticleAuthor{}, &stats.ArticleAuthors},
		{&entities.ArticleKeyword{}, &stats.ArticleKeywords},
		{&entities.ImportSession{}, &stats.ImportSessions},
		{&entities.AuditEvent{}, &stats.AuditEvents},
	}
	for _, c := range counts {
		if err := d.DB.Model(c.model).Count(c.dest).Error; err != nil {
			return Stats{}, err
		}
	}
	return stats, nil
}

func (d *Database) CreateImportSession(source string) (*entities.ImportSession, error) {
	session := &entities.ImportSession{
		Source:    source,
		Status:    entities.ImportStatusPending,
		StartedAt: time.Now(),
	}
	if err := d.DB.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (d *Database) UpdateImportSession(session *entities.ImportSession) error {
	return d.DB.Save(session).Error
}

func (d *Database) GetImportSession(id uint) (*entities.ImportSession, error) {
	var session entities.ImportSession
	err := d.DB.First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (d *Database) GetRecentImportSessions(limit int) ([]entities.ImportSession, error) {
	var sessions []entities.ImportSession
	query := d.DB.Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}
