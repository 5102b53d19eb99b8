package audit

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/janash/articlebase/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_audit_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_LogEvent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      "json_feed_import",
		Description: "Imported 3 articles",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents_Pagination(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		err := repo.LogEvent(&entities.AuditEvent{
			EventType: entities.AuditEventImport,
			Action:    "json_feed_import",
			Status:    entities.AuditStatusSuccess,
		})
		require.NoError(t, err)
	}

	events, total, err := repo.GetEvents(2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, events, 2)

	events, total, err = repo.GetEvents(10, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, events, 1)
}

func TestRepository_GetEventsByType(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventImport,
		Action:    "json_feed_import",
	}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "article_delete",
	}))

	events, total, err := repo.GetEventsByType(entities.AuditEventDelete, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "article_delete", events[0].Action)
}

func TestRepository_GetEventsForEntity(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	doi := "10.1000/audit.1"
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType:  entities.AuditEventImport,
		EntityType: "article",
		EntityKey:  doi,
	}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType:  entities.AuditEventDelete,
		EntityType: "article",
		EntityKey:  doi,
	}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType:  entities.AuditEventImport,
		EntityType: "article",
		EntityKey:  "10.1000/other",
	}))

	events, err := repo.GetEventsForEntity("article", doi)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	old := &entities.AuditEvent{
		EventType: entities.AuditEventCleanup,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, repo.LogEvent(old))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventCleanup,
	}))

	deleted, err := repo.DeleteOldEvents(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
