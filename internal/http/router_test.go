package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janash/articlebase/internal/database"
	"github.com/janash/articlebase/internal/database/articles"
	"github.com/janash/articlebase/internal/database/authors"
	"github.com/janash/articlebase/internal/database/keywords"
)

func setupRouter(t *testing.T) (*gin.Engine, *articles.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_router_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authorsRepo := authors.NewRepository(db.DB)
	keywordsRepo := keywords.NewRepository(db.DB)
	articlesRepo := articles.NewRepository(db.DB, authorsRepo, keywordsRepo)

	router := NewRouter(RouterConfig{
		Database:     db,
		ArticleStore: articlesRepo,
		DeleteStore:  articlesRepo,
		KeywordStore: keywordsRepo,
		AuthorStore:  authorsRepo,
		Archiver:     articlesRepo,
		Sessions:     db,
		Version:      "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, articlesRepo, cleanup
}

func TestRouter_RegistersAllRoutes(t *testing.T) {
	router, repo, cleanup := setupRouter(t)
	defer cleanup()

	archiveSampleArticles(t, repo)

	requests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/ping", http.StatusOK},
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/articles", http.StatusOK},
		{"GET", "/api/articles/search?q=machine", http.StatusOK},
		{"GET", "/api/articles/by-keyword?q=drug", http.StatusOK},
		{"GET", "/api/articles/by-doi/10.1021/acs.jcim.9b00725", http.StatusOK},
		{"GET", "/api/authors", http.StatusOK},
		{"GET", "/api/keywords", http.StatusOK},
		{"GET", "/api/keywords/usage", http.StatusOK},
		{"GET", "/api/imports", http.StatusOK},
		{"GET", "/api/stats", http.StatusOK},
		{"DELETE", "/api/articles/by-doi/10.1000/databases.1", http.StatusOK},
	}

	for _, tt := range requests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRouter_StatsReflectArchive(t *testing.T) {
	router, repo, cleanup := setupRouter(t)
	defer cleanup()

	archiveSampleArticles(t, repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var stats database.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.Articles)
	assert.Equal(t, int64(1), stats.Authors)
	assert.Equal(t, int64(4), stats.Keywords)
	assert.Equal(t, int64(4), stats.ArticleKeywords)
}

func TestRouter_OptionalControllersAbsent(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	// Audit and task endpoints are only mounted when their dependencies
	// are configured.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/audit", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/tasks/types", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
