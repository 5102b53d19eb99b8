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
	"github.com/janash/articlebase/internal/entities"
)

func setupKeywordsTestDB(t *testing.T) (*keywords.Repository, *articles.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_keywords_api_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authorsRepo := authors.NewRepository(db.DB)
	keywordsRepo := keywords.NewRepository(db.DB)
	articlesRepo := articles.NewRepository(db.DB, authorsRepo, keywordsRepo)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return keywordsRepo, articlesRepo, cleanup
}

func TestKeywordsController_GetKeywords(t *testing.T) {
	t.Run("lists all keywords", func(t *testing.T) {
		keywordsRepo, articlesRepo, cleanup := setupKeywordsTestDB(t)
		defer cleanup()

		archiveSampleArticles(t, articlesRepo)

		controller := NewKeywordsController(keywordsRepo)
		router := gin.New()
		router.GET("/api/keywords", controller.GetKeywords)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/keywords", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(4), response["count"])
	})

	t.Run("filters by substring", func(t *testing.T) {
		keywordsRepo, articlesRepo, cleanup := setupKeywordsTestDB(t)
		defer cleanup()

		archiveSampleArticles(t, articlesRepo)

		controller := NewKeywordsController(keywordsRepo)
		router := gin.New()
		router.GET("/api/keywords", controller.GetKeywords)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/keywords?q=drug", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(2), response["count"])
	})
}

func TestKeywordsController_GetKeywordUsage(t *testing.T) {
	keywordsRepo, articlesRepo, cleanup := setupKeywordsTestDB(t)
	defer cleanup()

	archiveSampleArticles(t, articlesRepo)

	// Tag a second article with an existing keyword so usage counts differ.
	extra := []entities.Article{
		{
			DOI:      "10.1000/extra.1",
			Title:    "More Screening Methods",
			Keywords: []entities.Keyword{{Keyword: "drug discovery"}},
		},
	}
	result, err := articlesRepo.Archive(extra)
	require.NoError(t, err)
	require.Equal(t, 1, result.ArticlesCreated)

	controller := NewKeywordsController(keywordsRepo)
	router := gin.New()
	router.GET("/api/keywords/usage", controller.GetKeywordUsage)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/keywords/usage", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Keywords []keywords.Usage `json:"keywords"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 4, response.Count)

	assert.Equal(t, "drug discovery", response.Keywords[0].Keyword)
	assert.Equal(t, int64(2), response.Keywords[0].ArticleCount)
}
