package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/janash/articlebase/internal/audit"
	"github.com/janash/articlebase/internal/entities"
	"github.com/janash/articlebase/internal/tasks"
)

// ArticleStore defines the read operations the articles controller needs.
type ArticleStore interface {
	ArticleGetter
	GetAll(limit, offset int) ([]entities.Article, error)
	Count() (int64, error)
	SearchByTitle(query string) ([]entities.Article, error)
	SearchByKeyword(substring string) ([]entities.Article, error)
}

// DeleteStore defines database operations for article deletion.
type DeleteStore interface {
	ArticleGetter
	Delete(doi string) error
}

type ArticlesController struct {
	store        ArticleStore
	deleteStore  DeleteStore
	auditService *audit.Service
	taskClient   *tasks.Client
}

func NewArticlesController(store ArticleStore, deleteStore DeleteStore, auditService *audit.Service, taskClient *tasks.Client) *ArticlesController {
	return &ArticlesController{
		store:        store,
		deleteStore:  deleteStore,
		auditService: auditService,
		taskClient:   taskClient,
	}
}

// GetAllArticles returns a paginated list of articles.
// GET /api/articles?limit=25&offset=0
func (ac *ArticlesController) GetAllArticles(c *gin.Context) {
	limit, offset := parsePagination(c, 25, 100)

	articles, err := ac.store.GetAll(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list articles")
		return
	}

	total, err := ac.store.Count()
	if err != nil {
		respondInternalError(c, err, "count articles")
		return
	}

	c.IndentedJSON(http.StatusOK, PaginatedResponse{
		Data:    articles,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(articles)) < total,
	})
}

// SearchArticles finds articles whose title contains the query substring.
// GET /api/articles/search?q=machine
func (ac *ArticlesController) SearchArticles(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}

	articles, err := ac.store.SearchByTitle(query)
	if err != nil {
		respondInternalError(c, err, "search articles by title")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}

// GetArticlesByKeyword finds articles tagged with a keyword containing the
// query substring (case-insensitive).
// GET /api/articles/by-keyword?q=drug
func (ac *ArticlesController) GetArticlesByKeyword(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}

	articles, err := ac.store.SearchByKeyword(query)
	if err != nil {
		respondInternalError(c, err, "search articles by keyword")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}

// GetArticle returns a single article with its authors and keywords.
// DOIs contain slashes, so the route uses a catch-all parameter.
// GET /api/articles/by-doi/*doi
func (ac *ArticlesController) GetArticle(c *gin.Context) {
	doi, ok := doiParam(c, "doi")
	if !ok {
		return
	}

	article, err := ac.store.GetByDOI(doi)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "article")
			return
		}
		respondInternalError(c, err, "get article")
		return
	}

	c.IndentedJSON(http.StatusOK, article)
}

// DeleteArticle removes an article and its association rows, then enqueues
// orphan cleanup for authors and keywords that lost their last article.
// DELETE /api/articles/by-doi/*doi
func (ac *ArticlesController) DeleteArticle(c *gin.Context) {
	doi, ok := doiParam(c, "doi")
	if !ok {
		return
	}

	err := ac.deleteStore.Delete(doi)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "article")
			return
		}
		if ac.auditService != nil {
			_ = ac.auditService.LogDelete(doi, err)
		}
		respondInternalError(c, err, "delete article")
		return
	}

	if ac.auditService != nil {
		_ = ac.auditService.LogDelete(doi, nil)
	}

	// Deleting an article can leave authors and keywords without any
	// remaining association rows.
	if ac.taskClient != nil {
		if _, err := ac.taskClient.Add(tasks.CleanupOrphansTask{}).Save(); err != nil {
			log.Printf("Failed to enqueue orphan cleanup after deleting %s: %v", doi, err)
		}
	}

	respondSuccess(c, "article deleted")
}
