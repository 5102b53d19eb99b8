package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janash/articlebase/internal/entities"
)

// AuthorStore defines the read operations the authors controller needs.
type AuthorStore interface {
	GetAll() ([]entities.Author, error)
	Search(query string) ([]entities.Author, error)
	GetByID(id uint) (*entities.Author, error)
	GetArticles(authorID uint) ([]entities.Article, error)
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

// GetAuthors lists authors, optionally filtered by a name or affiliation
// substring.
// GET /api/authors?q=curie
func (ac *AuthorsController) GetAuthors(c *gin.Context) {
	query := c.Query("q")

	var (
		result []entities.Author
		err    error
	)
	if query != "" {
		result, err = ac.store.Search(query)
	} else {
		result, err = ac.store.GetAll()
	}
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"authors": result, "count": len(result)})
}

// GetAuthorArticles lists the articles written by one author.
// GET /api/authors/:id/articles
func (ac *AuthorsController) GetAuthorArticles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetByID(id)
	if err != nil {
		respondNotFound(c, "author")
		return
	}

	articles, err := ac.store.GetArticles(id)
	if err != nil {
		respondInternalError(c, err, "articles for author")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"author":   author,
		"articles": articles,
		"count":    len(articles),
	})
}
