package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janash/articlebase/internal/database/keywords"
	"github.com/janash/articlebase/internal/entities"
)

// KeywordStore defines the read operations the keywords controller needs.
type KeywordStore interface {
	GetAll() ([]entities.Keyword, error)
	Search(query string) ([]entities.Keyword, error)
	GetUsage(limit int) ([]keywords.Usage, error)
}

type KeywordsController struct {
	store KeywordStore
}

func NewKeywordsController(store KeywordStore) *KeywordsController {
	return &KeywordsController{store: store}
}

// GetKeywords lists keywords, optionally filtered by a substring.
// GET /api/keywords?q=chem
func (kc *KeywordsController) GetKeywords(c *gin.Context) {
	query := c.Query("q")

	var (
		result []entities.Keyword
		err    error
	)
	if query != "" {
		result, err = kc.store.Search(query)
	} else {
		result, err = kc.store.GetAll()
	}
	if err != nil {
		respondInternalError(c, err, "list keywords")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"keywords": result, "count": len(result)})
}

// GetKeywordUsage lists keywords with the number of articles tagged by each,
// most used first.
// GET /api/keywords/usage?limit=50
func (kc *KeywordsController) GetKeywordUsage(c *gin.Context) {
	limit, _ := parsePagination(c, 50, 500)

	usage, err := kc.store.GetUsage(limit)
	if err != nil {
		respondInternalError(c, err, "keyword usage")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"keywords": usage, "count": len(usage)})
}
