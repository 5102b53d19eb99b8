package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janash/articlebase/internal/entities"
)

// SessionStore provides read access to recorded import runs.
type SessionStore interface {
	GetRecentImportSessions(limit int) ([]entities.ImportSession, error)
}

type ImportSessionsController struct {
	store SessionStore
}

func NewImportSessionsController(store SessionStore) *ImportSessionsController {
	return &ImportSessionsController{store: store}
}

// GetRecentImports lists the most recent import sessions, newest first.
// GET /api/imports?limit=20
func (ic *ImportSessionsController) GetRecentImports(c *gin.Context) {
	limit, _ := parsePagination(c, 20, 100)

	sessions, err := ic.store.GetRecentImportSessions(limit)
	if err != nil {
		respondInternalError(c, err, "list import sessions")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"imports": sessions, "count": len(sessions)})
}
