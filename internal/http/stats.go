package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janash/articlebase/internal/database"
)

type StatsController struct {
	db *database.Database
}

func NewStatsController(db *database.Database) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns row counts for every table in the archive.
// GET /api/stats
func (sc *StatsController) GetStats(c *gin.Context) {
	stats, err := sc.db.GetStats()
	if err != nil {
		respondInternalError(c, err, "collect stats")
		return
	}

	c.IndentedJSON(http.StatusOK, stats)
}
