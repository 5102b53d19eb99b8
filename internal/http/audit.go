package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/janash/articlebase/internal/audit"
	"github.com/janash/articlebase/internal/entities"
)

type AuditController struct {
	auditService *audit.Service
}

func NewAuditController(auditService *audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetAuditEvents returns paginated audit events as JSON, newest first,
// optionally filtered by event type.
// GET /api/audit?page=1&limit=25&type=import
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}

	eventType := c.Query("type")
	offset := (page - 1) * limit

	var events []entities.AuditEvent
	var total int64
	var err error

	if eventType != "" {
		events, total, err = ac.auditService.GetEventsByType(entities.AuditEventType(eventType), limit, offset)
	} else {
		events, total, err = ac.auditService.GetEvents(limit, offset)
	}

	if err != nil {
		respondInternalError(c, err, "load audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"events":       events,
		"page":         page,
		"limit":        limit,
		"total_pages":  totalPages,
		"total_events": total,
	})
}

// GetArticleHistory returns the audit trail for one article.
// GET /api/audit/article/*doi
func (ac *AuditController) GetArticleHistory(c *gin.Context) {
	doi, ok := doiParam(c, "doi")
	if !ok {
		return
	}

	events, err := ac.auditService.GetEventsForArticle(doi)
	if err != nil {
		respondInternalError(c, err, "load article history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"doi": doi, "events": events, "count": len(events)})
}
