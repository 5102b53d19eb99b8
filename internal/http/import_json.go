package http

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janash/articlebase/internal/audit"
	"github.com/janash/articlebase/internal/importers"
)

// ImportResponse reports the outcome of a feed import.
type ImportResponse struct {
	ArticlesProcessed int      `json:"articles_processed"`
	ArticlesCreated   int      `json:"articles_created"`
	ArticlesFailed    int      `json:"articles_failed"`
	SkippedRecords    []string `json:"skipped_records,omitempty"`
	Errors            []string `json:"errors,omitempty"`
}

type JSONFeedImportController struct {
	pipeline     *importers.Pipeline
	auditor      *audit.Auditor
	auditService *audit.Service
}

func NewJSONFeedImportController(archiver importers.Archiver, sessions importers.SessionStore, auditor *audit.Auditor, auditService *audit.Service) *JSONFeedImportController {
	return &JSONFeedImportController{
		pipeline:     importers.NewPipeline(archiver, sessions),
		auditor:      auditor,
		auditService: auditService,
	}
}

// Import accepts a JSON array of article records, archives them and returns
// per-batch counts. A malformed document is rejected outright; per-record
// problems (missing doi/title, duplicate DOI in the store) are reported in
// the response without aborting the rest of the batch.
// POST /api/import/json
func (ic *JSONFeedImportController) Import(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "failed to read request body")
		return
	}

	// Keep a copy of the payload before touching it.
	if ic.auditor != nil {
		if _, err := ic.auditor.SaveJSON("json_feed", json.RawMessage(body)); err != nil {
			log.Printf("Failed to audit import payload: %v", err)
		}
	}

	records, skipped, err := importers.ParseJSONFeed(bytes.NewReader(body))
	if err != nil {
		respondBadRequest(c, "malformed feed document: "+err.Error())
		return
	}

	result, err := ic.pipeline.Import(importers.NewJSONFeedConverter(records))
	if ic.auditService != nil {
		_ = ic.auditService.LogImport("json_feed", result, err)
	}
	if err != nil {
		respondInternalError(c, err, "import json feed")
		return
	}

	c.IndentedJSON(http.StatusOK, ImportResponse{
		ArticlesProcessed: result.ArticlesProcessed,
		ArticlesCreated:   result.ArticlesCreated,
		ArticlesFailed:    result.ArticlesFailed,
		SkippedRecords:    skipped,
		Errors:            result.Errors,
	})
}
