package http

import (
	"database/sql"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply demo mode middleware if enabled
	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.Handler())
	}

	var tasksDB *sql.DB
	if cfg.TaskClient != nil {
		tasksDB = cfg.TaskClient.DB()
	}

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, tasksDB, cfg.Version)
	articlesController := NewArticlesController(cfg.ArticleStore, cfg.DeleteStore, cfg.AuditService, cfg.TaskClient)
	keywordsController := NewKeywordsController(cfg.KeywordStore)
	authorsController := NewAuthorsController(cfg.AuthorStore)
	importController := NewJSONFeedImportController(cfg.Archiver, cfg.Sessions, cfg.Auditor, cfg.AuditService)
	statsController := NewStatsController(cfg.Database)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Article endpoints. Single-article routes nest the DOI under a
	// catch-all because DOIs contain slashes.
	router.GET("/api/articles", articlesController.GetAllArticles)
	router.GET("/api/articles/search", articlesController.SearchArticles)
	router.GET("/api/articles/by-keyword", articlesController.GetArticlesByKeyword)
	router.GET("/api/articles/by-doi/*doi", articlesController.GetArticle)
	router.DELETE("/api/articles/by-doi/*doi", articlesController.DeleteArticle)

	// Author endpoints
	router.GET("/api/authors", authorsController.GetAuthors)
	router.GET("/api/authors/:id/articles", authorsController.GetAuthorArticles)

	// Keyword endpoints
	router.GET("/api/keywords", keywordsController.GetKeywords)
	router.GET("/api/keywords/usage", keywordsController.GetKeywordUsage)

	// Import endpoints
	router.POST("/api/import/json", importController.Import)

	importsController := NewImportSessionsController(cfg.Database)
	router.GET("/api/imports", importsController.GetRecentImports)

	// Statistics
	router.GET("/api/stats", statsController.GetStats)

	// Audit trail endpoints
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/api/audit", auditController.GetAuditEvents)
		router.GET("/api/audit/article/*doi", auditController.GetArticleHistory)
	}

	// Task management endpoints
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient, cfg.AuditRetentionDays)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
