package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/janash/articlebase/internal/audit"
	"github.com/janash/articlebase/internal/config"
	"github.com/janash/articlebase/internal/database"
	"github.com/janash/articlebase/internal/database/articles"
	auditdb "github.com/janash/articlebase/internal/database/audit"
	"github.com/janash/articlebase/internal/database/authors"
	"github.com/janash/articlebase/internal/database/keywords"
	"github.com/janash/articlebase/internal/demo"
	http_controllers "github.com/janash/articlebase/internal/http"
	"github.com/janash/articlebase/internal/importers"
	"github.com/janash/articlebase/internal/scheduler"
	"github.com/janash/articlebase/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown: wait for SIGINT/SIGTERM, then give in-flight
	// requests and background workers until the timeout to finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop scheduler and task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting ArticleBase v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Repositories over the shared gorm handle. Articles delegates
	// author/keyword resolution to the other two.
	authorsRepo := authors.NewRepository(db.DB)
	keywordsRepo := keywords.NewRepository(db.DB)
	articlesRepo := articles.NewRepository(db.DB, authorsRepo, keywordsRepo)

	// Create auditor for saving incoming feed payloads, and the audit
	// service that records structured events alongside them.
	auditor := audit.NewAuditor(cfg.Audit.Dir)
	auditService := audit.NewService(auditdb.NewRepository(db.DB))

	// Demo mode blocks writes at the router and seeds an empty store with
	// sample articles so there is something to browse.
	var demoMiddleware *demo.Middleware
	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
		demoMiddleware = demo.NewMiddleware(true)

		count, err := articlesRepo.Count()
		if err != nil {
			log.Printf("WARNING: Failed to count articles for demo seeding: %v", err)
		} else if count == 0 {
			result, err := demo.Seed(importers.NewPipeline(articlesRepo, db))
			if err != nil {
				log.Printf("WARNING: Failed to seed demo articles: %v", err)
			} else {
				log.Printf("Seeded %d demo articles", result.ArticlesCreated)
			}
		}
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewCleanupOrphansQueue(keywordsRepo, authorsRepo, auditService),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Maintenance scheduler enqueues periodic cleanup through the task
	// queue, so it only runs when the queue does.
	var maintenance *scheduler.MaintenanceScheduler
	if taskClient != nil {
		maintenance = scheduler.NewMaintenanceScheduler(
			taskClient,
			cfg.Cleanup.Schedule,
			cfg.Cleanup.Enabled,
			cfg.Audit.RetentionDays,
		)
		if err := maintenance.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start maintenance scheduler: %v", err)
		}
	} else if cfg.Cleanup.Enabled {
		log.Printf("WARNING: Scheduled cleanup is enabled but the task queue is disabled. Set 'TASKS_ENABLED' to enable it.")
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:           db,
		Auditor:            auditor,
		ArticleStore:       articlesRepo,
		DeleteStore:        articlesRepo,
		KeywordStore:       keywordsRepo,
		AuthorStore:        authorsRepo,
		Archiver:           articlesRepo,
		Sessions:           db,
		AuditService:       auditService,
		TaskClient:         taskClient,
		DemoMiddleware:     demoMiddleware,
		AuditRetentionDays: cfg.Audit.RetentionDays,
		Version:            version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
