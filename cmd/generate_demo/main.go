// Command generate_demo creates a demo article store from the embedded
// sample feed, the same data the server seeds in demo mode.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/janash/articlebase/internal/database"
	"github.com/janash/articlebase/internal/database/articles"
	"github.com/janash/articlebase/internal/database/authors"
	"github.com/janash/articlebase/internal/database/keywords"
	"github.com/janash/articlebase/internal/demo"
	"github.com/janash/articlebase/internal/importers"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo store at %s...", *dbPath)

	// Delete existing demo store to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo store: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	authorsRepo := authors.NewRepository(db.DB)
	keywordsRepo := keywords.NewRepository(db.DB)
	articlesRepo := articles.NewRepository(db.DB, authorsRepo, keywordsRepo)

	// Importing through the pipeline resolves shared authors and keywords,
	// so the demo store shows real cross-references between the papers.
	result, err := demo.Seed(importers.NewPipeline(articlesRepo, db))
	if err != nil {
		log.Fatalf("Failed to seed demo articles: %v", err)
	}

	log.Printf("Imported %d of %d articles", result.ArticlesCreated, result.ArticlesProcessed)
	for _, msg := range result.Errors {
		log.Printf("  %s", msg)
	}

	stats, err := db.GetStats()
	if err != nil {
		log.Fatalf("Failed to read store stats: %v", err)
	}
	log.Printf("Store contents: %d articles, %d authors, %d keywords",
		stats.Articles, stats.Authors, stats.Keywords)

	log.Println("Demo store generated successfully!")
}
