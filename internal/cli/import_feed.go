package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/janash/articlebase/internal/audit"
	"github.com/janash/articlebase/internal/config"
	"github.com/janash/articlebase/internal/database"
	"github.com/janash/articlebase/internal/database/articles"
	auditdb "github.com/janash/articlebase/internal/database/audit"
	"github.com/janash/articlebase/internal/database/authors"
	"github.com/janash/articlebase/internal/database/keywords"
	"github.com/janash/articlebase/internal/importers"
)

// ImportCommand loads an article feed file into the store.
type ImportCommand struct {
	FilePath     string
	DatabasePath string
	DryRun       bool
	Verbose      bool
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

// ParseFlags parses command line flags
func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the feed file (.json or .csv)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the article store")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse the feed and show what would be imported without making changes")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "List every parsed record")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file FEED [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load an article feed into the store. The format is detected from the file\n")
		fmt.Fprintf(os.Stderr, "extension: .json for a JSON array of article records, .csv for a tabular\n")
		fmt.Fprintf(os.Stderr, "reference-manager export.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Load a JSON feed into the default store:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file articles.json\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview a CSV export without writing anything:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file export.csv -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}

	return nil
}

// Run executes the import command
func (cmd *ImportCommand) Run() error {
	fmt.Println("📄 Article Feed Import")
	fmt.Println("======================")

	if cmd.DryRun {
		fmt.Println("🔍 DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open feed file: %w", err)
	}
	defer file.Close()

	converter, skipped, err := cmd.parseFeed(file)
	if err != nil {
		return err
	}

	raw, source := converter.Convert()
	fmt.Printf("📚 Parsed %d article records (%s)\n", len(raw), source.Name)

	if len(skipped) > 0 {
		fmt.Printf("\n⚠️  %d records skipped during parsing:\n", len(skipped))
		for _, msg := range skipped {
			fmt.Printf("  ❌ %s\n", msg)
		}
	}

	if cmd.Verbose {
		fmt.Println("\n=== Records ===")
		for i, r := range raw {
			fmt.Printf("%d. %s — %q (%d authors, %d keywords)\n",
				i+1, r.DOI, r.Title, len(r.Authors), len(r.Keywords))
		}
	}

	if len(raw) == 0 {
		fmt.Println("\nℹ️  Nothing to import")
		return nil
	}

	if cmd.DryRun {
		fmt.Println("\n✅ Dry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("\n💾 Saving to store: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	authorsRepo := authors.NewRepository(db.DB)
	keywordsRepo := keywords.NewRepository(db.DB)
	articlesRepo := articles.NewRepository(db.DB, authorsRepo, keywordsRepo)
	auditService := audit.NewService(auditdb.NewRepository(db.DB))

	pipeline := importers.NewPipeline(articlesRepo, db)
	result, importErr := pipeline.Import(converter)
	if logErr := auditService.LogImport(source.Name, result, importErr); logErr != nil {
		fmt.Printf("⚠️  Failed to record audit event: %v\n", logErr)
	}
	if importErr != nil {
		return fmt.Errorf("import failed: %w", importErr)
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("📚 Articles processed: %d\n", result.ArticlesProcessed)
	fmt.Printf("✅ Articles created: %d\n", result.ArticlesCreated)
	if result.ArticlesFailed > 0 {
		fmt.Printf("❌ Articles failed: %d\n", result.ArticlesFailed)
		for _, msg := range result.Errors {
			fmt.Printf("  ❌ %s\n", msg)
		}
	}

	fmt.Println("\n✅ Import complete!")
	return nil
}

// parseFeed picks the parser from the file extension and wraps the parsed
// records in the matching converter.
func (cmd *ImportCommand) parseFeed(file *os.File) (importers.Converter, []string, error) {
	switch strings.ToLower(filepath.Ext(cmd.FilePath)) {
	case ".json":
		records, skipped, err := importers.ParseJSONFeed(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse JSON feed: %w", err)
		}
		return importers.NewJSONFeedConverter(records), skipped, nil

	case ".csv":
		rows, skipped, err := importers.ParseArticlesCSV(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse CSV export: %w", err)
		}
		return importers.NewCSVFileConverter(rows), skipped, nil

	default:
		return nil, nil, fmt.Errorf("unsupported feed format %q (expected .json or .csv)", filepath.Ext(cmd.FilePath))
	}
}
