package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/janash/articlebase/internal/audit"
	"github.com/janash/articlebase/internal/config"
	"github.com/janash/articlebase/internal/database"
	auditdb "github.com/janash/articlebase/internal/database/audit"
)

// ResetCommand deletes the store file and reinitializes an empty schema.
type ResetCommand struct {
	DatabasePath string
	Force        bool

	// confirm reads the interactive confirmation; overridable in tests.
	confirm func() bool
}

// NewResetCommand creates a new ResetCommand
func NewResetCommand() *ResetCommand {
	cmd := &ResetCommand{}
	cmd.confirm = cmd.promptConfirmation
	return cmd
}

// ParseFlags parses command line flags
func (cmd *ResetCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the article store")
	fs.BoolVar(&cmd.Force, "force", false, "Skip the confirmation prompt")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s reset [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete the store file and recreate an empty schema. All articles, authors,\n")
		fmt.Fprintf(os.Stderr, "keywords and history are lost.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s reset -db ./articlebase.db -force\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the reset command
func (cmd *ResetCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Println("🗑  Store Reset")
	fmt.Println("==============")
	fmt.Printf("Store: %s\n", cmd.DatabasePath)

	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		fmt.Println("ℹ️  No store file found, initializing a fresh one")
	} else {
		if !cmd.Force && !cmd.confirm() {
			fmt.Println("Aborted.")
			return nil
		}

		// The WAL sidecar files go with the store
		for _, path := range []string{cmd.DatabasePath, cmd.DatabasePath + "-wal", cmd.DatabasePath + "-shm"} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
		}
		fmt.Println("🗑  Removed existing store file")
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	auditService := audit.NewService(auditdb.NewRepository(db.DB))
	if err := auditService.LogReset(cmd.DatabasePath); err != nil {
		fmt.Printf("⚠️  Failed to record audit event: %v\n", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read store stats: %w", err)
	}

	fmt.Println("\n=== Fresh Store ===")
	fmt.Printf("📚 Articles: %d\n", stats.Articles)
	fmt.Printf("👤 Authors: %d\n", stats.Authors)
	fmt.Printf("🏷  Keywords: %d\n", stats.Keywords)

	fmt.Println("\n✅ Reset complete!")
	return nil
}

func (cmd *ResetCommand) promptConfirmation() bool {
	fmt.Printf("\n⚠️  This permanently deletes every article, author and keyword.\n")
	fmt.Printf("Type 'yes' to continue: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	return strings.TrimSpace(scanner.Text()) == "yes"
}
