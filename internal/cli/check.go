package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/janash/articlebase/internal/config"
	"github.com/janash/articlebase/internal/inspect"
)

// CheckCommand reports on the physical health of a store.
type CheckCommand struct {
	DatabasePath string
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

// ParseFlags parses command line flags
func (cmd *CheckCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the article store")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s check [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run sqlite integrity and foreign key checks against the store, report row\n")
		fmt.Fprintf(os.Stderr, "counts per table and count orphaned authors/keywords. Exits non-zero when\n")
		fmt.Fprintf(os.Stderr, "the store is corrupt or references are broken.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the check command
func (cmd *CheckCommand) Run() error {
	fmt.Printf("🔎 Store Check: %s\n", cmd.DatabasePath)
	fmt.Println("=========================")

	inspector, err := inspect.NewInspector(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer inspector.Close()

	report, err := inspector.Check()
	if err != nil {
		return err
	}

	if report.IntegrityOK {
		fmt.Println("✅ Integrity: ok")
	} else {
		fmt.Println("❌ Integrity: FAILED")
		for _, line := range report.IntegrityDetails {
			fmt.Printf("  %s\n", line)
		}
	}

	if len(report.Violations) == 0 {
		fmt.Println("✅ Foreign keys: ok")
	} else {
		fmt.Printf("❌ Foreign keys: %d violations\n", len(report.Violations))
		for _, v := range report.Violations {
			fmt.Printf("  row %d of %s references a missing %s row\n", v.RowID, v.Table, v.Parent)
		}
	}

	fmt.Println("\n=== Row Counts ===")
	for _, count := range report.Counts {
		fmt.Printf("  %-20s %d\n", count.Table, count.Rows)
	}

	fmt.Printf("\nOrphans: %d keywords, %d authors\n", report.OrphanKeywords, report.OrphanAuthors)
	if report.OrphanKeywords > 0 || report.OrphanAuthors > 0 {
		fmt.Println("ℹ️  Orphans are removed by the cleanup task (POST /api/tasks/cleanup_orphans/run)")
	}

	if !report.IntegrityOK {
		return fmt.Errorf("store failed integrity check")
	}
	if len(report.Violations) > 0 {
		return fmt.Errorf("store has %d foreign key violations", len(report.Violations))
	}

	fmt.Println("\n✅ Store is healthy")
	return nil
}
