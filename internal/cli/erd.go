package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/janash/articlebase/internal/config"
	"github.com/janash/articlebase/internal/inspect"
)

// ERDCommand renders the entity-relationship diagram of a store.
type ERDCommand struct {
	DatabasePath string
	Format       string
	OutputPath   string
}

// NewERDCommand creates a new ERDCommand
func NewERDCommand() *ERDCommand {
	return &ERDCommand{}
}

// ParseFlags parses command line flags
func (cmd *ERDCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("erd", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the article store")
	fs.StringVar(&cmd.Format, "format", "mermaid", "Output format: mermaid or dot")
	fs.StringVar(&cmd.OutputPath, "o", "", "Write the diagram to this file instead of stdout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s erd [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Render the store schema as an entity-relationship diagram, read from the\n")
		fmt.Fprintf(os.Stderr, "live database file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Print a mermaid erDiagram block:\n")
		fmt.Fprintf(os.Stderr, "  %s erd -db ./articlebase.db\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Write a graphviz file and render it:\n")
		fmt.Fprintf(os.Stderr, "  %s erd -format dot -o schema.dot && dot -Tpng schema.dot -o schema.png\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Format != "mermaid" && cmd.Format != "dot" {
		return fmt.Errorf("unknown format %q (expected mermaid or dot)", cmd.Format)
	}

	return nil
}

// Run executes the erd command
func (cmd *ERDCommand) Run() error {
	inspector, err := inspect.NewInspector(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer inspector.Close()

	tables, err := inspector.Schema()
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return fmt.Errorf("store %s has no tables", cmd.DatabasePath)
	}

	var out string
	switch cmd.Format {
	case "mermaid":
		out = inspect.RenderMermaid(tables)
	case "dot":
		out = inspect.RenderDOT(tables)
	}

	if cmd.OutputPath == "" {
		fmt.Print(out)
		return nil
	}

	if err := os.WriteFile(cmd.OutputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}
	fmt.Printf("✅ Diagram written to %s\n", cmd.OutputPath)
	return nil
}
