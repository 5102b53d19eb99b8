// Package inspect examines an article store file directly over database/sql,
// without going through the ORM. The erd and check CLI commands are built on
// it: erd renders the live schema, check reports on its physical health.
package inspect

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Inspector reads schema metadata from a store file.
type Inspector struct {
	dbPath string
	db     *sql.DB
}

// NewInspector opens the store read-only. The file must already exist.
func NewInspector(dbPath string) (*Inspector, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s", dbPath)
	}

	db, err := sql.Open("sqlite3", dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Inspector{dbPath: dbPath, db: db}, nil
}

// Close closes the database connection.
func (i *Inspector) Close() error {
	if i.db != nil {
		return i.db.Close()
	}
	return nil
}

// Column describes one column of a table.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
	Default    string
}

// ForeignKey describes one outgoing reference of a table.
type ForeignKey struct {
	FromColumn string
	RefTable   string
	RefColumn  string
	OnDelete   string
}

// Table describes one table of the store schema.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Schema lists the user tables with their columns and foreign keys, in name
// order. Internal sqlite_* tables are skipped.
func (i *Inspector) Schema() ([]Table, error) {
	rows, err := i.db.Query(`
		SELECT name FROM sqlite_schema
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	var tables []Table
	for _, name := range names {
		table := Table{Name: name}

		if table.Columns, err = i.columns(name); err != nil {
			return nil, err
		}
		if table.ForeignKeys, err = i.foreignKeys(name); err != nil {
			return nil, err
		}

		tables = append(tables, table)
	}

	return tables, nil
}

func (i *Inspector) columns(table string) ([]Column, error) {
	// PRAGMA arguments cannot be bound; the name comes from sqlite_schema
	rows, err := i.db.Query(fmt.Sprintf(`PRAGMA table_info(%q)`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var (
			cid        int
			col        Column
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		col.Default = defaultVal.String
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns of %s: %w", table, err)
	}

	return columns, nil
}

func (i *Inspector) foreignKeys(table string) ([]ForeignKey, error) {
	rows, err := i.db.Query(fmt.Sprintf(`PRAGMA foreign_key_list(%q)`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to read foreign keys of %s: %w", table, err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var (
			id, seq  int
			fk       ForeignKey
			to       sql.NullString
			onUpdate string
			match    string
		)
		if err := rows.Scan(&id, &seq, &fk.RefTable, &fk.FromColumn, &to, &onUpdate, &fk.OnDelete, &match); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key of %s: %w", table, err)
		}
		// to is NULL when the reference targets the parent's primary key
		fk.RefColumn = to.String
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys of %s: %w", table, err)
	}

	return fks, nil
}
