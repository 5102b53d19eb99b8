package inspect

import (
	"database/sql"
	"fmt"
)

// TableCount holds the row count of one table.
type TableCount struct {
	Table string
	Rows  int64
}

// Violation is one row of PRAGMA foreign_key_check output: a child row whose
// parent is missing.
type Violation struct {
	Table  string
	RowID  int64
	Parent string
}

// Report summarizes the physical health of a store.
type Report struct {
	IntegrityOK      bool
	IntegrityDetails []string
	Violations       []Violation
	Counts           []TableCount
	OrphanKeywords   int64
	OrphanAuthors    int64
}

// Check runs PRAGMA integrity_check and foreign_key_check, counts rows per
// table, and counts keywords/authors that no article references anymore.
func (i *Inspector) Check() (*Report, error) {
	report := &Report{}

	details, err := i.integrityCheck()
	if err != nil {
		return nil, err
	}
	report.IntegrityOK = len(details) == 1 && details[0] == "ok"
	if !report.IntegrityOK {
		report.IntegrityDetails = details
	}

	if report.Violations, err = i.foreignKeyCheck(); err != nil {
		return nil, err
	}

	tables, err := i.Schema()
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(tables))
	for _, table := range tables {
		have[table.Name] = true

		var count int64
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %q`, table.Name)
		if err := i.db.QueryRow(query).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count rows of %s: %w", table.Name, err)
		}
		report.Counts = append(report.Counts, TableCount{Table: table.Name, Rows: count})
	}

	// Orphan counts only make sense against the article schema; skip them
	// when the file is some other sqlite database.
	if have["keywords"] && have["article_keywords"] {
		if report.OrphanKeywords, err = i.countOrphans("keywords", "keyword_id", "article_keywords"); err != nil {
			return nil, err
		}
	}
	if have["authors"] && have["article_authors"] {
		if report.OrphanAuthors, err = i.countOrphans("authors", "author_id", "article_authors"); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (i *Inspector) integrityCheck() ([]string, error) {
	rows, err := i.db.Query(`PRAGMA integrity_check`)
	if err != nil {
		return nil, fmt.Errorf("failed to run integrity check: %w", err)
	}
	defer rows.Close()

	var details []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan integrity check row: %w", err)
		}
		details = append(details, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating integrity check: %w", err)
	}

	return details, nil
}

func (i *Inspector) foreignKeyCheck() ([]Violation, error) {
	rows, err := i.db.Query(`PRAGMA foreign_key_check`)
	if err != nil {
		return nil, fmt.Errorf("failed to run foreign key check: %w", err)
	}
	defer rows.Close()

	var violations []Violation
	for rows.Next() {
		var (
			v       Violation
			rowid   sql.NullInt64
			fkIndex int64
		)
		if err := rows.Scan(&v.Table, &rowid, &v.Parent, &fkIndex); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key violation: %w", err)
		}
		v.RowID = rowid.Int64
		violations = append(violations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign key violations: %w", err)
	}

	return violations, nil
}

func (i *Inspector) countOrphans(table, joinColumn, joinTable string) (int64, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM %q WHERE id NOT IN (SELECT %q FROM %q)`,
		table, joinColumn, joinTable,
	)
	var count int64
	if err := i.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orphans in %s: %w", table, err)
	}
	return count, nil
}
