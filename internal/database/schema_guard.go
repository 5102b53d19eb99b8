package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// verifySchemaCompatible checks every existing table against the column types
// the models declare. AutoMigrate silently adds missing columns but never
// rewrites existing ones, so a table that predates a model change would
// otherwise linger with a stale definition. Detecting the mismatch up front
// turns that into an explicit error instead of corrupt reads later.
func verifySchemaCompatible(db *gorm.DB, models ...any) error {
	migrator := db.Migrator()
	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("failed to parse model schema: %w", err)
		}
		if !migrator.HasTable(model) {
			continue
		}

		columns, err := migrator.ColumnTypes(model)
		if err != nil {
			return fmt.Errorf("failed to read columns of %s: %w", stmt.Table, err)
		}
		existing := make(map[string]string, len(columns))
		for _, column := range columns {
			existing[column.Name()] = column.DatabaseTypeName()
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}
			declared, ok := existing[field.DBName]
			if !ok {
				// Missing columns are fine, AutoMigrate adds them.
				continue
			}
			expected := db.Dialector.DataTypeOf(field)
			if !affinitiesMatch(declared, expected) {
				return fmt.Errorf(
					"table %s already exists with conflicting definition: column %s is %s, expected %s",
					stmt.Table, field.DBName, declared, expected,
				)
			}
		}
	}
	return nil
}

// affinitiesMatch compares two sqlite column declarations by type affinity.
// SQLite only distinguishes five affinities, so "varchar(255)" and "text" are
// the same storage class while "text" versus "integer" is a real conflict.
func affinitiesMatch(a, b string) bool {
	return sqliteAffinity(a) == sqliteAffinity(b)
}

// sqliteAffinity implements the affinity rules from the sqlite datatype
// documentation: INT wins over CHAR, then CHAR/CLOB/TEXT, then BLOB, then
// REAL/FLOA/DOUB, otherwise NUMERIC.
func sqliteAffinity(declared string) string {
	d := strings.ToUpper(declared)
	switch {
	case strings.Contains(d, "INT"):
		return schema.Int.String()
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return schema.String.String()
	case d == "" || strings.Contains(d, "BLOB"):
		return schema.Bytes.String()
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return schema.Float.String()
	default:
		return "NUMERIC"
	}
}
