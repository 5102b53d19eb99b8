package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ArticleCSVRow represents a single row from a tabular article export.
// Authors and keywords are packed into single cells: authors as
// "Last, First (Affiliation)" entries separated by semicolons, keywords
// as a semicolon-separated list.
type ArticleCSVRow struct {
	DOI             string
	Title           string
	PublicationYear string
	Abstract        string
	Authors         string
	Keywords        string
}

// CSVFileConverter converts tabular article rows to the common format.
type CSVFileConverter struct {
	Rows []ArticleCSVRow
}

// NewCSVFileConverter creates a converter for CSV article rows.
func NewCSVFileConverter(rows []ArticleCSVRow) *CSVFileConverter {
	return &CSVFileConverter{Rows: rows}
}

// Convert implements Converter interface.
func (c *CSVFileConverter) Convert() ([]RawArticle, Source) {
	articles := make([]RawArticle, 0, len(c.Rows))

	for _, row := range c.Rows {
		raw := RawArticle{
			DOI:      row.DOI,
			Title:    row.Title,
			Abstract: row.Abstract,
			Authors:  parseAuthorsCell(row.Authors),
			Keywords: splitListCell(row.Keywords),
		}

		if row.PublicationYear != "" {
			if year, err := strconv.Atoi(strings.TrimSpace(row.PublicationYear)); err == nil {
				raw.PublicationYear = year
			}
		}

		articles = append(articles, raw)
	}

	return articles, Source{Name: "csv_file"}
}

// ParseArticlesCSV parses a tabular article export.
// Returns the parsed rows, any parse errors encountered, and a fatal error if
// parsing fails completely.
func ParseArticlesCSV(r io.Reader) ([]ArticleCSVRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Read header row
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Build header index map
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	// Validate required headers
	requiredHeaders := []string{"doi", "title"}
	for _, h := range requiredHeaders {
		if _, ok := headerIndex[h]; !ok {
			return nil, nil, fmt.Errorf("missing required header: %s", h)
		}
	}

	var rows []ArticleCSVRow
	var errors []string
	lineNum := 1 // Start at 1 because we already read the header

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errors = append(errors, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}

		row := ArticleCSVRow{}

		// Safely get values from record using header index
		row.DOI = getCSVValue(record, headerIndex, "doi")
		row.Title = getCSVValue(record, headerIndex, "title")
		row.PublicationYear = getCSVValue(record, headerIndex, "publication year")
		row.Abstract = getCSVValue(record, headerIndex, "abstract")
		row.Authors = getCSVValue(record, headerIndex, "authors")
		row.Keywords = getCSVValue(record, headerIndex, "keywords")

		// Skip rows without a DOI or title
		if row.DOI == "" || row.Title == "" {
			errors = append(errors, fmt.Sprintf("Line %d: skipped - missing doi or title", lineNum))
			continue
		}

		rows = append(rows, row)
	}

	return rows, errors, nil
}

func getCSVValue(record []string, headerIndex map[string]int, header string) string {
	if idx, ok := headerIndex[header]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

// parseAuthorsCell splits a packed authors cell into structured entries.
// Each entry looks like "Curie, Marie (Sorbonne)"; the affiliation is
// optional, and a bare "Marie Curie" form splits on the last space.
func parseAuthorsCell(cell string) []RawAuthor {
	var authors []RawAuthor

	for _, entry := range strings.Split(cell, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		author := RawAuthor{}

		// Affiliation in trailing parentheses.
		if open := strings.LastIndex(entry, "("); open != -1 && strings.HasSuffix(entry, ")") {
			author.Affiliation = strings.TrimSpace(entry[open+1 : len(entry)-1])
			entry = strings.TrimSpace(entry[:open])
		}

		if comma := strings.Index(entry, ","); comma != -1 {
			author.LastName = strings.TrimSpace(entry[:comma])
			author.FirstName = strings.TrimSpace(entry[comma+1:])
		} else if space := strings.LastIndex(entry, " "); space != -1 {
			author.FirstName = strings.TrimSpace(entry[:space])
			author.LastName = strings.TrimSpace(entry[space+1:])
		} else {
			author.LastName = entry
		}

		authors = append(authors, author)
	}

	return authors
}

// splitListCell splits a semicolon-separated cell into trimmed entries.
func splitListCell(cell string) []string {
	var values []string
	for _, v := range strings.Split(cell, ";") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Compile-time interface check
var _ Converter = (*CSVFileConverter)(nil)
