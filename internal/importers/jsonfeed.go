package importers

import (
	"encoding/json"
	"fmt"
	"io"
)

// FeedAuthor is one contributor entry in a JSON feed record.
type FeedAuthor struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Affiliation string `json:"affiliation"`
}

// FeedArticle is one article metadata record in a JSON feed: an array of
// these documents is the interchange format for bulk article loads.
type FeedArticle struct {
	DOI             string       `json:"doi"`
	Title           string       `json:"title"`
	PublicationYear int          `json:"publication_year"`
	Abstract        string       `json:"abstract"`
	Authors         []FeedAuthor `json:"authors"`
	Keywords        []string     `json:"keywords"`
}

// JSONFeedConverter converts JSON feed records to the common format.
type JSONFeedConverter struct {
	Articles []FeedArticle
}

// NewJSONFeedConverter creates a converter for JSON feed records.
func NewJSONFeedConverter(articles []FeedArticle) *JSONFeedConverter {
	return &JSONFeedConverter{Articles: articles}
}

// Convert implements Converter interface.
func (c *JSONFeedConverter) Convert() ([]RawArticle, Source) {
	articles := make([]RawArticle, 0, len(c.Articles))

	for _, a := range c.Articles {
		raw := RawArticle{
			DOI:             a.DOI,
			Title:           a.Title,
			PublicationYear: a.PublicationYear,
			Abstract:        a.Abstract,
			Keywords:        a.Keywords,
		}
		for _, au := range a.Authors {
			raw.Authors = append(raw.Authors, RawAuthor{
				FirstName:   au.FirstName,
				LastName:    au.LastName,
				Affiliation: au.Affiliation,
			})
		}
		articles = append(articles, raw)
	}

	return articles, Source{Name: "json_feed"}
}

// ParseJSONFeed parses a JSON document containing an array of article records.
// Returns the well-formed records, per-record shape errors, and a fatal error
// if the document itself cannot be decoded. Records missing a DOI or title are
// skipped and reported rather than aborting the load.
func ParseJSONFeed(r io.Reader) ([]FeedArticle, []string, error) {
	var records []FeedArticle
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("failed to decode article feed: %w", err)
	}

	var valid []FeedArticle
	var errors []string
	for i, record := range records {
		if record.DOI == "" {
			errors = append(errors, fmt.Sprintf("Record %d: skipped - missing doi", i+1))
			continue
		}
		if record.Title == "" {
			errors = append(errors, fmt.Sprintf("Record %d: skipped - missing title", i+1))
			continue
		}
		valid = append(valid, record)
	}

	return valid, errors, nil
}

// Compile-time interface check
var _ Converter = (*JSONFeedConverter)(nil)
