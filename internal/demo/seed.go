package demo

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/janash/articlebase/internal/importers"
	"github.com/janash/articlebase/internal/services"
)

// The embedded feed holds a handful of computational chemistry papers with
// overlapping authors and keywords, so the demo store shows cross-references.
//
//go:embed feed.json
var demoFeed []byte

// Records parses the embedded demo feed.
func Records() ([]importers.FeedArticle, error) {
	records, skipped, err := importers.ParseJSONFeed(bytes.NewReader(demoFeed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded demo feed: %w", err)
	}
	if len(skipped) > 0 {
		return nil, fmt.Errorf("embedded demo feed has %d malformed records", len(skipped))
	}
	return records, nil
}

// Seed loads the embedded demo articles through the import pipeline.
func Seed(pipeline *importers.Pipeline) (services.ImportResult, error) {
	records, err := Records()
	if err != nil {
		return services.ImportResult{}, err
	}
	return pipeline.Import(importers.NewJSONFeedConverter(records))
}
