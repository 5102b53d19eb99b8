package demo

import (
	"testing"

	"github.com/janash/articlebase/internal/entities"
	"github.com/janash/articlebase/internal/importers"
	"github.com/janash/articlebase/internal/services"
)

func TestRecords(t *testing.T) {
	records, err := Records()
	if err != nil {
		t.Fatalf("Failed to parse embedded feed: %v", err)
	}

	if len(records) == 0 {
		t.Fatal("Expected embedded feed to contain records")
	}

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if r.DOI == "" || r.Title == "" {
			t.Errorf("Record %q is missing doi or title", r.DOI)
		}
		if seen[r.DOI] {
			t.Errorf("Duplicate DOI %s in embedded feed", r.DOI)
		}
		seen[r.DOI] = true
	}

	if !seen["10.1021/acs.jcim.9b00725"] {
		t.Error("Expected the drug discovery sample article in the feed")
	}
}

type captureArchiver struct {
	archived []entities.Article
}

func (a *captureArchiver) Archive(articles []entities.Article) (services.ArchiveResult, error) {
	a.archived = articles
	return services.ArchiveResult{
		ArticlesProcessed: len(articles),
		ArticlesCreated:   len(articles),
	}, nil
}

func TestSeed(t *testing.T) {
	archiver := &captureArchiver{}
	result, err := Seed(importers.NewPipeline(archiver, nil))
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	if result.ArticlesCreated != len(archiver.archived) {
		t.Errorf("Expected %d created, got %d", len(archiver.archived), result.ArticlesCreated)
	}
	if len(archiver.archived) == 0 {
		t.Fatal("Expected seed to archive articles")
	}

	var hasSharedKeyword bool
	for _, article := range archiver.archived {
		for _, kw := range article.Keywords {
			if kw.Keyword == "drug discovery" {
				hasSharedKeyword = true
			}
		}
	}
	if !hasSharedKeyword {
		t.Error("Expected seeded articles to share the drug discovery keyword")
	}
}
