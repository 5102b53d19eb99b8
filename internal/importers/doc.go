// Package importers provides a unified pipeline for importing articles from various sources.
//
// # Architecture
//
// The import pipeline follows a simple flow:
//
//	Source Data → Converter → RawArticle → Pipeline → entities.Article → Archiver → Storage
//
// Each import source implements the Converter interface, which transforms
// source-specific data into a common RawArticle format. The Pipeline then
// converts the raw records into entities and archives them using the
// configured Archiver.
//
// # Adding a New Import Source
//
// To add support for a new article source (e.g., BibTeX):
//
//  1. Create a new file: bibtex.go
//
//  2. Define your source-specific structs:
//
//     type BibTeXEntry struct {
//     CiteKey string
//     DOI     string
//     // ... other fields
//     }
//
//  3. Implement the Converter interface:
//
//     type BibTeXConverter struct {
//     Entries []BibTeXEntry
//     }
//
//     func (c *BibTeXConverter) Convert() ([]RawArticle, Source) {
//     // Transform BibTeXEntry → RawArticle
//     return articles, Source{Name: "bibtex"}
//     }
//
//     // Compile-time check
//     var _ Converter = (*BibTeXConverter)(nil)
//
//  4. Create an HTTP handler that uses the pipeline:
//
//     func (c *BibTeXImportController) Import(ctx *gin.Context) {
//     var req BibTeXImportRequest
//     if err := ctx.ShouldBindJSON(&req); err != nil {
//     // handle error
//     }
//
//     converter := importers.NewBibTeXConverter(req.Entries)
//     result, err := c.pipeline.Import(converter)
//     // handle result
//     }
//
// # Existing Converters
//
//   - JSONFeedConverter: JSON array of article metadata records
//   - CSVFileConverter: tabular exports from reference managers
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(archiver, sessions)
//
//	feed, parseErrors, err := importers.ParseJSONFeed(file)
//	converter := importers.NewJSONFeedConverter(feed)
//	result, err := pipeline.Import(converter)
package importers
