package articles

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/janash/articlebase/internal/database/authors"
	"github.com/janash/articlebase/internal/database/keywords"
	"github.com/janash/articlebase/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_articles_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.SetupJoinTable(&entities.Article{}, "Authors", &entities.ArticleAuthor{})
	require.NoError(t, err)
	err = db.SetupJoinTable(&entities.Article{}, "Keywords", &entities.ArticleKeyword{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Article{},
		&entities.Author{},
		&entities.Keyword{},
	)
	require.NoError(t, err)

	repo := NewRepository(db, authors.NewRepository(db), keywords.NewRepository(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func sampleArticle(doi string, keywordNames ...string) entities.Article {
	article := entities.Article{
		DOI:             doi,
		Title:           "Article " + doi,
		PublicationYear: 2023,
		Abstract:        "An abstract for " + doi,
		Authors: []entities.Author{
			{FirstName: "Jane", LastName: "Doe", Affiliation: "Example University"},
		},
	}
	for _, name := range keywordNames {
		article.Keywords = append(article.Keywords, entities.Keyword{Keyword: name})
	}
	return article
}

func TestRepository_CreateAndGetByDOI(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	article := &entities.Article{
		DOI:             "10.1000/create.1",
		Title:           "Molecular Dynamics at Scale",
		PublicationYear: 2021,
		Abstract:        "A study of long-timescale simulations.",
	}
	err := repo.Create(article)
	require.NoError(t, err)

	retrieved, err := repo.GetByDOI("10.1000/create.1")
	require.NoError(t, err)
	assert.Equal(t, "Molecular Dynamics at Scale", retrieved.Title)
	assert.Equal(t, 2021, retrieved.PublicationYear)
	assert.False(t, retrieved.CreatedAt.IsZero())
}

func TestRepository_Create_IgnoresAttachedAssociations(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	article := sampleArticle("10.1000/assoc.1", "catalysis")
	err := repo.Create(&article)
	require.NoError(t, err)

	// Only the article row is written; associations go through Archive.
	retrieved, err := repo.GetByDOI("10.1000/assoc.1")
	require.NoError(t, err)
	assert.Empty(t, retrieved.Authors)
	assert.Empty(t, retrieved.Keywords)
}

func TestRepository_GetByDOI_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByDOI("10.1000/absent")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Archive_StoresArticleWithAssociations(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	article := entities.Article{
		DOI:             "10.1000/archive.1",
		Title:           "Graph Neural Networks for Reaction Prediction",
		PublicationYear: 2022,
		Authors: []entities.Author{
			{FirstName: "Wei", LastName: "Chen", Affiliation: "ETH Zurich"},
			{FirstName: "Priya", LastName: "Natarajan", Affiliation: "ETH Zurich"},
		},
		Keywords: []entities.Keyword{
			{Keyword: "Machine Learning"},
			{Keyword: "organic chemistry"},
		},
	}

	result, err := repo.Archive([]entities.Article{article})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ArticlesProcessed)
	assert.Equal(t, 1, result.ArticlesCreated)
	assert.Zero(t, result.ArticlesFailed)
	assert.Empty(t, result.Errors)

	retrieved, err := repo.GetByDOI("10.1000/archive.1")
	require.NoError(t, err)
	assert.Len(t, retrieved.Authors, 2)
	require.Len(t, retrieved.Keywords, 2)

	// Keywords come back normalized.
	names := []string{retrieved.Keywords[0].Keyword, retrieved.Keywords[1].Keyword}
	assert.Contains(t, names, "machine learning")
	assert.Contains(t, names, "organic chemistry")
}

func TestRepository_Archive_DuplicateDOIFailsSecondInsert(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	first := sampleArticle("10.1000/dup.1", "thermodynamics")
	result, err := repo.Archive([]entities.Article{first})
	require.NoError(t, err)
	require.Equal(t, 1, result.ArticlesCreated)

	duplicate := sampleArticle("10.1000/dup.1", "thermodynamics")
	result, err = repo.Archive([]entities.Article{duplicate})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ArticlesProcessed)
	assert.Zero(t, result.ArticlesCreated)
	assert.Equal(t, 1, result.ArticlesFailed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "10.1000/dup.1")

	// The original row is untouched.
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Archive_FailureDoesNotAbortBatch(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Archive([]entities.Article{sampleArticle("10.1000/batch.1", "kinetics")})
	require.NoError(t, err)

	batch := []entities.Article{
		sampleArticle("10.1000/batch.1", "kinetics"), // duplicate
		sampleArticle("10.1000/batch.2", "kinetics"),
	}
	result, err := repo.Archive(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ArticlesProcessed)
	assert.Equal(t, 1, result.ArticlesCreated)
	assert.Equal(t, 1, result.ArticlesFailed)

	// The article after the failure still made it in.
	_, err = repo.GetByDOI("10.1000/batch.2")
	assert.NoError(t, err)
}

func TestRepository_Archive_SharedEntitiesAreDeduplicated(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	batch := []entities.Article{
		{
			DOI:   "10.1000/shared.1",
			Title: "First",
			Authors: []entities.Author{
				{FirstName: "Grace", LastName: "Hopper", Affiliation: "Yale University"},
			},
			Keywords: []entities.Keyword{{Keyword: "AI"}},
		},
		{
			DOI:   "10.1000/shared.2",
			Title: "Second",
			Authors: []entities.Author{
				{FirstName: "Grace", LastName: "Hopper", Affiliation: "Yale University"},
			},
			Keywords: []entities.Keyword{{Keyword: "ai"}},
		},
	}

	result, err := repo.Archive(batch)
	require.NoError(t, err)
	require.Equal(t, 2, result.ArticlesCreated)

	// One author row and one keyword row back both articles.
	var authorCount, keywordCount int64
	require.NoError(t, repo.db.Model(&entities.Author{}).Count(&authorCount).Error)
	require.NoError(t, repo.db.Model(&entities.Keyword{}).Count(&keywordCount).Error)
	assert.Equal(t, int64(1), authorCount)
	assert.Equal(t, int64(1), keywordCount)

	matches, err := repo.SearchByKeyword("ai")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestRepository_Archive_RepeatedKeywordOnOneArticle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	// The same keyword twice on one article must not fail the article.
	article := sampleArticle("10.1000/rep.1", "Catalysis", "catalysis")
	result, err := repo.Archive([]entities.Article{article})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ArticlesCreated)
	assert.Zero(t, result.ArticlesFailed)

	retrieved, err := repo.GetByDOI("10.1000/rep.1")
	require.NoError(t, err)
	assert.Len(t, retrieved.Keywords, 1)
}

func TestRepository_SearchByKeyword_Substring(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	batch := []entities.Article{
		sampleArticle("10.1000/search.1", "chemoinformatics", "drug discovery"),
		sampleArticle("10.1000/search.2", "drug delivery"),
		sampleArticle("10.1000/search.3", "databases"),
	}
	result, err := repo.Archive(batch)
	require.NoError(t, err)
	require.Equal(t, 3, result.ArticlesCreated)

	matches, err := repo.SearchByKeyword("drug")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	dois := []string{matches[0].DOI, matches[1].DOI}
	assert.Contains(t, dois, "10.1000/search.1")
	assert.Contains(t, dois, "10.1000/search.2")

	// Associations ride along on search results.
	assert.NotEmpty(t, matches[0].Keywords)
	assert.NotEmpty(t, matches[0].Authors)
}

func TestRepository_SearchByKeyword_CaseInsensitive(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Archive([]entities.Article{sampleArticle("10.1000/case.1", "Drug Discovery")})
	require.NoError(t, err)

	matches, err := repo.SearchByKeyword("DRUG")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRepository_SearchByKeyword_DeduplicatesArticles(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Two keywords on the same article both match the query.
	_, err := repo.Archive([]entities.Article{
		sampleArticle("10.1000/dedupe.1", "drug discovery", "drug delivery"),
	})
	require.NoError(t, err)

	matches, err := repo.SearchByKeyword("drug")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRepository_SearchByKeyword_NoMatches(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Archive([]entities.Article{sampleArticle("10.1000/none.1", "databases")})
	require.NoError(t, err)

	matches, err := repo.SearchByKeyword("astronomy")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRepository_SearchByTitle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Article{DOI: "10.1000/title.1", Title: "Advances in Protein Folding"}))
	require.NoError(t, repo.Create(&entities.Article{DOI: "10.1000/title.2", Title: "Protein Docking Benchmarks"}))
	require.NoError(t, repo.Create(&entities.Article{DOI: "10.1000/title.3", Title: "Solvent Effects"}))

	matches, err := repo.SearchByTitle("protein")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestRepository_GetAll_Pagination(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for _, doi := range []string{"10.1000/page.1", "10.1000/page.2", "10.1000/page.3"} {
		require.NoError(t, repo.Create(&entities.Article{DOI: doi, Title: "Paged " + doi}))
	}

	all, err := repo.GetAll(0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := repo.GetAll(2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := repo.GetAll(2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestRepository_ForEachByKeyword(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	batch := []entities.Article{
		sampleArticle("10.1000/walk.1", "simulation"),
		sampleArticle("10.1000/walk.2", "simulation"),
		sampleArticle("10.1000/walk.3", "simulation"),
		sampleArticle("10.1000/walk.4", "databases"),
	}
	result, err := repo.Archive(batch)
	require.NoError(t, err)
	require.Equal(t, 4, result.ArticlesCreated)

	var seen []string
	err = repo.ForEachByKeyword("simulation", 2, func(a entities.Article) error {
		seen = append(seen, a.DOI)
		assert.NotEmpty(t, a.Keywords)
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"10.1000/walk.1", "10.1000/walk.2", "10.1000/walk.3"}, seen)
}

func TestRepository_ForEachByKeyword_StopsOnError(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Archive([]entities.Article{
		sampleArticle("10.1000/stop.1", "simulation"),
		sampleArticle("10.1000/stop.2", "simulation"),
	})
	require.NoError(t, err)

	stop := errors.New("enough")
	calls := 0
	err = repo.ForEachByKeyword("simulation", 1, func(entities.Article) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Archive([]entities.Article{sampleArticle("10.1000/del.1", "catalysis")})
	require.NoError(t, err)

	err = repo.Delete("10.1000/del.1")
	require.NoError(t, err)

	_, err = repo.GetByDOI("10.1000/del.1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Association rows are gone; the keyword row stays behind as an orphan.
	var linkCount, keywordCount int64
	require.NoError(t, repo.db.Table("article_keywords").Count(&linkCount).Error)
	require.NoError(t, repo.db.Model(&entities.Keyword{}).Count(&keywordCount).Error)
	assert.Zero(t, linkCount)
	assert.Equal(t, int64(1), keywordCount)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Delete("10.1000/never.existed")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Exists(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Article{DOI: "10.1000/exists.1", Title: "Here"}))

	exists, err := repo.Exists("10.1000/exists.1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists("10.1000/exists.2")
	require.NoError(t, err)
	assert.False(t, exists)
}
