package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jcurry/wa-firewatch/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	return db
}

func testCounty(name string, score float64, category models.RiskCategory) *models.County {
	return &models.County{
		Name: name,
		Metrics: models.CountyMetrics{
			County:        name,
			HeatStress:    score,
			DroughtStress: score,
			FireHistory:   score,
			WUIExposure:   score,
		},
		ClimateTrend: models.TrendStable,
		Assessment:   models.RiskAssessment{Score: score, Category: category},
		LoadedAt:     time.Now(),
	}
}

func TestSQLiteDB_UpsertAndGetCounty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	c := testCounty("CHELAN", 68.2, models.RiskCategoryCritical)
	c.Population = 79074
	c.ClimateTrend = models.TrendWarmingDrying

	if err := db.UpsertCounty(ctx, c); err != nil {
		t.Fatalf("UpsertCounty failed: %v", err)
	}

	got, err := db.GetCounty(ctx, "chelan") // lookup is case-insensitive
	if err != nil {
		t.Fatalf("GetCounty failed: %v", err)
	}
	if got.Assessment.Category != models.RiskCategoryCritical {
		t.Errorf("expected Critical, got %s", got.Assessment.Category)
	}
	if got.Population != 79074 {
		t.Errorf("expected population 79074, got %d", got.Population)
	}
	if got.ClimateTrend != models.TrendWarmingDrying {
		t.Errorf("expected Warming & Drying trend, got %q", got.ClimateTrend)
	}
	if got.Metrics.County != "CHELAN" {
		t.Errorf("metrics county not backfilled: %q", got.Metrics.County)
	}
}

func TestSQLiteDB_UpsertReplacesRow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	if err := db.UpsertCounty(ctx, testCounty("KING", 31, models.RiskCategoryLow)); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := db.UpsertCounty(ctx, testCounty("KING", 58, models.RiskCategoryHigh)); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := db.GetCounty(ctx, "KING")
	if err != nil {
		t.Fatalf("GetCounty failed: %v", err)
	}
	if got.Assessment.Score != 58 {
		t.Errorf("expected refreshed score 58, got %v", got.Assessment.Score)
	}

	names, err := db.CountyNames(ctx)
	if err != nil {
		t.Fatalf("CountyNames failed: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("expected 1 county after upsert, got %d", len(names))
	}
}

func TestSQLiteDB_GetCounty_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetCounty(context.Background(), "NOWHERE")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteDB_ListCounties_Filters(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	seed := []*models.County{
		testCounty("CHELAN", 68, models.RiskCategoryCritical),
		testCounty("OKANOGAN", 72, models.RiskCategoryCritical),
		testCounty("SPOKANE", 58, models.RiskCategoryHigh),
		testCounty("KING", 31, models.RiskCategoryLow),
	}
	seed[3].Population = 2269675
	for _, c := range seed {
		if err := db.UpsertCounty(ctx, c); err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
	}

	// Category filter
	results, err := db.ListCounties(ctx, Filter{Categories: []models.RiskCategory{models.RiskCategoryCritical}})
	if err != nil {
		t.Fatalf("ListCounties failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 critical counties, got %d", len(results))
	}

	// MinCategory includes the named level and above
	high := models.RiskCategoryHigh
	results, err = db.ListCounties(ctx, Filter{MinCategory: &high})
	if err != nil {
		t.Fatalf("ListCounties failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 counties at High or above, got %d", len(results))
	}

	// Score range
	minScore, maxScore := 55.0, 70.0
	results, err = db.ListCounties(ctx, Filter{MinScore: &minScore, MaxScore: &maxScore})
	if err != nil {
		t.Fatalf("ListCounties failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 counties in [55,70], got %d", len(results))
	}

	// Population floor
	minPop := int64(1000000)
	results, err = db.ListCounties(ctx, Filter{MinPopulation: &minPop})
	if err != nil {
		t.Fatalf("ListCounties failed: %v", err)
	}
	if len(results) != 1 || results[0].Name != "KING" {
		t.Errorf("expected only KING above 1M population, got %v", results)
	}

	// Results ordered by score descending
	results, err = db.ListCounties(ctx, Filter{})
	if err != nil {
		t.Fatalf("ListCounties failed: %v", err)
	}
	if results[0].Name != "OKANOGAN" {
		t.Errorf("expected OKANOGAN first, got %s", results[0].Name)
	}

	// Limit
	results, err = db.ListCounties(ctx, Filter{Limit: 2})
	if err != nil {
		t.Fatalf("ListCounties failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 counties with limit, got %d", len(results))
	}
}

func TestSQLiteDB_ListCounties_Region(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	for _, c := range []*models.County{
		testCounty("SPOKANE", 58, models.RiskCategoryHigh), // eastern
		testCounty("YAKIMA", 62, models.RiskCategoryHigh),  // eastern
		testCounty("KING", 31, models.RiskCategoryLow),     // western
	} {
		if err := db.UpsertCounty(ctx, c); err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
	}

	eastern, err := db.ListCounties(ctx, Filter{Region: "eastern"})
	if err != nil {
		t.Fatalf("ListCounties failed: %v", err)
	}
	if len(eastern) != 2 {
		t.Errorf("expected 2 eastern counties, got %d", len(eastern))
	}

	western, err := db.ListCounties(ctx, Filter{Region: "western"})
	if err != nil {
		t.Fatalf("ListCounties failed: %v", err)
	}
	if len(western) != 1 || western[0].Name != "KING" {
		t.Errorf("expected only KING in western region, got %v", western)
	}
}

func TestSQLiteDB_Declarations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	decls := []*models.Declaration{
		{Number: "5541", Title: "GRAY FIRE", County: "SPOKANE", Date: time.Date(2023, 8, 19, 0, 0, 0, 0, time.UTC), CreatedAt: time.Now()},
		{Number: "4539", Title: "WILDFIRES", County: "OKANOGAN", Date: time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), CreatedAt: time.Now()},
		{Number: "1183", Title: "FIRESTORM", County: "SPOKANE", Date: time.Date(1991, 10, 21, 0, 0, 0, 0, time.UTC), CreatedAt: time.Now()},
	}
	for _, d := range decls {
		if err := db.UpsertDeclaration(ctx, d); err != nil {
			t.Fatalf("UpsertDeclaration failed: %v", err)
		}
	}

	// County filter
	results, err := db.ListDeclarations(ctx, DeclFilter{County: "spokane"})
	if err != nil {
		t.Fatalf("ListDeclarations failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 SPOKANE declarations, got %d", len(results))
	}
	// Newest first
	if results[0].Number != "5541" {
		t.Errorf("expected newest declaration first, got %s", results[0].Number)
	}

	// Since filter
	since := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	results, err = db.ListDeclarations(ctx, DeclFilter{Since: &since})
	if err != nil {
		t.Fatalf("ListDeclarations failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 declarations since 2020, got %d", len(results))
	}

	// Upsert replaces, not duplicates
	if err := db.UpsertDeclaration(ctx, decls[0]); err != nil {
		t.Fatalf("re-upsert failed: %v", err)
	}
	results, err = db.ListDeclarations(ctx, DeclFilter{})
	if err != nil {
		t.Fatalf("ListDeclarations failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 declarations after re-upsert, got %d", len(results))
	}
}
