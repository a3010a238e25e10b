package badger

import (
	"context"
	"testing"

	"github.com/allmba/ideas-portal/internal/common"
	"github.com/allmba/ideas-portal/internal/config"
	"github.com/allmba/ideas-portal/internal/models"
)

func setupTestDB(t *testing.T) (*BadgerDB, func()) {
	t.Helper()

	dir := t.TempDir()
	logger := common.NewSilentLogger()

	cfg := &config.BadgerConfig{Path: dir}
	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}

func testCollection(date string) *models.IdeaCollection {
	return &models.IdeaCollection{
		Date: date,
		Ideas: []models.Idea{
			{Title: "Momentum play", Type: "Stock", Asset: "AAPL", Market: "US"},
			{Title: "Yield hedge", Type: "ETF", Asset: "TLT"},
		},
		DataSources: map[string]string{
			"Stock Data": "Alpha Vantage, Twelve Data, and Finnhub APIs",
		},
	}
}

func TestIdeaArchive_SaveAndLoad(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	archive := NewIdeaArchive(db, common.NewSilentLogger())
	ctx := context.Background()

	if err := archive.SaveCollection(ctx, testCollection("2024-05-01")); err != nil {
		t.Fatalf("SaveCollection failed: %v", err)
	}

	coll, err := archive.Collection(ctx, "2024-05-01")
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if len(coll.Ideas) != 2 {
		t.Errorf("expected 2 ideas, got %d", len(coll.Ideas))
	}
	if coll.Ideas[0].Asset != "AAPL" {
		t.Errorf("unexpected first idea: %+v", coll.Ideas[0])
	}
	if coll.DataSources["Stock Data"] == "" {
		t.Error("data sources not round-tripped")
	}
}

func TestIdeaArchive_SaveReplacesExisting(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	archive := NewIdeaArchive(db, common.NewSilentLogger())
	ctx := context.Background()

	if err := archive.SaveCollection(ctx, testCollection("2024-05-01")); err != nil {
		t.Fatalf("SaveCollection failed: %v", err)
	}

	updated := testCollection("2024-05-01")
	updated.Ideas = updated.Ideas[:1]
	if err := archive.SaveCollection(ctx, updated); err != nil {
		t.Fatalf("second SaveCollection failed: %v", err)
	}

	coll, err := archive.Collection(ctx, "2024-05-01")
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if len(coll.Ideas) != 1 {
		t.Errorf("expected replacement, got %d ideas", len(coll.Ideas))
	}
}

func TestIdeaArchive_SaveRejectsMissingDate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	archive := NewIdeaArchive(db, common.NewSilentLogger())

	if err := archive.SaveCollection(context.Background(), &models.IdeaCollection{}); err == nil {
		t.Error("expected error for collection without date")
	}
	if err := archive.SaveCollection(context.Background(), nil); err == nil {
		t.Error("expected error for nil collection")
	}
}

func TestIdeaArchive_CollectionNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	archive := NewIdeaArchive(db, common.NewSilentLogger())

	if _, err := archive.Collection(context.Background(), "1999-01-01"); err == nil {
		t.Error("expected error for unknown date")
	}
}

func TestIdeaArchive_DatesSortedDescending(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	archive := NewIdeaArchive(db, common.NewSilentLogger())
	ctx := context.Background()

	for _, date := range []string{"2024-04-30", "2024-05-02", "2024-05-01"} {
		if err := archive.SaveCollection(ctx, testCollection(date)); err != nil {
			t.Fatalf("SaveCollection %s failed: %v", date, err)
		}
	}

	dates, err := archive.Dates(ctx)
	if err != nil {
		t.Fatalf("Dates failed: %v", err)
	}
	want := []string{"2024-05-02", "2024-05-01", "2024-04-30"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %v", len(want), dates)
	}
	for i, d := range want {
		if dates[i] != d {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], d)
		}
	}
}

func TestIdeaArchive_DatesEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	archive := NewIdeaArchive(db, common.NewSilentLogger())

	dates, err := archive.Dates(context.Background())
	if err != nil {
		t.Fatalf("Dates failed: %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("expected no dates, got %v", dates)
	}
}
