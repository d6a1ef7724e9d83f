package services

import (
	"testing"

	"quiz-portal-system/models"
	"quiz-portal-system/testhelpers"
)

func TestCatalogService_SeedGames(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	catalog := NewCatalogService(db)

	if err := catalog.SeedGames(); err != nil {
		t.Fatalf("SeedGames returned error: %v", err)
	}
	// a second run must not duplicate
	if err := catalog.SeedGames(); err != nil {
		t.Fatalf("second SeedGames returned error: %v", err)
	}

	var count int64
	db.Model(&models.Game{}).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 seeded games, got %d", count)
	}

	for _, code := range []string{"math", "emoji", "geo"} {
		var game models.Game
		if err := db.Where("code = ?", code).First(&game).Error; err != nil {
			t.Fatalf("expected game %q in catalog: %v", code, err)
		}
	}
}

func TestCatalogService_BestScores(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	catalog := NewCatalogService(db)
	plays := NewPlayService(db, DefaultLevelConfig)
	scores := NewScoreService(db, DefaultLevelConfig)

	if err := catalog.SeedGames(); err != nil {
		t.Fatalf("SeedGames returned error: %v", err)
	}
	user := testhelpers.SeedUser(t, db, "alice")

	finish := func(t *testing.T, perLevel int) {
		t.Helper()
		play, err := plays.StartPlay(user.ID, "math")
		if err != nil {
			t.Fatalf("StartPlay returned error: %v", err)
		}
		for _, level := range DefaultLevelConfig.Order {
			if _, err := scores.SubmitLevel(play.ID, user.ID, "math", level, perLevel, 10); err != nil {
				t.Fatalf("SubmitLevel(%s) returned error: %v", level, err)
			}
		}
	}
	finish(t, 30) // total 90
	finish(t, 50) // total 150

	if err := catalog.RefreshBestScores(); err != nil {
		t.Fatalf("RefreshBestScores returned error: %v", err)
	}
	// refresh must upsert, not insert twice
	if err := catalog.RefreshBestScores(); err != nil {
		t.Fatalf("second RefreshBestScores returned error: %v", err)
	}

	var snaps []models.GameBestScore
	if err := db.Where("user_id = ?", user.ID).Find(&snaps).Error; err != nil {
		t.Fatalf("failed to load snapshots: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("expected one snapshot row, got %d", len(snaps))
	}
	if snaps[0].BestTotal != 150 {
		t.Fatalf("expected best total 150, got %d", snaps[0].BestTotal)
	}

	entries, err := catalog.Dashboard(user.ID)
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 catalog entries, got %d", len(entries))
	}
	for _, entry := range entries {
		switch entry.Code {
		case "math":
			if entry.BestTotal == nil || *entry.BestTotal != 150 {
				t.Fatalf("expected math best 150, got %v", entry.BestTotal)
			}
		default:
			if entry.BestTotal != nil {
				t.Fatalf("expected no best for %q, got %v", entry.Code, entry.BestTotal)
			}
		}
	}
}
