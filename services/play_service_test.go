package services

import (
	"errors"
	"testing"

	"quiz-portal-system/models"
	"quiz-portal-system/testhelpers"

	"gorm.io/gorm"
)

type playFixture struct {
	db    *gorm.DB
	plays *PlayService
	user  *models.User
	game  *models.Game
}

func newPlayFixture(t *testing.T) *playFixture {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	return &playFixture{
		db:    db,
		plays: NewPlayService(db, DefaultLevelConfig),
		user:  testhelpers.SeedUser(t, db, "alice"),
		game:  testhelpers.SeedGame(t, db, "math", "Math"),
	}
}

func TestPlayService_StartPlay(t *testing.T) {
	f := newPlayFixture(t)

	t.Run("creates active play", func(t *testing.T) {
		play, err := f.plays.StartPlay(f.user.ID, "math")
		if err != nil {
			t.Fatalf("StartPlay returned error: %v", err)
		}
		if play.ID == 0 {
			t.Fatalf("expected play ID to be set")
		}
		if play.Status != models.PlayStatusActive {
			t.Fatalf("expected status active, got %q", play.Status)
		}
		if play.TotalScore != nil {
			t.Fatalf("expected nil total score on a fresh play")
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		if _, err := f.plays.StartPlay(f.user.ID, "chess"); !errors.Is(err, ErrGameNotFound) {
			t.Fatalf("expected ErrGameNotFound, got %v", err)
		}
	})

	t.Run("second start is an independent attempt", func(t *testing.T) {
		first, err := f.plays.StartPlay(f.user.ID, "math")
		if err != nil {
			t.Fatalf("StartPlay returned error: %v", err)
		}
		second, err := f.plays.StartPlay(f.user.ID, "math")
		if err != nil {
			t.Fatalf("StartPlay returned error: %v", err)
		}
		if first.ID == second.ID {
			t.Fatalf("expected independent plays, both have id %d", first.ID)
		}
	})
}

func TestPlayService_EnterLevel(t *testing.T) {
	f := newPlayFixture(t)
	play, err := f.plays.StartPlay(f.user.ID, "math")
	if err != nil {
		t.Fatalf("StartPlay returned error: %v", err)
	}

	t.Run("grants first level with settings", func(t *testing.T) {
		res, err := f.plays.EnterLevel(play.ID, f.user.ID, "math", models.LevelLow)
		if err != nil {
			t.Fatalf("EnterLevel returned error: %v", err)
		}
		if res.View == nil {
			t.Fatalf("expected a level view, got blocking level %q", res.BlockingLevel)
		}
		if res.View.TimeLimitSec != 60 || res.View.QuestionCount != 5 {
			t.Fatalf("unexpected level settings: %d/%d", res.View.TimeLimitSec, res.View.QuestionCount)
		}
	})

	t.Run("level row creation is idempotent", func(t *testing.T) {
		if _, err := f.plays.EnterLevel(play.ID, f.user.ID, "math", models.LevelLow); err != nil {
			t.Fatalf("EnterLevel returned error: %v", err)
		}
		var count int64
		f.db.Model(&models.PlayLevel{}).
			Where("play_id = ? AND level = ?", play.ID, models.LevelLow).
			Count(&count)
		if count != 1 {
			t.Fatalf("expected exactly one play_levels row, got %d", count)
		}
	})

	t.Run("locked level points at the blocker", func(t *testing.T) {
		res, err := f.plays.EnterLevel(play.ID, f.user.ID, "math", models.LevelMedium)
		if err != nil {
			t.Fatalf("EnterLevel returned error: %v", err)
		}
		if res.View != nil {
			t.Fatalf("expected denial, got a view for medium")
		}
		if res.BlockingLevel != models.LevelLow {
			t.Fatalf("expected blocking level low, got %q", res.BlockingLevel)
		}
	})

	t.Run("unknown level", func(t *testing.T) {
		if _, err := f.plays.EnterLevel(play.ID, f.user.ID, "math", "extreme"); !errors.Is(err, ErrUnknownLevel) {
			t.Fatalf("expected ErrUnknownLevel, got %v", err)
		}
	})

	t.Run("missing play", func(t *testing.T) {
		if _, err := f.plays.EnterLevel(9999, f.user.ID, "math", models.LevelLow); !errors.Is(err, ErrPlayNotFound) {
			t.Fatalf("expected ErrPlayNotFound, got %v", err)
		}
	})

	t.Run("foreign user is rejected", func(t *testing.T) {
		mallory := testhelpers.SeedUser(t, f.db, "mallory")
		if _, err := f.plays.EnterLevel(play.ID, mallory.ID, "math", models.LevelLow); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("wrong game is rejected", func(t *testing.T) {
		testhelpers.SeedGame(t, f.db, "geo", "Geo")
		if _, err := f.plays.EnterLevel(play.ID, f.user.ID, "geo", models.LevelLow); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestPlayService_Result(t *testing.T) {
	f := newPlayFixture(t)
	scores := NewScoreService(f.db, DefaultLevelConfig)

	play, err := f.plays.StartPlay(f.user.ID, "math")
	if err != nil {
		t.Fatalf("StartPlay returned error: %v", err)
	}
	for _, sub := range []struct {
		level string
		score int
	}{
		{models.LevelLow, 40},
		{models.LevelMedium, 50},
		{models.LevelHigh, 60},
	} {
		if _, err := f.plays.EnterLevel(play.ID, f.user.ID, "math", sub.level); err != nil {
			t.Fatalf("EnterLevel(%s) returned error: %v", sub.level, err)
		}
		if _, err := scores.SubmitLevel(play.ID, f.user.ID, "math", sub.level, sub.score, 20); err != nil {
			t.Fatalf("SubmitLevel(%s) returned error: %v", sub.level, err)
		}
	}

	t.Run("owner sees ordered breakdown", func(t *testing.T) {
		view, err := f.plays.Result(play.ID, f.user.ID)
		if err != nil {
			t.Fatalf("Result returned error: %v", err)
		}
		if view.Play.Status != models.PlayStatusCompleted {
			t.Fatalf("expected completed play, got %q", view.Play.Status)
		}
		if view.Play.TotalScore == nil || *view.Play.TotalScore != 150 {
			t.Fatalf("expected total score 150, got %v", view.Play.TotalScore)
		}
		if len(view.Levels) != 3 {
			t.Fatalf("expected 3 level rows, got %d", len(view.Levels))
		}
		want := []string{models.LevelLow, models.LevelMedium, models.LevelHigh}
		for i, row := range view.Levels {
			if row.Level != want[i] {
				t.Fatalf("expected level %q at position %d, got %q", want[i], i, row.Level)
			}
			if row.State() != models.LevelCompleted {
				t.Fatalf("expected %q completed, got %q", row.Level, row.State())
			}
		}
	})

	t.Run("foreign user reads as not found", func(t *testing.T) {
		mallory := testhelpers.SeedUser(t, f.db, "mallory")
		if _, err := f.plays.Result(play.ID, mallory.ID); !errors.Is(err, ErrPlayNotFound) {
			t.Fatalf("expected ErrPlayNotFound, got %v", err)
		}
	})

	t.Run("missing play", func(t *testing.T) {
		if _, err := f.plays.Result(9999, f.user.ID); !errors.Is(err, ErrPlayNotFound) {
			t.Fatalf("expected ErrPlayNotFound, got %v", err)
		}
	})
}
