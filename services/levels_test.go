package services

import (
	"testing"

	"quiz-portal-system/models"
)

func TestLevelConfig_Order(t *testing.T) {
	cfg := DefaultLevelConfig

	if got := cfg.First(); got != models.LevelLow {
		t.Fatalf("expected first level %q, got %q", models.LevelLow, got)
	}
	if got := cfg.Last(); got != models.LevelHigh {
		t.Fatalf("expected last level %q, got %q", models.LevelHigh, got)
	}

	if cfg.Index(models.LevelMedium) != 1 {
		t.Fatalf("expected medium at index 1, got %d", cfg.Index(models.LevelMedium))
	}
	if cfg.Index("extreme") != -1 {
		t.Fatalf("expected unknown level index -1, got %d", cfg.Index("extreme"))
	}
	if cfg.Known("extreme") {
		t.Fatalf("expected extreme to be unknown")
	}
}

func TestLevelConfig_Neighbors(t *testing.T) {
	cfg := DefaultLevelConfig

	t.Run("previous", func(t *testing.T) {
		if _, ok := cfg.Previous(models.LevelLow); ok {
			t.Fatalf("first level must have no previous")
		}
		prev, ok := cfg.Previous(models.LevelHigh)
		if !ok || prev != models.LevelMedium {
			t.Fatalf("expected previous of high to be medium, got %q ok=%t", prev, ok)
		}
	})

	t.Run("next", func(t *testing.T) {
		next, ok := cfg.Next(models.LevelLow)
		if !ok || next != models.LevelMedium {
			t.Fatalf("expected next of low to be medium, got %q ok=%t", next, ok)
		}
		if _, ok := cfg.Next(models.LevelHigh); ok {
			t.Fatalf("last level must have no next")
		}
		if _, ok := cfg.Next("extreme"); ok {
			t.Fatalf("unknown level must have no next")
		}
	})
}

func TestLevelConfig_Settings(t *testing.T) {
	cfg := DefaultLevelConfig

	if cfg.TimeLimitSec[models.LevelLow] != 60 || cfg.QuestionCount[models.LevelLow] != 5 {
		t.Fatalf("unexpected low settings: %d/%d",
			cfg.TimeLimitSec[models.LevelLow], cfg.QuestionCount[models.LevelLow])
	}
	if cfg.TimeLimitSec[models.LevelHigh] != 30 || cfg.QuestionCount[models.LevelHigh] != 7 {
		t.Fatalf("unexpected high settings: %d/%d",
			cfg.TimeLimitSec[models.LevelHigh], cfg.QuestionCount[models.LevelHigh])
	}
}
