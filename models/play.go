package models

import "time"

const (
	PlayStatusActive    = "active"
	PlayStatusCompleted = "completed"
)

// Level names. Their order and per-level settings live in the level
// configuration, not here.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// LevelState is the explicit progress tag for one difficulty tier.
// NotStarted means no play_levels row exists yet.
type LevelState string

const (
	LevelNotStarted LevelState = "not_started"
	LevelInProgress LevelState = "in_progress"
	LevelCompleted  LevelState = "completed"
)

// Play is one attempt at a game by a user, spanning all difficulty levels.
// TotalScore is set exactly when Status flips to completed; the flip happens
// once, on submission of the highest level.
type Play struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	GameID      uint       `json:"game_id" gorm:"index;not null"`
	Status      string     `json:"status" gorm:"type:varchar(16);default:'active';check:status IN ('active','completed')"`
	TotalScore  *int       `json:"total_score,omitempty"`
	StartedAt   time.Time  `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (p *Play) Active() bool { return p.Status == PlayStatusActive }

// PlayLevel records one difficulty tier inside a play. Exactly one row per
// (play_id, level), created lazily on the first visit; Score, DurationSeconds
// and CompletedAt are set together on submission.
type PlayLevel struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	PlayID          uint       `json:"play_id" gorm:"uniqueIndex:idx_play_level;not null"`
	Level           string     `json:"level" gorm:"uniqueIndex:idx_play_level;type:varchar(16);not null"`
	Score           *int       `json:"score,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	StartedAt       time.Time  `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// State reports the explicit progress tag for this row. A nil receiver stands
// for a level that was never visited.
func (pl *PlayLevel) State() LevelState {
	switch {
	case pl == nil:
		return LevelNotStarted
	case pl.CompletedAt != nil:
		return LevelCompleted
	default:
		return LevelInProgress
	}
}
