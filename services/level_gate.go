package services

import (
	"errors"

	"quiz-portal-system/models"

	"gorm.io/gorm"
)

// LevelGate decides whether a play may enter a given level. Levels unlock
// strictly in order: a level is enterable only when the one immediately
// before it is completed. Re-visiting a level at or behind that frontier is
// always allowed. The gate only reads; it never mutates.
type LevelGate struct {
	Config *LevelConfig
}

func NewLevelGate(cfg *LevelConfig) *LevelGate {
	return &LevelGate{Config: cfg}
}

// GateDecision is the outcome of a gate check. When the play is denied, Err
// carries the taxonomy kind and, for a locked level, BlockingLevel names the
// level that must be finished first.
type GateDecision struct {
	Allowed       bool
	Err           error
	BlockingLevel string
}

// CanEnter checks play status and the completion state of the preceding
// level. db may be a transaction handle so submits and views share the gate.
func (g *LevelGate) CanEnter(db *gorm.DB, play *models.Play, level string) (GateDecision, error) {
	if !g.Config.Known(level) {
		return GateDecision{Err: ErrUnknownLevel}, nil
	}
	if !play.Active() {
		return GateDecision{Err: ErrPlayNotActive}, nil
	}

	prev, ok := g.Config.Previous(level)
	if !ok {
		// first level is always open on an active play
		return GateDecision{Allowed: true}, nil
	}

	var row models.PlayLevel
	err := db.Where("play_id = ? AND level = ?", play.ID, prev).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return GateDecision{Err: ErrLevelLocked, BlockingLevel: prev}, nil
	}
	if err != nil {
		return GateDecision{}, err
	}
	if row.State() != models.LevelCompleted {
		return GateDecision{Err: ErrLevelLocked, BlockingLevel: prev}, nil
	}
	return GateDecision{Allowed: true}, nil
}
