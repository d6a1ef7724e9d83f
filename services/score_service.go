package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"quiz-portal-system/models"

	"gorm.io/gorm"
)

// ScoreService records level completions and advances or finalizes plays.
type ScoreService struct {
	DB     *gorm.DB
	Config *LevelConfig
	Gate   *LevelGate
}

func NewScoreService(db *gorm.DB, cfg *LevelConfig) *ScoreService {
	return &ScoreService{DB: db, Config: cfg, Gate: NewLevelGate(cfg)}
}

// NextStep tells the client where to go after a submission: the next level
// of the ladder, or the result page once the play is finished.
type NextStep struct {
	Finished  bool   `json:"finished"`
	PlayID    uint   `json:"play_id"`
	NextLevel string `json:"next_level,omitempty"`
}

// SubmitLevel writes score, duration and completion time onto the level row.
// Submits pass through the same gate as views, so a client cannot score a
// level it was never admitted into and cannot resubmit once the play is
// completed. Resubmitting an unlocked level while the play is active
// overwrites the prior values (last write wins, never accumulates).
//
// The final level additionally aggregates total_score over all level rows
// and flips the play to completed. The flip is guarded by status='active'
// inside the same transaction, so concurrent final submits finalize exactly
// once.
func (s *ScoreService) SubmitLevel(playID, userID uint, gameCode, level string, score, durationSeconds int) (*NextStep, error) {
	if !s.Config.Known(level) {
		return nil, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, level)
	}
	if score < 0 || durationSeconds < 0 {
		return nil, fmt.Errorf("%w: score and duration_seconds must be non-negative", ErrInvalidInput)
	}

	var step *NextStep
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		play, err := loadOwnedPlay(tx, playID, userID, gameCode)
		if err != nil {
			return err
		}

		dec, err := s.Gate.CanEnter(tx, play, level)
		if err != nil {
			return err
		}
		if !dec.Allowed {
			if errors.Is(dec.Err, ErrLevelLocked) {
				return fmt.Errorf("%w: finish %s first", ErrLevelLocked, dec.BlockingLevel)
			}
			return dec.Err
		}

		now := time.Now()

		var row models.PlayLevel
		err = tx.Where("play_id = ? AND level = ?", playID, level).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// submit without a prior view still starts the row
			row = models.PlayLevel{PlayID: playID, Level: level}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		row.Score = &score
		row.DurationSeconds = &durationSeconds
		row.CompletedAt = &now
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		if level != s.Config.Last() {
			next, _ := s.Config.Next(level)
			step = &NextStep{PlayID: playID, NextLevel: next}
			return nil
		}

		var total int
		if err := tx.Model(&models.PlayLevel{}).
			Where("play_id = ?", playID).
			Select("COALESCE(SUM(score), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Play{}).
			Where("id = ? AND status = ?", playID, models.PlayStatusActive).
			Updates(map[string]interface{}{
				"total_score":  total,
				"status":       models.PlayStatusCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}

		step = &NextStep{Finished: true, PlayID: playID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if step.Finished {
		log.Printf("🏁 play %d completed: user=%d game=%s", playID, userID, gameCode)
	}
	return step, nil
}
