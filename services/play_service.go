package services

import (
	"errors"
	"log"

	"quiz-portal-system/models"

	"gorm.io/gorm"
)

// PlayService owns the play lifecycle: starting new plays and admitting
// users into levels.
type PlayService struct {
	DB     *gorm.DB
	Config *LevelConfig
	Gate   *LevelGate
}

func NewPlayService(db *gorm.DB, cfg *LevelConfig) *PlayService {
	return &PlayService{DB: db, Config: cfg, Gate: NewLevelGate(cfg)}
}

// LevelView carries what the client needs to run a level: the countdown and
// the number of questions to serve.
type LevelView struct {
	PlayID        uint   `json:"play_id"`
	GameCode      string `json:"game_code"`
	Level         string `json:"level"`
	TimeLimitSec  int    `json:"time_limit_seconds"`
	QuestionCount int    `json:"question_count"`
}

// EnterResult is either a granted level view or a pointer at the level the
// caller must finish first. A locked level is a normal navigation outcome,
// not an error.
type EnterResult struct {
	View          *LevelView `json:"view,omitempty"`
	BlockingLevel string     `json:"blocking_level,omitempty"`
}

// PlayResultView is the finished-play summary: the play itself plus its
// per-level breakdown in ladder order.
type PlayResultView struct {
	Play   *models.Play       `json:"play"`
	Game   *models.Game       `json:"game"`
	Levels []models.PlayLevel `json:"levels"`
}

// StartPlay creates a fresh active play for the given game. Multiple
// simultaneous plays per (user, game) are allowed on purpose: each start is
// an independent history entry.
func (s *PlayService) StartPlay(userID uint, gameCode string) (*models.Play, error) {
	var game models.Game
	if err := s.DB.Where("code = ?", gameCode).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	play := &models.Play{UserID: userID, GameID: game.ID, Status: models.PlayStatusActive}
	if err := s.DB.Create(play).Error; err != nil {
		return nil, err
	}

	log.Printf("🎯 play %d started: user=%d game=%s", play.ID, userID, gameCode)
	return play, nil
}

// EnterLevel admits the user into a level of their play. On success the
// play_levels row is created lazily (idempotent: a second visit is a no-op)
// and the level view is returned; a locked level returns the blocking level
// instead.
func (s *PlayService) EnterLevel(playID, userID uint, gameCode, level string) (*EnterResult, error) {
	play, err := loadOwnedPlay(s.DB, playID, userID, gameCode)
	if err != nil {
		return nil, err
	}

	dec, err := s.Gate.CanEnter(s.DB, play, level)
	if err != nil {
		return nil, err
	}
	if !dec.Allowed {
		if errors.Is(dec.Err, ErrLevelLocked) {
			return &EnterResult{BlockingLevel: dec.BlockingLevel}, nil
		}
		return nil, dec.Err
	}

	var row models.PlayLevel
	err = s.DB.Where("play_id = ? AND level = ?", playID, level).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.PlayLevel{PlayID: playID, Level: level}
		if err := s.DB.Create(&row).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &EnterResult{View: &LevelView{
		PlayID:        playID,
		GameCode:      gameCode,
		Level:         level,
		TimeLimitSec:  s.Config.TimeLimitSec[level],
		QuestionCount: s.Config.QuestionCount[level],
	}}, nil
}

// Result returns the summary for a play the caller owns. A play owned by
// someone else reads as not found so nothing leaks.
func (s *PlayService) Result(playID, userID uint) (*PlayResultView, error) {
	var play models.Play
	if err := s.DB.First(&play, playID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayNotFound
		}
		return nil, err
	}
	if play.UserID != userID {
		return nil, ErrPlayNotFound
	}

	var game models.Game
	if err := s.DB.First(&game, play.GameID).Error; err != nil {
		return nil, err
	}

	var rows []models.PlayLevel
	if err := s.DB.Where("play_id = ?", playID).Find(&rows).Error; err != nil {
		return nil, err
	}
	ordered := make([]models.PlayLevel, 0, len(rows))
	for _, level := range s.Config.Order {
		for _, row := range rows {
			if row.Level == level {
				ordered = append(ordered, row)
			}
		}
	}

	return &PlayResultView{Play: &play, Game: &game, Levels: ordered}, nil
}

// loadOwnedPlay resolves the game by code and the play by id, enforcing that
// the play belongs to both the caller and the named game.
func loadOwnedPlay(db *gorm.DB, playID, userID uint, gameCode string) (*models.Play, error) {
	var game models.Game
	if err := db.Where("code = ?", gameCode).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	var play models.Play
	if err := db.First(&play, playID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayNotFound
		}
		return nil, err
	}

	if play.UserID != userID || play.GameID != game.ID {
		return nil, ErrForbidden
	}
	return &play, nil
}
