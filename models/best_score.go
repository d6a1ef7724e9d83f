package models

import "time"

// GameBestScore is a denormalized snapshot of a user's best completed total
// per game. Refreshed by the best-score scheduler, read by the dashboard.
type GameBestScore struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GameID    uint      `json:"game_id" gorm:"uniqueIndex:idx_game_user;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_game_user;not null"`
	BestTotal int       `json:"best_total"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
