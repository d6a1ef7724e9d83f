// models/game.go
package models

// Game is a static catalog entry. Seeded at boot, immutable afterwards; plays
// reference it by id and clients address it by code.
type Game struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Code        string `json:"code" gorm:"uniqueIndex;not null"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`

	Timestamps
}
