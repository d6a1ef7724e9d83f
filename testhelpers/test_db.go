package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"quiz-portal-system/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Game{},
		&models.Play{},
		&models.PlayLevel{},
		&models.GameBestScore{},
	); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	return db
}

// SeedGame inserts one catalog game and returns it.
func SeedGame(t *testing.T, db *gorm.DB, code, name string) *models.Game {
	t.Helper()

	game := &models.Game{Code: code, Name: name}
	if err := db.Create(game).Error; err != nil {
		panic(fmt.Sprintf("failed to seed game %q: %v", code, err))
	}
	return game
}

// SeedUser inserts one user and returns it.
func SeedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "hash"}
	if err := db.Create(user).Error; err != nil {
		panic(fmt.Sprintf("failed to seed user %q: %v", username, err))
	}
	return user
}
