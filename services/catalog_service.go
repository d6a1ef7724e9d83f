package services

import (
	"log"

	"quiz-portal-system/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService serves the game catalog and the per-game best scores that
// back the dashboard.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// DashboardEntry is one catalog game plus the caller's best completed total
// on it, if any.
type DashboardEntry struct {
	models.Game
	BestTotal *int `json:"best_total,omitempty"`
}

// SeedGames inserts the static catalog. Codes are slugs of the display
// names. Idempotent: already-seeded games are left untouched.
func (s *CatalogService) SeedGames() error {
	seeds := []struct{ Name, Description string }{
		{"Math", "Beat the clock on rapid-fire arithmetic."},
		{"Emoji", "Guess the phrase behind the emoji string."},
		{"Geo", "Name capitals and flags before the timer runs out."},
	}
	for _, seed := range seeds {
		game := models.Game{Code: slug.Make(seed.Name), Name: seed.Name, Description: seed.Description}
		if err := s.DB.Where("code = ?", game.Code).FirstOrCreate(&game).Error; err != nil {
			return err
		}
	}
	return nil
}

// Dashboard lists the catalog in seeding order with the caller's best totals
// from the snapshot table.
func (s *CatalogService) Dashboard(userID uint) ([]DashboardEntry, error) {
	var games []models.Game
	if err := s.DB.Order("id ASC").Find(&games).Error; err != nil {
		return nil, err
	}

	var snaps []models.GameBestScore
	if err := s.DB.Where("user_id = ?", userID).Find(&snaps).Error; err != nil {
		return nil, err
	}
	best := make(map[uint]int, len(snaps))
	for _, snap := range snaps {
		best[snap.GameID] = snap.BestTotal
	}

	entries := make([]DashboardEntry, 0, len(games))
	for _, game := range games {
		entry := DashboardEntry{Game: game}
		if total, ok := best[game.ID]; ok {
			t := total
			entry.BestTotal = &t
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RefreshBestScores recomputes the best completed total per (game, user) and
// upserts the snapshot rows.
func (s *CatalogService) RefreshBestScores() error {
	type bestRow struct {
		GameID uint
		UserID uint
		Best   int
	}
	var rows []bestRow
	err := s.DB.Model(&models.Play{}).
		Select("game_id, user_id, MAX(total_score) AS best").
		Where("status = ? AND total_score IS NOT NULL", models.PlayStatusCompleted).
		Group("game_id").Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		snap := models.GameBestScore{GameID: row.GameID, UserID: row.UserID, BestTotal: row.Best}
		err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"best_total", "updated_at"}),
		}).Create(&snap).Error
		if err != nil {
			log.Printf("[BestScores] upsert failed for game=%d user=%d: %v", row.GameID, row.UserID, err)
			return err
		}
	}
	return nil
}
