package services

import (
	"fmt"
	"sort"
	"time"

	"quiz-portal-system/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// historyLabelLayout buckets completions to minute precision for the chart
// x-axis.
const historyLabelLayout = "2006-01-02 15:04"

// HistoryService builds the lifetime score history for charting. Read-only.
type HistoryService struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{DB: db}
}

// HistoryRow is one completed level of a completed play, as pulled for the
// history table.
type HistoryRow struct {
	GameCode        string    `json:"game_code"`
	GameName        string    `json:"game_name"`
	Level           string    `json:"level"`
	CompletedAt     time.Time `json:"completed_at"`
	Score           *int      `json:"score"`
	DurationSeconds *int      `json:"duration_seconds"`
}

// HistoryDataset is one chart series, aligned index-for-index with the
// shared label axis.
type HistoryDataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

type History struct {
	Labels   []string         `json:"labels"`
	Datasets []HistoryDataset `json:"datasets"`
	Rows     []HistoryRow     `json:"rows"`
}

// BuildHistory reads all completed levels of the user's completed plays and
// shapes them for a fixed-axis chart: one shared sorted label axis, one
// series per "game (Level)" pair. Two completions falling into the same
// minute for a series are summed; a series with no completion at a label
// gets an explicit 0 there rather than a gap.
func (s *HistoryService) BuildHistory(userID uint) (*History, error) {
	var rows []HistoryRow
	err := s.DB.Model(&models.PlayLevel{}).
		Select("games.code AS game_code, games.name AS game_name, play_levels.level, play_levels.completed_at, play_levels.score, play_levels.duration_seconds").
		Joins("JOIN plays ON plays.id = play_levels.play_id").
		Joins("JOIN games ON games.id = plays.game_id").
		Where("plays.user_id = ? AND plays.status = ? AND play_levels.completed_at IS NOT NULL",
			userID, models.PlayStatusCompleted).
		Order("play_levels.completed_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	labelSet := make(map[string]struct{})
	points := make(map[string]map[string]int)
	var seriesOrder []string

	for _, r := range rows {
		label := r.CompletedAt.Format(historyLabelLayout)
		labelSet[label] = struct{}{}

		key := fmt.Sprintf("%s (%s)", r.GameName, cases.Title(language.English).String(r.Level))
		if _, ok := points[key]; !ok {
			points[key] = make(map[string]int)
			seriesOrder = append(seriesOrder, key)
		}
		score := 0
		if r.Score != nil {
			score = *r.Score
		}
		points[key][label] += score
	}

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	datasets := make([]HistoryDataset, 0, len(seriesOrder))
	for _, key := range seriesOrder {
		data := make([]int, len(labels))
		for i, label := range labels {
			data[i] = points[key][label]
		}
		datasets = append(datasets, HistoryDataset{Label: key, Data: data})
	}

	return &History{Labels: labels, Datasets: datasets, Rows: rows}, nil
}
