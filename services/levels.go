package services

import "quiz-portal-system/models"

// LevelConfig fixes the difficulty ladder: a total order over levels plus the
// timer and question-count settings for each. Constructed once at boot and
// passed into the services that need it; never mutated afterwards.
type LevelConfig struct {
	Order         []string
	TimeLimitSec  map[string]int
	QuestionCount map[string]int
}

var DefaultLevelConfig = &LevelConfig{
	Order: []string{models.LevelLow, models.LevelMedium, models.LevelHigh},
	TimeLimitSec: map[string]int{
		models.LevelLow:    60,
		models.LevelMedium: 45,
		models.LevelHigh:   30,
	},
	QuestionCount: map[string]int{
		models.LevelLow:    5,
		models.LevelMedium: 6,
		models.LevelHigh:   7,
	},
}

// Index returns the position of level in the order, or -1 if unknown.
func (c *LevelConfig) Index(level string) int {
	for i, l := range c.Order {
		if l == level {
			return i
		}
	}
	return -1
}

func (c *LevelConfig) Known(level string) bool { return c.Index(level) >= 0 }

func (c *LevelConfig) First() string { return c.Order[0] }

func (c *LevelConfig) Last() string { return c.Order[len(c.Order)-1] }

// Previous returns the level immediately before the given one. The second
// return is false for the first level.
func (c *LevelConfig) Previous(level string) (string, bool) {
	i := c.Index(level)
	if i <= 0 {
		return "", false
	}
	return c.Order[i-1], true
}

// Next returns the level immediately after the given one. The second return
// is false for the last level.
func (c *LevelConfig) Next(level string) (string, bool) {
	i := c.Index(level)
	if i < 0 || i >= len(c.Order)-1 {
		return "", false
	}
	return c.Order[i+1], true
}
