// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartBestScoreScheduler refreshes the dashboard best-score snapshot every
// minute.
func (s *CatalogService) StartBestScoreScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if err := s.RefreshBestScores(); err != nil {
				log.Printf("[Scheduler] best-score refresh failed: %v", err)
			}
		}),
	)
}
