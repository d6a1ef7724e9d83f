package workers

import (
	"context"
	"log"
	"time"

	"quiz-portal-system/models"

	"gorm.io/gorm"
)

// SessionCleaner removes expired login sessions. Expired tokens are already
// rejected at resolve time; this just keeps the table from growing forever.
type SessionCleaner struct {
	DB *gorm.DB
}

func NewSessionCleaner(db *gorm.DB) *SessionCleaner {
	return &SessionCleaner{DB: db}
}

func (c *SessionCleaner) purgeExpired() {
	res := c.DB.Where("expires_at <= ?", time.Now()).Delete(&models.Session{})
	if res.Error != nil {
		log.Printf("[SessionCleaner] purge failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("🧹 purged %d expired sessions", res.RowsAffected)
	}
}

// PollSessions runs the cleaner on an interval until ctx is cancelled.
func PollSessions(ctx context.Context, c *SessionCleaner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session cleanup worker stopped")
			return
		case <-ticker.C:
			c.purgeExpired()
		}
	}
}
