// services/scheduler.go
package services

import (
	"log"
	"time"

	"traffic-manager-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartExpirySweeper purges stale unaccepted invitations so dead tokens do
// not pile up. Tokens are single-use and expiry is already enforced at
// validation time; the sweeper is just hygiene, so a generous grace window
// keeps recently expired rows visible in the workspace invitation list.
func (s *InvitationService) StartExpirySweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every hour: delete invitations expired more than 30 days ago
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-30 * 24 * time.Hour)
			result := s.DB.Where("accepted_at IS NULL AND expires_at < ?", cutoff).
				Delete(&models.Invitation{})
			if result.Error != nil {
				log.Printf("[Sweeper] DB error: %v", result.Error)
				return
			}
			if result.RowsAffected > 0 {
				log.Printf("[Sweeper] Purged %d expired invitations", result.RowsAffected)
			}
		}),
	)
}
