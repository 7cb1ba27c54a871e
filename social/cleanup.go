package social

import (
	"log"
	"time"
)

// StartStorySweeper starts a background worker that removes expired
// stories on the given interval. The sweep is idempotent, so a missed
// or doubled tick is harmless.
func (s *Service) StartStorySweeper(interval time.Duration) {
	log.Println("Starting story sweeper...")

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			s.sweepExpiredStories()
		}
	}()
}

func (s *Service) sweepExpiredStories() {
	err, swept := s.store.DeleteExpiredStories(time.Now())
	if err != nil {
		log.Printf("StorySweeper: Failed to sweep: %v", err)
		return
	}
	if swept > 0 {
		log.Printf("StorySweeper: Removed %d expired stories", swept)
	}
}

// DeleteExpiredSessions is run on the same ticker cadence by main.
func (s *Service) DeleteExpiredSessions() {
	if err := s.store.DeleteExpiredSessions(); err != nil {
		log.Printf("SessionCleanup: Failed: %v", err)
	}
}
