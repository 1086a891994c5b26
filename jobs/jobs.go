package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// SetupInBackground schedules the status poll. The scheduler is returned
// stopped so the caller decides when ticking begins.
func SetupInBackground(poller *Poller, interval time.Duration) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	if _, err := s.Every(interval).Do(poller.Check); err != nil {
		return nil, fmt.Errorf("failed to schedule status poll: %w", err)
	}

	slog.Debug("Status poll scheduled. Scheduler not running yet.", slog.Duration("interval", interval))

	return s, nil
}
