package earnings

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// StartNightlySweep schedules a daily job that rebuilds every staff member's
// earnings for the day that just ended. It repairs summaries missed by the
// best-effort triggers, so a crash between a booking completion and its
// recompute heals within a day. Returns the scheduler so main can stop it on
// shutdown.
func StartNightlySweep() *gocron.Scheduler {
	loc, err := time.LoadLocation("Africa/Kigali")
	if err != nil {
		log.Printf("failed to load Africa/Kigali timezone, using local: %v", err)
		loc = time.Local
	}

	s := gocron.NewScheduler(loc)
	_, err = s.Every(1).Day().At("00:15").Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		yesterday := time.Now().In(loc).AddDate(0, 0, -1)
		if err := RecomputeAllForDate(ctx, yesterday); err != nil {
			log.Printf("nightly earnings sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("failed to schedule nightly earnings sweep: %v", err)
	}
	s.StartAsync()
	return s
}
