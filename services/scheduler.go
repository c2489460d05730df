// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartExportScheduler backs up the match history every interval while a user
// is logged in. The caller owns the returned scheduler and must Shutdown it.
func (s *ExportService) StartExportScheduler(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			s.runScheduledExport(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	log.Printf("[Scheduler] history export every %s", interval)
	return sched, nil
}

func (s *ExportService) runScheduledExport(ctx context.Context) {
	if !s.Session.IsAuthenticated() {
		return
	}
	res, err := s.ExportHistory(ctx)
	if err != nil {
		log.Printf("[Scheduler] export failed: %v", err)
		return
	}
	log.Printf("✅ Scheduled export stored at %s", res.Key)
}
