package country

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Scheduler triggers a periodic refresh. Singleton mode guarantees two
// scheduled cycles never overlap; a failed run just waits for the next tick.
type Scheduler struct {
	refresher *Refresher
	interval  time.Duration
	// -----
	sched gocron.Scheduler
}

func NewScheduler(refresher *Refresher, interval time.Duration) *Scheduler {
	return &Scheduler{refresher: refresher, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		report, refreshErr := s.refresher.Refresh(jobCtx)
		if refreshErr != nil {
			logrus.Errorf("Scheduled refresh failed: %v", refreshErr)
			return
		}
		logrus.Infof("Scheduled refresh done: %d/%d", report.Successful, report.TotalProcessed)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
