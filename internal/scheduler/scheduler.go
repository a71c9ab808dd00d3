package scheduler

import (
	"context"
	"fmt"
	"log"

	"YieldSentinel/internal/model"
	"YieldSentinel/internal/recorder"
	"YieldSentinel/internal/store"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the periodic data refresh.
type Scheduler struct {
	Cron     *cron.Cron
	Store    *store.Store
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, st *store.Store, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Store:    st,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// Register registers the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, func() {
		if err := s.refresh(); err != nil {
			log.Printf("[ERROR] refresh: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (startup / manual
// trigger) and reports whether the data load succeeded.
func (s *Scheduler) RunRefreshNow() error {
	return s.refresh()
}

func (s *Scheduler) refresh() error {
	log.Println("[INFO] running data refresh")
	snap, err := s.Store.Refresh(s.Ctx)
	if err != nil {
		return err
	}
	log.Printf("[INFO] processed %d observations across %d sessions",
		snap.Metrics.ObservationCount, snap.Metrics.SessionCount)

	if err := s.Recorder.RecordSnapshot(&recorder.MetricsSnapshot{
		CurrentYield:     snap.Metrics.CurrentYield,
		TwoTenSpread:     snap.Metrics.TwoTenSpread,
		VolatilityBps:    snap.Metrics.VolatilityBps,
		ObservationCount: snap.Metrics.ObservationCount,
		SessionCount:     snap.Metrics.SessionCount,
	}); err != nil {
		log.Printf("[ERROR] record snapshot: %v", err)
	}

	if err := s.Recorder.RecordSessionSummaries(summarize(snap.Sessions)); err != nil {
		log.Printf("[ERROR] record session summaries: %v", err)
	}
	return nil
}

// summarize reduces each session to its recorded aggregates.
func summarize(sessions []model.Session) []recorder.SessionSummary {
	summaries := make([]recorder.SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		if len(sess.Observations) == 0 {
			continue
		}
		sum := recorder.SessionSummary{
			SessionDate:      sess.Date,
			OpenYield:        sess.Observations[0].Yield(),
			CloseYield:       sess.Observations[len(sess.Observations)-1].Yield(),
			ObservationCount: len(sess.Observations),
		}
		sum.MinRelativeYield = sess.Observations[0].RelativeYield
		sum.MaxRelativeYield = sess.Observations[0].RelativeYield
		for _, o := range sess.Observations[1:] {
			if o.RelativeYield < sum.MinRelativeYield {
				sum.MinRelativeYield = o.RelativeYield
			}
			if o.RelativeYield > sum.MaxRelativeYield {
				sum.MaxRelativeYield = o.RelativeYield
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries
}
