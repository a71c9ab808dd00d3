package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"YieldSentinel/internal/calculator"
	"YieldSentinel/internal/loader"
	"YieldSentinel/internal/model"
	"YieldSentinel/internal/session"
)

// Params holds the session window and metric assumptions applied on every
// refresh.
type Params struct {
	Window           session.Window
	TenYearPremium   float64
	FedFundsUpper    float64
	VolatilityWindow time.Duration
}

// Snapshot is one complete, immutable view of the normalized dataset.
type Snapshot struct {
	Sessions      []model.Session
	HourlyAverage []model.HourlyPoint
	Metrics       model.MarketMetrics
	RefreshedAt   time.Time
}

// Store holds the latest snapshot, guarded for concurrent reads from the
// HTTP handlers while the scheduler refreshes in the background.
type Store struct {
	mu     sync.RWMutex
	source loader.Source
	params Params
	snap   Snapshot
}

// New creates a Store around the given source. The snapshot is empty until
// the first Refresh.
func New(source loader.Source, params Params) *Store {
	if params.Window == (session.Window{}) {
		params.Window = session.DefaultWindow
	}
	return &Store{source: source, params: params}
}

// Refresh loads observations from the source, normalizes them into sessions
// and recomputes all metrics, then swaps in the new snapshot. On load
// failure the previous snapshot is left intact.
func (s *Store) Refresh(ctx context.Context) (Snapshot, error) {
	observations, err := s.source.Load(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load observations: %w", err)
	}

	sessions := s.params.Window.Normalize(observations)

	metrics := model.MarketMetrics{
		FedFundsUpper: s.params.FedFundsUpper,
		SessionCount:  len(sessions),
	}
	for _, sess := range sessions {
		metrics.ObservationCount += len(sess.Observations)
	}

	if y, at, err := calculator.LatestYield(observations); err != nil {
		log.Printf("[WARN] latest yield unavailable: %v", err)
	} else {
		metrics.CurrentYield = y
		metrics.LatestAt = at
		metrics.TwoTenSpread = calculator.TwoTenSpread(y, s.params.TenYearPremium)
	}

	if vol, err := calculator.AnnualizedVolatility(observations, s.params.VolatilityWindow); err != nil {
		log.Printf("[WARN] volatility calculation failed: %v", err)
	} else {
		metrics.VolatilityBps = vol
	}

	snap := Snapshot{
		Sessions:      sessions,
		HourlyAverage: calculator.HourlyAverages(sessions),
		Metrics:       metrics,
		RefreshedAt:   time.Now(),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return snap, nil
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
