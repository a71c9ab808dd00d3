package recorder

import "time"

// MetricsSnapshot holds the summary statistics captured at one refresh.
type MetricsSnapshot struct {
	CurrentYield     float64
	TwoTenSpread     float64
	VolatilityBps    float64
	ObservationCount int
	SessionCount     int
}

// SessionSummary records the per-session aggregates of one overnight window.
type SessionSummary struct {
	SessionDate      time.Time
	OpenYield        float64
	CloseYield       float64
	MinRelativeYield float64
	MaxRelativeYield float64
	ObservationCount int
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSnapshot(snap *MetricsSnapshot) error
	RecordSessionSummaries(summaries []SessionSummary) error
	Close() error
}
