package model

import "time"

// MarketMetrics holds the summary statistics shown on the dashboard.
type MarketMetrics struct {
	CurrentYield     float64
	LatestAt         time.Time
	TwoTenSpread     float64
	VolatilityBps    float64
	FedFundsUpper    float64
	ObservationCount int
	SessionCount     int
}

// HourlyPoint is one point of the hourly average relative-yield trace.
type HourlyPoint struct {
	Hour             time.Time
	AvgRelativeYield float64
}
