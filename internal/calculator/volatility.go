package calculator

import (
	"errors"
	"math"
	"sort"
	"time"

	"YieldSentinel/internal/model"
)

// tradingDaysPerYear is the annualization factor for daily yield changes.
const tradingDaysPerYear = 252

// AnnualizedVolatility computes the annualized volatility, in basis points,
// of day-over-day changes in each day's closing yield over the trailing
// window ending at the latest observation. Returns 0 when fewer than two
// daily closes are available.
func AnnualizedVolatility(observations []model.Observation, window time.Duration) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	if len(observations) == 0 {
		return 0, nil
	}

	sorted := make([]model.Observation, len(observations))
	copy(sorted, observations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	cutoff := sorted[len(sorted)-1].Timestamp.Add(-window)

	// Last yield per calendar day within the window. Chronological iteration
	// means the final write per day is that day's close.
	closes := make(map[time.Time]float64)
	var days []time.Time
	for _, o := range sorted {
		if o.Timestamp.Before(cutoff) {
			continue
		}
		t := o.Timestamp
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		if _, seen := closes[day]; !seen {
			days = append(days, day)
		}
		closes[day] = o.Yield()
	}
	if len(days) < 2 {
		return 0, nil
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	diffs := make([]float64, 0, len(days)-1)
	for i := 1; i < len(days); i++ {
		diffs = append(diffs, closes[days[i]]-closes[days[i-1]])
	}
	return sampleStdDev(diffs) * math.Sqrt(tradingDaysPerYear) * 100, nil
}

// sampleStdDev is the n-1 standard deviation. Returns 0 for fewer than two
// values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
