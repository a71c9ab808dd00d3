package calculator

import (
	"errors"
	"time"

	"YieldSentinel/internal/model"
)

// LatestYield returns the implied yield and timestamp of the chronologically
// last observation.
func LatestYield(observations []model.Observation) (float64, time.Time, error) {
	if len(observations) == 0 {
		return 0, time.Time{}, errors.New("no observations provided")
	}
	latest := observations[0]
	for _, o := range observations[1:] {
		if o.Timestamp.After(latest.Timestamp) {
			latest = o
		}
	}
	return latest.Yield(), latest.Timestamp, nil
}

// TwoTenSpread approximates the 2s10s curve spread from the current 2-year
// yield and a configured 10-year premium. Actual 10-year treasury data is
// not loaded, so the premium is an assumption rather than a derived value.
func TwoTenSpread(twoYearYield, tenYearPremium float64) float64 {
	tenYearYield := twoYearYield + tenYearPremium
	return tenYearYield - twoYearYield
}
