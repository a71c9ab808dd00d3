package model

import "time"

// Observation is a single tick-level futures price record.
type Observation struct {
	Timestamp time.Time
	Price     float64
}

// Yield returns the implied yield for a short-rate futures price.
func (o Observation) Yield() float64 {
	return 100 - o.Price
}

// NormalizedObservation is an Observation annotated with its overnight
// session and its yield relative to the session's opening value.
type NormalizedObservation struct {
	Observation
	SessionDate   time.Time
	RelativeYield float64
}

// Session groups the normalized observations of one overnight trading
// window. Date is the calendar day the window starts on; Observations are
// in chronological order.
type Session struct {
	Date         time.Time
	Observations []NormalizedObservation
}
