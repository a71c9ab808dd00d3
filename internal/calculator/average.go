package calculator

import (
	"sort"
	"time"

	"YieldSentinel/internal/model"
)

// HourlyAverages computes the mean relative yield across all sessions,
// grouped by timestamp floored to the hour, ascending.
func HourlyAverages(sessions []model.Session) []model.HourlyPoint {
	type bucket struct {
		sum float64
		n   int
	}
	buckets := make(map[time.Time]*bucket)
	for _, s := range sessions {
		for _, o := range s.Observations {
			t := o.Timestamp
			hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
			b, ok := buckets[hour]
			if !ok {
				b = &bucket{}
				buckets[hour] = b
			}
			b.sum += o.RelativeYield
			b.n++
		}
	}

	points := make([]model.HourlyPoint, 0, len(buckets))
	for hour, b := range buckets {
		points = append(points, model.HourlyPoint{
			Hour:             hour,
			AvgRelativeYield: b.sum / float64(b.n),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Hour.Before(points[j].Hour) })
	return points
}

// LastNSessions returns the trailing n sessions by date. Sessions are
// expected sorted by date ascending, as produced by session.Normalize.
func LastNSessions(sessions []model.Session, n int) []model.Session {
	if n <= 0 || len(sessions) <= n {
		return sessions
	}
	return sessions[len(sessions)-n:]
}
