package session

import (
	"sort"
	"time"

	"YieldSentinel/internal/model"
)

// Window defines an overnight session window running from StartHour through
// EndHour the following calendar day. The window is closed at both ends: an
// observation at exactly StartHour:00:00 opens a session on its own calendar
// day, and one at exactly EndHour:00:00 still belongs to the previous day's
// session.
type Window struct {
	StartHour int
	EndHour   int
}

// DefaultWindow is the 18:00→08:00 overnight futures trading window.
var DefaultWindow = Window{StartHour: 18, EndHour: 8}

// SessionDate assigns ts to an overnight session and returns the session's
// identifying date (midnight in ts's location). ok is false when ts falls in
// the daytime gap between EndHour and StartHour and belongs to no session.
func (w Window) SessionDate(ts time.Time) (time.Time, bool) {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	secs := ts.Hour()*3600 + ts.Minute()*60 + ts.Second()

	switch {
	case secs >= w.StartHour*3600:
		return day, true
	case secs < w.EndHour*3600:
		return day.AddDate(0, 0, -1), true
	case secs == w.EndHour*3600 && ts.Nanosecond() == 0:
		return day.AddDate(0, 0, -1), true
	default:
		return time.Time{}, false
	}
}

// Normalize groups observations into overnight sessions and recomputes each
// observation's yield relative to its session's opening value. Observations
// outside the window are dropped. The chronologically first member of every
// session is the anchor and has RelativeYield == 0 exactly; equal timestamps
// keep input order, so the first one seen anchors the session.
//
// Sessions are returned sorted by date ascending, members in chronological
// order. Empty input yields an empty result, never an error.
func (w Window) Normalize(observations []model.Observation) []model.Session {
	groups := make(map[time.Time][]model.NormalizedObservation)
	for _, obs := range observations {
		date, ok := w.SessionDate(obs.Timestamp)
		if !ok {
			continue
		}
		groups[date] = append(groups[date], model.NormalizedObservation{
			Observation: obs,
			SessionDate: date,
		})
	}

	sessions := make([]model.Session, 0, len(groups))
	for date, members := range groups {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Timestamp.Before(members[j].Timestamp)
		})
		anchor := members[0].Yield()
		for i := range members {
			members[i].RelativeYield = members[i].Yield() - anchor
		}
		sessions = append(sessions, model.Session{Date: date, Observations: members})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	return sessions
}

// SessionDate assigns ts to a session of the default overnight window.
func SessionDate(ts time.Time) (time.Time, bool) {
	return DefaultWindow.SessionDate(ts)
}

// Normalize normalizes observations against the default overnight window.
func Normalize(observations []model.Observation) []model.Session {
	return DefaultWindow.Normalize(observations)
}
