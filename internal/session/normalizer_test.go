package session

import (
	"math"
	"testing"
	"time"

	"YieldSentinel/internal/model"
)

func ts(day int, hour, min, sec int) time.Time {
	return time.Date(2025, 6, day, hour, min, sec, 0, time.UTC)
}

func date(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSessionDate_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		ts     time.Time
		want   time.Time
		inside bool
	}{
		{"just before open", ts(2, 17, 59, 59), time.Time{}, false},
		{"exactly at open", ts(2, 18, 0, 0), date(2), true},
		{"during evening", ts(2, 22, 30, 0), date(2), true},
		{"after midnight", ts(3, 2, 15, 0), date(2), true},
		{"exactly at close", ts(3, 8, 0, 0), date(2), true},
		{"just after close", ts(3, 8, 0, 1), time.Time{}, false},
		{"midday", ts(3, 12, 0, 0), time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := SessionDate(tt.ts)
		if ok != tt.inside {
			t.Errorf("%s: inside=%v, want %v", tt.name, ok, tt.inside)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("%s: session date %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWindow_CustomHours(t *testing.T) {
	w := Window{StartHour: 20, EndHour: 6}
	tests := []struct {
		name   string
		ts     time.Time
		want   time.Time
		inside bool
	}{
		{"before custom open", ts(2, 19, 59, 59), time.Time{}, false},
		{"at custom open", ts(2, 20, 0, 0), date(2), true},
		{"at custom close", ts(3, 6, 0, 0), date(2), true},
		{"after custom close", ts(3, 6, 0, 1), time.Time{}, false},
		{"default open is now daytime", ts(2, 18, 0, 0), time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := w.SessionDate(tt.ts)
		if ok != tt.inside {
			t.Errorf("%s: inside=%v, want %v", tt.name, ok, tt.inside)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("%s: session date %v, want %v", tt.name, got, tt.want)
		}
	}

	obs := []model.Observation{
		{Timestamp: ts(2, 20, 30, 0), Price: 97.50},
		{Timestamp: ts(3, 5, 0, 0), Price: 97.60},
	}
	sessions := w.Normalize(obs)
	if len(sessions) != 1 || len(sessions[0].Observations) != 2 {
		t.Fatalf("expected one session with two members, got %v", sessions)
	}
	if !almostEqual(sessions[0].Observations[1].RelativeYield, -0.10) {
		t.Errorf("relative yield %.4f, want -0.10", sessions[0].Observations[1].RelativeYield)
	}
}

func TestSessionDate_SubsecondAfterClose(t *testing.T) {
	// 08:00:00.000 is inside the window; 08:00:00.5 is not.
	if _, ok := SessionDate(time.Date(2025, 6, 3, 8, 0, 0, 500_000_000, time.UTC)); ok {
		t.Error("08:00:00.5 should be outside the overnight window")
	}
}

func TestNormalize_WorkedExample(t *testing.T) {
	obs := []model.Observation{
		{Timestamp: ts(1, 18, 0, 0), Price: 97.50},
		{Timestamp: ts(1, 19, 0, 0), Price: 97.60},
		{Timestamp: ts(2, 7, 0, 0), Price: 97.55},
	}
	sessions := Normalize(obs)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if !s.Date.Equal(date(1)) {
		t.Errorf("session date %v, want %v", s.Date, date(1))
	}
	if len(s.Observations) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(s.Observations))
	}
	wantYields := []float64{2.50, 2.40, 2.45}
	wantRelative := []float64{0, -0.10, -0.05}
	for i, o := range s.Observations {
		if !almostEqual(o.Yield(), wantYields[i]) {
			t.Errorf("obs %d: yield %.4f, want %.4f", i, o.Yield(), wantYields[i])
		}
		if !almostEqual(o.RelativeYield, wantRelative[i]) {
			t.Errorf("obs %d: relative yield %.4f, want %.4f", i, o.RelativeYield, wantRelative[i])
		}
	}
}

func TestNormalize_AnchorAlwaysZero(t *testing.T) {
	obs := []model.Observation{
		{Timestamp: ts(3, 23, 10, 0), Price: 97.80},
		{Timestamp: ts(3, 18, 5, 0), Price: 97.70},
		{Timestamp: ts(4, 6, 45, 0), Price: 97.75},
		{Timestamp: ts(4, 20, 0, 0), Price: 97.20},
		{Timestamp: ts(5, 7, 59, 59), Price: 97.10},
	}
	sessions := Normalize(obs)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	for _, s := range sessions {
		if s.Observations[0].RelativeYield != 0 {
			t.Errorf("session %v: anchor relative yield %.6f, want exactly 0",
				s.Date, s.Observations[0].RelativeYield)
		}
		anchor := s.Observations[0].Yield()
		for i, o := range s.Observations {
			if !almostEqual(o.RelativeYield, o.Yield()-anchor) {
				t.Errorf("session %v obs %d: relative yield %.6f != yield-anchor %.6f",
					s.Date, i, o.RelativeYield, o.Yield()-anchor)
			}
			if i > 0 && o.Timestamp.Before(s.Observations[i-1].Timestamp) {
				t.Errorf("session %v: observations not chronological at %d", s.Date, i)
			}
		}
	}
}

func TestNormalize_DaytimeObservationsExcluded(t *testing.T) {
	obs := []model.Observation{
		{Timestamp: ts(2, 10, 0, 0), Price: 97.50},
		{Timestamp: ts(2, 14, 30, 0), Price: 97.55},
	}
	if sessions := Normalize(obs); len(sessions) != 0 {
		t.Fatalf("expected no sessions for daytime-only input, got %d", len(sessions))
	}
}

func TestNormalize_SingleMemberSession(t *testing.T) {
	obs := []model.Observation{
		{Timestamp: ts(3, 20, 0, 0), Price: 97.42},
	}
	sessions := Normalize(obs)
	if len(sessions) != 1 || len(sessions[0].Observations) != 1 {
		t.Fatalf("expected one session with one member, got %v", sessions)
	}
	if sessions[0].Observations[0].RelativeYield != 0 {
		t.Errorf("single-member relative yield %.6f, want 0",
			sessions[0].Observations[0].RelativeYield)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if sessions := Normalize(nil); len(sessions) != 0 {
		t.Fatalf("expected empty output for empty input, got %d sessions", len(sessions))
	}
}

func TestNormalize_TimestampTieKeepsInputOrder(t *testing.T) {
	// Two observations at the identical instant: the first one seen anchors.
	obs := []model.Observation{
		{Timestamp: ts(1, 18, 0, 0), Price: 97.50},
		{Timestamp: ts(1, 18, 0, 0), Price: 97.40},
	}
	sessions := Normalize(obs)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0].Observations
	if got[0].Price != 97.50 || got[1].Price != 97.40 {
		t.Fatalf("tie order not preserved: %v", got)
	}
	if got[0].RelativeYield != 0 {
		t.Errorf("first-seen observation should anchor, relative yield %.4f", got[0].RelativeYield)
	}
	if !almostEqual(got[1].RelativeYield, 0.10) {
		t.Errorf("second observation relative yield %.4f, want 0.10", got[1].RelativeYield)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	obs := []model.Observation{
		{Timestamp: ts(1, 18, 30, 0), Price: 97.51},
		{Timestamp: ts(2, 1, 0, 0), Price: 97.48},
		{Timestamp: ts(2, 7, 0, 0), Price: 97.62},
		{Timestamp: ts(2, 19, 0, 0), Price: 97.40},
	}
	first := Normalize(obs)

	var raw []model.Observation
	for _, s := range first {
		for _, o := range s.Observations {
			raw = append(raw, o.Observation)
		}
	}
	second := Normalize(raw)

	if len(first) != len(second) {
		t.Fatalf("session count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Date.Equal(second[i].Date) {
			t.Errorf("session %d date changed: %v vs %v", i, first[i].Date, second[i].Date)
		}
		for j := range first[i].Observations {
			a, b := first[i].Observations[j], second[i].Observations[j]
			if !almostEqual(a.RelativeYield, b.RelativeYield) {
				t.Errorf("session %d obs %d: relative yield %.6f vs %.6f",
					i, j, a.RelativeYield, b.RelativeYield)
			}
		}
	}
}

func TestNormalize_SessionsSortedByDate(t *testing.T) {
	obs := []model.Observation{
		{Timestamp: ts(9, 19, 0, 0), Price: 97.10},
		{Timestamp: ts(2, 19, 0, 0), Price: 97.20},
		{Timestamp: ts(5, 19, 0, 0), Price: 97.30},
	}
	sessions := Normalize(obs)
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if !sessions[i-1].Date.Before(sessions[i].Date) {
			t.Errorf("sessions not sorted by date: %v before %v",
				sessions[i-1].Date, sessions[i].Date)
		}
	}
}
