// internal/domain/streak_test.go
package domain

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStreak_Record(t *testing.T) {
	var s Streak

	steps := []struct {
		day         time.Time
		wantChanged bool
		wantCurrent int
		wantLongest int
	}{
		{day(2026, 3, 1), true, 1, 1},
		{day(2026, 3, 2), true, 2, 2},
		{day(2026, 3, 2), false, 2, 2},
		{day(2026, 3, 1), false, 2, 2},
		{day(2026, 3, 3), true, 3, 3},
		{day(2026, 3, 5), true, 1, 3},
		{day(2026, 3, 6), true, 2, 3},
	}

	for i, st := range steps {
		changed := s.Record(st.day)
		if changed != st.wantChanged || s.Current != st.wantCurrent || s.Longest != st.wantLongest {
			t.Errorf("step %d Record(%s) = %v, current %d longest %d; want %v, %d, %d",
				i, st.day.Format(time.DateOnly), changed, s.Current, s.Longest, st.wantChanged, st.wantCurrent, st.wantLongest)
		}
	}
}

func TestStreak_RecordAcrossMonthEnd(t *testing.T) {
	var s Streak
	s.Record(day(2026, 2, 28))
	s.Record(day(2026, 3, 1))
	if s.Current != 2 {
		t.Errorf("Current = %d, want 2", s.Current)
	}
}

func TestStreak_Days(t *testing.T) {
	last := day(2026, 3, 10)
	s := Streak{Current: 4, Longest: 6, LastActive: &last}

	tests := []struct {
		today time.Time
		want  int
	}{
		{day(2026, 3, 10), 4},
		{day(2026, 3, 11), 4},
		{day(2026, 3, 12), 0},
		{time.Date(2026, 3, 11, 23, 59, 0, 0, time.UTC), 4},
	}
	for _, tt := range tests {
		if got := s.Days(tt.today); got != tt.want {
			t.Errorf("Days(%s) = %d, want %d", tt.today, got, tt.want)
		}
	}

	if got := (Streak{}).Days(last); got != 0 {
		t.Errorf("empty streak Days() = %d, want 0", got)
	}
}
