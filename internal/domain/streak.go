// internal/domain/streak.go
package domain

import "time"

type Streak struct {
	UserID     string     `json:"user_id"`
	Current    int        `json:"current"`
	Longest    int        `json:"longest"`
	LastActive *time.Time `json:"last_active,omitempty"`
}

// Record marks day as a target-met day. It reports whether the streak changed;
// recording the same day twice is a no-op.
func (s *Streak) Record(day time.Time) bool {
	d := Day(day)
	if s.LastActive != nil {
		last := Day(*s.LastActive)
		if !d.After(last) {
			return false
		}
		if last.AddDate(0, 0, 1).Equal(d) {
			s.Current++
		} else {
			s.Current = 1
		}
	} else {
		s.Current = 1
	}
	s.LastActive = &d
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	return true
}

// Days is the streak as seen on today: it lapses to 0 once the last active day
// is older than yesterday.
func (s Streak) Days(today time.Time) int {
	if s.LastActive == nil {
		return 0
	}
	yesterday := Day(today).AddDate(0, 0, -1)
	if Day(*s.LastActive).Before(yesterday) {
		return 0
	}
	return s.Current
}
