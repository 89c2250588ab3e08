// internal/domain/progress.go
package domain

import (
	"math"
	"sort"
	"time"
)

// Day truncates t to its civil date in t's location, expressed as UTC midnight
// so dates compare equal regardless of where they were read from.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SortMostRecentFirst orders by (Date, ScanTime) descending.
func SortMostRecentFirst(ds []*Delivery) {
	sort.SliceStable(ds, func(i, j int) bool {
		di, dj := Day(ds[i].Date), Day(ds[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return ds[i].ScanTime.After(ds[j].ScanTime)
	})
}

// CountCompletedBetween counts completed deliveries dated within [start, end].
func CountCompletedBetween(deliveries []*Delivery, start, end time.Time) int {
	from, to := Day(start), Day(end)
	n := 0
	for _, d := range deliveries {
		if d.Status != StatusCompleted {
			continue
		}
		day := Day(d.Date)
		if day.Before(from) || day.After(to) {
			continue
		}
		n++
	}
	return n
}

// CountCompletedOn counts deliveries completed on the civil day day, reading
// each delivery time in loc. A completed delivery without a delivery time
// counts on its Date.
func CountCompletedOn(deliveries []*Delivery, day time.Time, loc *time.Location) int {
	d0 := Day(day)
	n := 0
	for _, d := range deliveries {
		if d.Status != StatusCompleted {
			continue
		}
		completedOn := Day(d.Date)
		if d.DeliveryTime != nil {
			completedOn = Day(d.DeliveryTime.In(loc))
		}
		if completedOn.Equal(d0) {
			n++
		}
	}
	return n
}

// Ratio is completed/target capped at 1. A non-positive target yields 0.
func Ratio(completed, target int) float64 {
	if target <= 0 || completed <= 0 {
		return 0
	}
	return math.Min(float64(completed)/float64(target), 1)
}

func Percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

type Progress struct {
	Completed int     `json:"completed"`
	Target    int     `json:"target"`
	Ratio     float64 `json:"ratio"`
	Percent   int     `json:"percent"`
}

func NewProgress(completed, target int) Progress {
	r := Ratio(completed, target)
	return Progress{Completed: completed, Target: target, Ratio: r, Percent: Percent(r)}
}

// StatusBreakdown counts every recorded delivery by status. Shares are
// fractions of Total and are 0 while Total is 0.
type StatusBreakdown struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Ongoing        int     `json:"ongoing"`
	Cancelled      int     `json:"cancelled"`
	CompletedShare float64 `json:"completed_share"`
	OngoingShare   float64 `json:"ongoing_share"`
	CancelledShare float64 `json:"cancelled_share"`
}

func share(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func Breakdown(deliveries []*Delivery) StatusBreakdown {
	b := StatusBreakdown{Total: len(deliveries)}
	for _, d := range deliveries {
		switch d.Status {
		case StatusCompleted:
			b.Completed++
		case StatusOngoing:
			b.Ongoing++
		case StatusCancelled:
			b.Cancelled++
		}
	}
	b.CompletedShare = share(b.Completed, b.Total)
	b.OngoingShare = share(b.Ongoing, b.Total)
	b.CancelledShare = share(b.Cancelled, b.Total)
	return b
}

type ProgressSummary struct {
	UserID            string          `json:"user_id"`
	Date              time.Time       `json:"date"`
	Daily             Progress        `json:"daily"`
	Weekly            Progress        `json:"weekly"`
	Monthly           Progress        `json:"monthly"`
	MonthToDateTarget int             `json:"month_to_date_target"`
	GoalReached       bool            `json:"goal_reached"`
	LifetimeCompleted int             `json:"lifetime_completed"`
	LifetimeAverage   float64         `json:"lifetime_average"`
	StreakDays        int             `json:"streak_days"`
	LongestStreak     int             `json:"longest_streak"`
	Statuses          StatusBreakdown `json:"statuses"`
}

// Windows returns the inclusive start of the daily, weekly and monthly windows
// that end on today.
func Windows(today time.Time) (daily, weekly, monthly time.Time) {
	t := Day(today)
	y, m, _ := t.Date()
	return t, t.AddDate(0, 0, -6), time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// LifetimeAverage is completed deliveries per day since the first delivery,
// rounded to one decimal.
func LifetimeAverage(deliveries []*Delivery, today time.Time) float64 {
	if len(deliveries) == 0 {
		return 0
	}
	first := Day(deliveries[0].Date)
	completed := 0
	for _, d := range deliveries {
		if day := Day(d.Date); day.Before(first) {
			first = day
		}
		if d.Status == StatusCompleted {
			completed++
		}
	}
	days := int(Day(today).Sub(first).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return math.Round(float64(completed)/float64(days)*10) / 10
}

// Summarize derives the dashboard figures for one user. The monthly target is
// the full calendar month; MonthToDateTarget covers only the elapsed days.
func Summarize(userID string, deliveries []*Delivery, dailyTarget int, streak Streak, today time.Time) ProgressSummary {
	t := Day(today)
	dayStart, weekStart, monthStart := Windows(t)

	daily := CountCompletedBetween(deliveries, dayStart, t)
	weekly := CountCompletedBetween(deliveries, weekStart, t)
	monthly := CountCompletedBetween(deliveries, monthStart, t)
	statuses := Breakdown(deliveries)

	return ProgressSummary{
		UserID:            userID,
		Date:              t,
		Daily:             NewProgress(daily, dailyTarget),
		Weekly:            NewProgress(weekly, dailyTarget*7),
		Monthly:           NewProgress(monthly, dailyTarget*DaysInMonth(t)),
		MonthToDateTarget: dailyTarget * t.Day(),
		GoalReached:       dailyTarget > 0 && daily >= dailyTarget,
		LifetimeCompleted: statuses.Completed,
		LifetimeAverage:   LifetimeAverage(deliveries, t),
		StreakDays:        streak.Days(t),
		LongestStreak:     streak.Longest,
		Statuses:          statuses,
	}
}
