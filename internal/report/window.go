package report

import (
	"fmt"
	"time"
)

// Window is an inclusive date range used to filter orders and expenses
// for a report. Boundaries are normalized to local midnight in the
// business's reporting timezone, so the same calendar dates always
// produce the same window.
type Window struct {
	From time.Time
	To   time.Time
	loc  *time.Location
}

// NewWindow builds a window from two dates, normalizing both to local
// midnight in loc. Returns an error when to precedes from.
func NewWindow(from, to time.Time, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}
	f := truncateToDate(from.In(loc))
	t := truncateToDate(to.In(loc))
	if t.Before(f) {
		return Window{}, fmt.Errorf("window end %s precedes start %s", t.Format("2006-01-02"), f.Format("2006-01-02"))
	}
	return Window{From: f, To: t, loc: loc}, nil
}

// ThisWeek returns the Monday-through-Sunday window of the week
// containing now, in loc. Weeks start on Monday, not Sunday. The result
// depends only on the calendar day of now, so computing it twice on the
// same day yields the same window, including across month and year
// boundaries.
func ThisWeek(now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	d := truncateToDate(now.In(loc))

	// Weekday is Sunday=0; shift so Monday=0.
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)

	return Window{From: monday, To: sunday, loc: loc}
}

// LastNDays returns the window covering the n calendar days ending on
// the day of now (inclusive).
func LastNDays(now time.Time, n int, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	if n < 1 {
		n = 1
	}
	end := truncateToDate(now.In(loc))
	return Window{From: end.AddDate(0, 0, -(n - 1)), To: end, loc: loc}
}

// Location returns the reporting timezone of the window.
func (w Window) Location() *time.Location {
	if w.loc == nil {
		return time.Local
	}
	return w.loc
}

// Bounds returns the half-open instant range [start, end) that covers
// every moment of the window's calendar days. Intended for store
// queries over timestamp columns.
func (w Window) Bounds() (time.Time, time.Time) {
	return w.From, w.To.AddDate(0, 0, 1)
}

// Days lists every calendar day of the window in ascending order.
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.From; !d.After(w.To); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayKey maps an instant to the local midnight of its calendar day in
// the window's reporting timezone. This is the grouping key used by
// RevenueByDay, deliberately not UTC midnight.
func (w Window) DayKey(t time.Time) time.Time {
	return truncateToDate(t.In(w.Location()))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
