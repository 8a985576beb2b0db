// Package window defines the inclusive UTC time range that bounds the
// relevance of fetched GitHub activity.
package window

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for from_date/to_date parameters.
const DateLayout = "2006-01-02"

var (
	// ErrInverted is returned when the lower bound is after the upper bound.
	ErrInverted = errors.New("window: from is after to")
	// ErrFuture is returned when a bound lies in the future.
	ErrFuture = errors.New("window: date is in the future")
	// ErrTimezone is returned when the named IANA timezone is unknown.
	ErrTimezone = errors.New("window: invalid timezone")
)

// now is swapped out by tests.
var now = time.Now

// Window is an inclusive [From, To] instant pair in UTC.
type Window struct {
	From time.Time
	To   time.Time
}

// New builds a window from two absolute instants. It fails when from > to,
// before any network call can be made with the window.
func New(from, to time.Time) (Window, error) {
	from = from.UTC()
	to = to.UTC()
	if from.After(to) {
		return Window{}, ErrInverted
	}
	return Window{From: from, To: to}, nil
}

// LastDays is sugar for [now - n days, now].
func LastDays(n int) Window {
	end := now().UTC()
	return Window{From: end.Add(-time.Duration(n) * 24 * time.Hour), To: end}
}

// FromDates builds a window from two calendar dates interpreted in the named
// IANA timezone (empty means UTC). The lower bound anchors to local midnight,
// the upper bound to local end-of-day, both converted to UTC.
//
// A To bound that lands in the future is clamped to the current instant when
// it is still the same calendar day in the given zone; any other future bound
// is rejected.
func FromDates(fromDate, toDate, tz string) (Window, error) {
	loc := time.UTC
	if tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return Window{}, fmt.Errorf("%w %q", ErrTimezone, tz)
		}
	}

	fromDay, err := time.ParseInLocation(DateLayout, fromDate, loc)
	if err != nil {
		return Window{}, fmt.Errorf("window: invalid from_date %q: %w", fromDate, err)
	}
	toDay, err := time.ParseInLocation(DateLayout, toDate, loc)
	if err != nil {
		return Window{}, fmt.Errorf("window: invalid to_date %q: %w", toDate, err)
	}

	from := fromDay.UTC()
	to := time.Date(toDay.Year(), toDay.Month(), toDay.Day(), 23, 59, 59, 0, loc).UTC()
	if from.After(to) {
		return Window{}, ErrInverted
	}

	nowUTC := now().UTC()
	if from.After(nowUTC) {
		return Window{}, fmt.Errorf("%w: from_date %s", ErrFuture, fromDate)
	}
	if to.After(nowUTC) {
		localNow := nowUTC.In(loc)
		if localNow.Year() == toDay.Year() && localNow.YearDay() == toDay.YearDay() {
			// End of day hasn't happened yet; clamp to the current instant.
			to = nowUTC
		} else {
			return Window{}, fmt.Errorf("%w: to_date %s", ErrFuture, toDate)
		}
	}

	return Window{From: from, To: to}, nil
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Before reports whether t falls before the window lower bound. Backward
// paginators use this as their early-stop signal.
func (w Window) Before(t time.Time) bool {
	return t.Before(w.From)
}

// Days returns the whole number of days spanned, rounded up. Used for
// response metadata only.
func (w Window) Days() int {
	d := w.To.Sub(w.From)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.From.Format(time.RFC3339), w.To.Format(time.RFC3339))
}
