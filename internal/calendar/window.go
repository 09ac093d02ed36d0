// Package calendar selects the appointments visible in a calendar window.
// A window is fully determined by a reference date and a granularity; the
// functions here never read a clock, so the same inputs always produce the
// same window.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/appointment"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

var (
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrInvalidDate        = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

// ParseGranularity validates a granularity value from a request or flag.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("%w: %q (want day, week or month)", ErrInvalidGranularity, s)
}

// ParseDate parses a strict YYYY-MM-DD calendar date. Comparisons and
// arithmetic downstream work on the parsed value, not the string form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// WindowRange returns the first and last calendar dates of the window
// containing refDate, both inclusive.
//
// Weeks run Sunday through Saturday. Months are calendar months, not
// rolling 30-day spans.
func WindowRange(refDate string, g Granularity) (start, end time.Time, err error) {
	ref, err := ParseDate(refDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	switch g {
	case GranularityDay:
		return ref, ref, nil
	case GranularityWeek:
		start = ref.AddDate(0, 0, -int(ref.Weekday()))
		return start, start.AddDate(0, 0, 6), nil
	case GranularityMonth:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
}

// SelectWindow returns the appointments whose date falls inside the window
// containing refDate. The result is a fresh slice holding exactly the
// matching elements; input order is preserved and no ordering beyond that is
// implied (callers wanting chronological order apply SortSchedule).
//
// An unknown granularity or a malformed date, on the reference or on any
// appointment, is an error. The unfiltered input is never returned as a
// fallback.
func SelectWindow(appts []appointment.Appointment, refDate string, g Granularity) ([]appointment.Appointment, error) {
	start, end, err := WindowRange(refDate, g)
	if err != nil {
		return nil, err
	}
	ref, err := ParseDate(refDate)
	if err != nil {
		return nil, err
	}

	out := make([]appointment.Appointment, 0, len(appts))
	for _, a := range appts {
		d, err := ParseDate(a.Date)
		if err != nil {
			return nil, fmt.Errorf("appointment %s: %w", a.ID, err)
		}

		var in bool
		switch g {
		case GranularityDay:
			in = d.Equal(start)
		case GranularityWeek:
			in = !d.Before(start) && !d.After(end)
		case GranularityMonth:
			in = d.Year() == ref.Year() && d.Month() == ref.Month()
		}
		if in {
			out = append(out, a)
		}
	}
	return out, nil
}

// SortSchedule orders appointments chronologically: date ascending, then
// time ascending. The sort is stable, so equal (date, time) pairs keep
// their input order. Sorts in place and returns the slice for chaining.
func SortSchedule(appts []appointment.Appointment) []appointment.Appointment {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
	return appts
}

// WindowLabel renders the human-readable heading for a window, e.g.
// "January 2024" for a month, "January 14 – January 20, 2024" for a week
// and "Monday, January 15, 2024" for a day.
func WindowLabel(refDate string, g Granularity) (string, error) {
	start, end, err := WindowRange(refDate, g)
	if err != nil {
		return "", err
	}

	switch g {
	case GranularityDay:
		return start.Format("Monday, January 2, 2006"), nil
	case GranularityWeek:
		if start.Year() == end.Year() {
			return fmt.Sprintf("%s – %s", start.Format("January 2"), end.Format("January 2, 2006")), nil
		}
		return fmt.Sprintf("%s – %s", start.Format("January 2, 2006"), end.Format("January 2, 2006")), nil
	}
	return start.Format("January 2006"), nil
}
