package ledger

import (
	"errors"
	"strings"
	"time"
)

// DateFormat is the layout used for dates on every boundary (CSV, flags, HTTP, SQLite).
const DateFormat = "2006-01-02"

// ErrInvalidDateRange is returned when only one bound of a date range is given.
var ErrInvalidDateRange = errors.New("invalid date range: start and end dates must be given together")

// Period is an inclusive date range. The zero value is unrestricted; build a
// restricted one with Between or NewPeriod.
type Period struct {
	Start time.Time
	End   time.Time

	bounded bool
}

// All is the unrestricted period.
var All = Period{}

// NewPeriod builds a Period from optional bounds. Both nil gives an
// unrestricted period; exactly one nil is ErrInvalidDateRange.
func NewPeriod(start, end *time.Time) (Period, error) {
	switch {
	case start == nil && end == nil:
		return All, nil
	case start == nil || end == nil:
		return Period{}, ErrInvalidDateRange
	}
	return Between(*start, *end), nil
}

// Between returns the period from start to end inclusive, compared as
// calendar dates. Any date is a valid bound, including the zero time.
func Between(start, end time.Time) Period {
	return Period{Start: truncate(start), End: truncate(end), bounded: true}
}

// ParsePeriod builds a Period from YYYY-MM-DD strings. A malformed bound counts
// as absent, so two malformed bounds give an unrestricted period while one
// valid bound alongside a missing or malformed one is ErrInvalidDateRange.
func ParsePeriod(start, end string) (Period, error) {
	return NewPeriod(parseDate(start), parseDate(end))
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return nil
	}
	return &d
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Bounded reports whether the period restricts dates at all.
func (p Period) Bounded() bool {
	return p.bounded
}

// Contains reports whether t falls within the period, comparing calendar dates.
// An unrestricted period contains every date.
func (p Period) Contains(t time.Time) bool {
	if !p.Bounded() {
		return true
	}
	d := truncate(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) String() string {
	if !p.Bounded() {
		return "all dates"
	}
	return p.Start.Format(DateFormat) + " to " + p.End.Format(DateFormat)
}
