package ledger

import (
	"fmt"
	"time"
)

// DateRange is an inclusive span of calendar days in the till owner's time zone.
type DateRange struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// NewDateRange truncates start and end to local midnight in loc. A nil loc means UTC.
func NewDateRange(start, end time.Time, loc *time.Location) DateRange {
	if loc == nil {
		loc = time.UTC
	}

	return DateRange{
		Start:    startOfDay(start, loc),
		End:      startOfDay(end, loc),
		Location: loc,
	}
}

// Today returns the single-day range containing now.
func Today(now time.Time, loc *time.Location) DateRange {
	return NewDateRange(now, now, loc)
}

// ParseDateRange parses two YYYY-MM-DD dates as local days in loc.
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}

	s, err := time.ParseInLocation(time.DateOnly, start, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("parsing start date: %w", err)
	}

	e, err := time.ParseInLocation(time.DateOnly, end, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("parsing end date: %w", err)
	}

	return NewDateRange(s, e, loc), nil
}

func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start)
}

// Bounds returns the half-open instant interval [from, to) covering every
// day of the range, i.e. start 00:00:00.000 through end 23:59:59.999.
func (r DateRange) Bounds() (time.Time, time.Time) {
	return r.Start, r.End.AddDate(0, 0, 1)
}

func (r DateRange) Contains(t time.Time) bool {
	from, to := r.Bounds()
	return !t.Before(from) && t.Before(to)
}

// Days is the number of calendar days in the range, zero when invalid.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}

	n := 0
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		n++
	}

	return n
}

func (r DateRange) String() string {
	if r.Start.Equal(r.End) {
		return r.Start.Format(time.DateOnly)
	}

	return r.Start.Format(time.DateOnly) + " to " + r.End.Format(time.DateOnly)
}

func (r DateRange) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}

	return r.Location
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
