package eligibility

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day or timezone component.
// All leave intervals are inclusive ranges of Dates.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// normalise through time.Date so Feb 30 etc. roll over consistently
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DateOf truncates a timestamp to its calendar date, ignoring the zone's
// time-of-day entirely.
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// ParseDate accepts YYYY-MM-DD.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return DateOf(t), nil
}

func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

func (d Date) Equal(other Date) bool {
	return d == other
}

// DaysBetween returns the inclusive day count of [start, end], or an error
// when end precedes start. A single-day range counts as 1.
func DaysBetween(start, end Date) (int, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return int(end.Time().Sub(start.Time()).Hours()/24) + 1, nil
}

// RangesIntersect reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one day.
func RangesIntersect(aStart, aEnd, bStart, bEnd Date) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}

// IntersectionDays returns the day count shared by the two inclusive
// ranges, zero when they do not intersect.
func IntersectionDays(aStart, aEnd, bStart, bEnd Date) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.Before(start) {
		return 0
	}
	days, _ := DaysBetween(start, end)
	return days
}

// GapDays returns the number of calendar days strictly between two
// non-intersecting inclusive ranges; back-to-back ranges have a gap of
// zero. Returns zero when the ranges intersect.
func GapDays(aStart, aEnd, bStart, bEnd Date) int {
	if RangesIntersect(aStart, aEnd, bStart, bEnd) {
		return 0
	}
	if aEnd.Before(bStart) {
		days, _ := DaysBetween(aEnd, bStart)
		return days - 2
	}
	days, _ := DaysBetween(bEnd, aStart)
	return days - 2
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
