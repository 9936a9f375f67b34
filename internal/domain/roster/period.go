package roster

import (
	"errors"
	"fmt"
	"time"
)

// PeriodDays is the fixed length of a roster period.
const PeriodDays = 28

// PeriodsPerYear is the number of 28-day periods in a roster year.
const PeriodsPerYear = 13

var ErrUnknownPeriod = errors.New("unknown roster period")

// Period is one 28-day scheduling cycle.
type Period struct {
	Code      string    `json:"code"`
	Number    int       `json:"number"`
	Year      int       `json:"year"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Calendar maps calendar dates to roster-period codes and back. Periods
// run back to back from a single anchored period start; the numbering
// cycles RP1..RP13 and rolls the year every 13 periods.
type Calendar struct {
	anchorStart time.Time
	anchorIndex int
}

// NewCalendar anchors the calendar at the known start date of period
// RP<number>/<year>.
func NewCalendar(anchorStart time.Time, number, year int) (*Calendar, error) {
	if number < 1 || number > PeriodsPerYear {
		return nil, fmt.Errorf("period number %d out of range 1..%d", number, PeriodsPerYear)
	}
	return &Calendar{
		anchorStart: midnight(anchorStart),
		anchorIndex: year*PeriodsPerYear + number - 1,
	}, nil
}

// DefaultCalendar anchors RP1/2026 at 2026-01-06.
func DefaultCalendar() *Calendar {
	c, _ := NewCalendar(time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC), 1, 2026)
	return c
}

// PeriodFor returns the period covering the given date.
func (c *Calendar) PeriodFor(date time.Time) Period {
	days := int(midnight(date).Sub(c.anchorStart).Hours() / 24)
	offset := floorDiv(days, PeriodDays)
	return c.periodAt(c.anchorIndex + offset)
}

// CodeFor returns the period code covering the given date.
func (c *Calendar) CodeFor(date time.Time) string {
	return c.PeriodFor(date).Code
}

// Range resolves a period code like RP7/2026 to its inclusive date range.
func (c *Calendar) Range(code string) (Period, error) {
	var number, year int
	if _, err := fmt.Sscanf(code, "RP%d/%d", &number, &year); err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, code)
	}
	if number < 1 || number > PeriodsPerYear {
		return Period{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, code)
	}
	return c.periodAt(year*PeriodsPerYear + number - 1), nil
}

func (c *Calendar) periodAt(index int) Period {
	start := c.anchorStart.AddDate(0, 0, (index-c.anchorIndex)*PeriodDays)
	number := index%PeriodsPerYear + 1
	year := index / PeriodsPerYear
	return Period{
		Code:      fmt.Sprintf("RP%d/%d", number, year),
		Number:    number,
		Year:      year,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, PeriodDays-1),
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
