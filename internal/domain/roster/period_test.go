package roster

import (
	"testing"
	"time"
)

func utc(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestPeriodForAnchorBoundaries(t *testing.T) {
	calendar := DefaultCalendar()

	period := calendar.PeriodFor(utc(2026, time.January, 6))
	if period.Code != "RP1/2026" {
		t.Fatalf("expected RP1/2026 at anchor, got %s", period.Code)
	}
	if !period.StartDate.Equal(utc(2026, time.January, 6)) || !period.EndDate.Equal(utc(2026, time.February, 2)) {
		t.Fatalf("unexpected RP1 range: %s to %s", period.StartDate, period.EndDate)
	}

	if code := calendar.CodeFor(utc(2026, time.February, 2)); code != "RP1/2026" {
		t.Fatalf("expected last day inside RP1, got %s", code)
	}
	if code := calendar.CodeFor(utc(2026, time.February, 3)); code != "RP2/2026" {
		t.Fatalf("expected first day of RP2, got %s", code)
	}
}

func TestPeriodForDatesBeforeAnchor(t *testing.T) {
	calendar := DefaultCalendar()

	if code := calendar.CodeFor(utc(2026, time.January, 5)); code != "RP13/2025" {
		t.Fatalf("expected RP13/2025 the day before the anchor, got %s", code)
	}
}

func TestPeriodYearRollsAfterThirteen(t *testing.T) {
	calendar := DefaultCalendar()

	// 13 periods after the anchor is RP1 of the next roster year
	date := utc(2026, time.January, 6).AddDate(0, 0, 13*PeriodDays)
	if code := calendar.CodeFor(date); code != "RP1/2027" {
		t.Fatalf("expected RP1/2027, got %s", code)
	}
}

func TestRangeRoundTrip(t *testing.T) {
	calendar := DefaultCalendar()

	period, err := calendar.Range("RP7/2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	days := int(period.EndDate.Sub(period.StartDate).Hours()/24) + 1
	if days != PeriodDays {
		t.Fatalf("expected %d-day period, got %d", PeriodDays, days)
	}
	if got := calendar.CodeFor(period.StartDate); got != "RP7/2026" {
		t.Fatalf("expected start date to map back, got %s", got)
	}
	if got := calendar.CodeFor(period.EndDate); got != "RP7/2026" {
		t.Fatalf("expected end date to map back, got %s", got)
	}
}

func TestRangeRejectsMalformedCodes(t *testing.T) {
	calendar := DefaultCalendar()

	for _, code := range []string{"", "RP0/2026", "RP14/2026", "7/2026"} {
		if _, err := calendar.Range(code); err == nil {
			t.Fatalf("expected error for %q", code)
		}
	}
}
