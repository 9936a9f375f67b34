package eligibility

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2026-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != NewDate(2026, time.March, 10) {
		t.Fatalf("unexpected date: %s", parsed)
	}

	if _, err := ParseDate("10/03/2026"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestDaysBetweenInclusive(t *testing.T) {
	start := NewDate(2026, time.January, 10)

	days, err := DaysBetween(start, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected single-day range to count 1, got %d", days)
	}

	days, err = DaysBetween(start, start.AddDays(6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 7 {
		t.Fatalf("expected 7 days, got %d", days)
	}

	if _, err := DaysBetween(start, start.AddDays(-1)); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestAddDaysAcrossBoundaries(t *testing.T) {
	if got := NewDate(2026, time.January, 31).AddDays(1); got != NewDate(2026, time.February, 1) {
		t.Fatalf("expected 2026-02-01, got %s", got)
	}
	if got := NewDate(2025, time.December, 29).AddDays(7); got != NewDate(2026, time.January, 5) {
		t.Fatalf("expected 2026-01-05, got %s", got)
	}
	if got := NewDate(2026, time.March, 7).AddDays(-7); got != NewDate(2026, time.February, 28) {
		t.Fatalf("expected 2026-02-28, got %s", got)
	}
	// 2028 is a leap year
	if got := NewDate(2028, time.February, 28).AddDays(1); got != NewDate(2028, time.February, 29) {
		t.Fatalf("expected leap day, got %s", got)
	}
}

func TestGapAndIntersection(t *testing.T) {
	aStart, aEnd := d(2026, time.March, 10), d(2026, time.March, 14)

	if !RangesIntersect(aStart, aEnd, d(2026, time.March, 14), d(2026, time.March, 20)) {
		t.Fatal("expected shared boundary day to intersect")
	}
	if got := IntersectionDays(aStart, aEnd, d(2026, time.March, 14), d(2026, time.March, 20)); got != 1 {
		t.Fatalf("expected 1 shared day, got %d", got)
	}
	if got := IntersectionDays(aStart, aEnd, d(2026, time.March, 12), d(2026, time.March, 13)); got != 2 {
		t.Fatalf("expected 2 shared days, got %d", got)
	}

	// 2026-03-14 then 2026-03-17 leaves a 2 day gap (15th and 16th)
	if got := GapDays(aStart, aEnd, d(2026, time.March, 17), d(2026, time.March, 20)); got != 2 {
		t.Fatalf("expected gap of 2, got %d", got)
	}
	if got := GapDays(d(2026, time.March, 1), d(2026, time.March, 5), aStart, aEnd); got != 4 {
		t.Fatalf("expected gap of 4, got %d", got)
	}
	if got := GapDays(aStart, aEnd, d(2026, time.March, 12), d(2026, time.March, 20)); got != 0 {
		t.Fatalf("expected zero gap for intersecting ranges, got %d", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	payload, err := json.Marshal(d(2026, time.November, 3))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(payload) != `"2026-11-03"` {
		t.Fatalf("unexpected encoding: %s", payload)
	}

	var decoded Date
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded != d(2026, time.November, 3) {
		t.Fatalf("round trip mismatch: %s", decoded)
	}
}
