package eligibility

import (
	"testing"
	"time"
)

func TestConflictMessage(t *testing.T) {
	got := conflictMessage(d(2026, time.March, 12), RankCaptain, 4, 10, SeverityCritical)
	want := "CRITICAL on 2026-03-12: 4 of 10 required Captains available (below per-hull floor)"
	if got != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", got, want)
	}

	got = conflictMessage(d(2026, time.March, 12), RankFirstOfficer, 9, 10, SeverityWarning)
	want = "WARNING on 2026-03-12: 9 of 10 required First Officers available (below minimum crew)"
	if got != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", got, want)
	}
}

func TestRenderSpreadSuggestionPreservesDuration(t *testing.T) {
	got := renderSpreadSuggestion(d(2026, time.June, 8), d(2026, time.June, 14))
	want := "Suggested alternative dates: " +
		"2026-06-01 to 2026-06-07 (one week earlier); " +
		"2026-06-15 to 2026-06-21 (one week later); " +
		"2026-06-22 to 2026-06-28 (two weeks later)"
	if got != want {
		t.Fatalf("unexpected suggestion:\n got %q\nwant %q", got, want)
	}
}
