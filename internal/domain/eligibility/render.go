package eligibility

import (
	"fmt"
	"strings"
)

// All human-readable text the engine emits is produced here, so the
// decision logic stays string-free and unit-testable on its own.

func conflictMessage(date Date, rank Rank, available, required int, severity string) string {
	label := "below minimum crew"
	if severity == SeverityCritical {
		label = "below per-hull floor"
	}
	return fmt.Sprintf("%s on %s: %d of %d required %ss available (%s)", strings.ToUpper(severity), date, available, required, rank, label)
}

func renderApproveRecommendation(seniority int) string {
	return fmt.Sprintf("Approve: highest seniority in contention (#%d)", seniority)
}

func renderDeferRecommendation(seniority int) string {
	return fmt.Sprintf("Request alternative dates: seniority #%d is outranked for this window", seniority)
}

// renderSpreadSuggestion offers three alternative windows of the same
// duration, shifted a week earlier, a week later, and two weeks later.
func renderSpreadSuggestion(start, end Date) string {
	windows := []struct {
		shift int
		label string
	}{
		{-7, "one week earlier"},
		{7, "one week later"},
		{14, "two weeks later"},
	}
	parts := make([]string, 0, len(windows))
	for _, w := range windows {
		parts = append(parts, fmt.Sprintf("%s to %s (%s)", start.AddDays(w.shift), end.AddDays(w.shift), w.label))
	}
	return "Suggested alternative dates: " + strings.Join(parts, "; ")
}

func renderContentionSummary(rank Rank, competing int, winnerSeniority int) string {
	return fmt.Sprintf(
		"Insufficient %ss to approve all %d overlapping requests. Approve seniority #%d and offer spread-out dates to the remaining %d.",
		rank, competing, winnerSeniority, competing-1,
	)
}

func renderAllApprovable(rank Rank, competing int) string {
	return fmt.Sprintf("All %d overlapping %s requests can be approved without breaching minimum crew.", competing, rank)
}

// denyReasons enumerates the conflict count and the first few affected
// dates for a DENY verdict.
func denyReasons(conflicts []LeaveConflict) []string {
	dates := affectedDates(conflicts)
	shown := dates
	if len(shown) > 3 {
		shown = shown[:3]
	}
	labels := make([]string, 0, len(shown))
	for _, d := range shown {
		labels = append(labels, d.String())
	}
	suffix := ""
	if len(dates) > len(shown) {
		suffix = fmt.Sprintf(" and %d more", len(dates)-len(shown))
	}
	return []string{
		fmt.Sprintf("%d day(s) would fall below minimum crew", len(conflicts)),
		"Affected dates: " + strings.Join(labels, ", ") + suffix,
	}
}

func reviewReason(conflicts []LeaveConflict) string {
	return fmt.Sprintf("%d day(s) dip below the fleet-wide minimum but hold the per-hull floor; reviewer judgement required", len(conflicts))
}

func seniorityEscalationReason() string {
	return "A more senior pilot of the same rank has a pending request for overlapping dates"
}

func approveReason() string {
	return "No crew availability conflicts for the requested dates"
}
