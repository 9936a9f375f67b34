package eligibility

// detectConflicts projects the candidate's approval onto the per-day
// availability and records a conflict for every day either rank drops
// below its fleet-wide minimum. The candidate removes one pilot of its
// rank on every day of its range.
//
// Severity: CRITICAL when the affected rank's projected count is below
// the per-hull minimum (the hard floor), WARNING when it is below the
// fleet-wide minimum but still at or above the per-hull floor.
func detectConflicts(candidate LeaveRequestCheck, days []CrewAvailability, requirements CrewRequirements) []LeaveConflict {
	var conflicts []LeaveConflict

	for _, day := range days {
		projectedCaptains := day.AvailableCaptains
		projectedFirstOfficers := day.AvailableFirstOfficers
		if candidate.PilotRank == RankCaptain {
			projectedCaptains--
		} else {
			projectedFirstOfficers--
		}

		captainsBreach := projectedCaptains < requirements.MinimumCaptains
		firstOfficersBreach := projectedFirstOfficers < requirements.MinimumFirstOfficers
		if !captainsBreach && !firstOfficersBreach {
			continue
		}

		severity := SeverityWarning
		if captainsBreach && projectedCaptains < requirements.CaptainsPerHull {
			severity = SeverityCritical
		}
		if firstOfficersBreach && projectedFirstOfficers < requirements.FirstOfficersPerHull {
			severity = SeverityCritical
		}

		// message names the candidate's rank when it breaches, otherwise
		// the rank that does
		messageRank := candidate.PilotRank
		if candidate.PilotRank == RankCaptain && !captainsBreach {
			messageRank = RankFirstOfficer
		}
		if candidate.PilotRank == RankFirstOfficer && !firstOfficersBreach {
			messageRank = RankCaptain
		}
		projected := projectedFirstOfficers
		if messageRank == RankCaptain {
			projected = projectedCaptains
		}

		conflicts = append(conflicts, LeaveConflict{
			Date:                   day.Date,
			AvailableCaptains:      projectedCaptains,
			RequiredCaptains:       requirements.MinimumCaptains,
			AvailableFirstOfficers: projectedFirstOfficers,
			RequiredFirstOfficers:  requirements.MinimumFirstOfficers,
			Severity:               severity,
			Message:                conflictMessage(day.Date, messageRank, projected, requirements.MinimumFor(messageRank), severity),
		})
	}
	return conflicts
}

// recommendationSeed is the Conflict Detector's verdict before seniority
// arbitration: APPROVE when clean, DENY on any CRITICAL day, otherwise
// REVIEW_REQUIRED.
func recommendationSeed(conflicts []LeaveConflict) string {
	if len(conflicts) == 0 {
		return RecommendApprove
	}
	for _, c := range conflicts {
		if c.Severity == SeverityCritical {
			return RecommendDeny
		}
	}
	return RecommendReviewRequired
}

func affectedDates(conflicts []LeaveConflict) []Date {
	dates := make([]Date, 0, len(conflicts))
	for _, c := range conflicts {
		dates = append(dates, c.Date)
	}
	return dates
}
