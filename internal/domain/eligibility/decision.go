package eligibility

import (
	"context"
	"fmt"
)

// CheckEligibility is the engine's main entry point: it projects the
// candidate's approval onto crew availability, runs seniority arbitration
// against competing same-rank requests, and composes a single verdict.
//
// Verdict rules:
//  1. no conflicts and no outranking competitor -> APPROVE
//  2. any CRITICAL conflict -> DENY
//  3. anything else -> REVIEW_REQUIRED, including a clean projection that
//     faces a higher-seniority same-rank competitor
func (s *Service) CheckEligibility(ctx context.Context, candidate LeaveRequestCheck) (*LeaveEligibilityCheck, error) {
	if candidate.EndDate.Before(candidate.StartDate) {
		return nil, ErrInvalidDateRange
	}

	pilot, err := s.src.PilotByID(ctx, candidate.PilotID)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate pilot: %w", err)
	}
	if pilot == nil {
		return nil, ErrPilotNotFound
	}
	if candidate.PilotRank == "" {
		candidate.PilotRank = pilot.Rank
	}

	requirements, err := s.Requirements(ctx)
	if err != nil {
		return nil, err
	}

	impact, err := s.CalculateAvailability(ctx, candidate.StartDate, candidate.EndDate, candidate.RequestID)
	if err != nil {
		return nil, err
	}

	conflicts := detectConflicts(candidate, impact, requirements)

	arbitration, err := s.GetConflictingRequests(ctx, candidate)
	if err != nil {
		return nil, err
	}

	alternatives, err := s.GetAlternativePilots(ctx, candidate.PilotRank, candidate.StartDate, candidate.EndDate, candidate.PilotID)
	if err != nil {
		return nil, err
	}

	check := composeDecision(conflicts, *arbitration)
	check.CrewImpact = impact
	check.AlternativePilots = alternatives
	return check, nil
}

// composeDecision merges conflict detection and seniority arbitration
// into the final verdict with its reasons list.
func composeDecision(conflicts []LeaveConflict, arbitration ConflictingRequestsResult) *LeaveEligibilityCheck {
	check := &LeaveEligibilityCheck{
		IsEligible:              len(conflicts) == 0,
		Conflicts:               conflicts,
		AffectedDates:           affectedDates(conflicts),
		ConflictingRequests:     arbitration.ConflictingRequests,
		SeniorityRecommendation: arbitration.SeniorityRecommendation,
	}

	// escalation is about the same days: a senior pilot whose window
	// merely sits near the candidate's leaves the verdict alone
	outranked := false
	for _, competitor := range arbitration.ConflictingRequests {
		if competitor.IsPriority && competitor.OverlapType.Intersects() {
			outranked = true
			break
		}
	}

	switch recommendationSeed(conflicts) {
	case RecommendDeny:
		check.Recommendation = RecommendDeny
		check.Reasons = denyReasons(conflicts)
	case RecommendReviewRequired:
		check.Recommendation = RecommendReviewRequired
		check.Reasons = []string{reviewReason(conflicts)}
		if outranked {
			check.Reasons = append(check.Reasons, seniorityEscalationReason())
		}
	default:
		if outranked {
			// a clean projection still needs a reviewer when a more
			// senior pilot wants the same dates
			check.Recommendation = RecommendReviewRequired
			check.Reasons = []string{seniorityEscalationReason()}
		} else {
			check.Recommendation = RecommendApprove
			check.Reasons = []string{approveReason()}
		}
	}

	// arbitration text is written for the human reviewer; pass it through
	// verbatim
	if arbitration.SeniorityRecommendation != "" {
		check.Reasons = append(check.Reasons, arbitration.SeniorityRecommendation)
	}
	return check
}
