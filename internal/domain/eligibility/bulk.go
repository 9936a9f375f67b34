package eligibility

import (
	"context"
	"fmt"
	"log/slog"
)

// CheckBulkEligibility evaluates every PENDING request of a roster period
// and buckets the request ids by verdict. Requests are processed in start
// date order; each is evaluated independently against current persisted
// state (its own record excluded via RequestID), not against a simulated
// sequential approval of earlier requests in the batch. The result is
// advisory, not a reservation.
//
// One request's evaluation failure is recorded under Errors and excluded
// from all three buckets; it never aborts the batch.
func (s *Service) CheckBulkEligibility(ctx context.Context, periodCode string) (*BulkEligibilityResult, error) {
	if !validPeriodCode(periodCode) {
		return nil, fmt.Errorf("%w: %q", ErrRosterPeriodNotFound, periodCode)
	}

	pending, err := s.src.PendingByRosterPeriod(ctx, periodCode)
	if err != nil {
		return nil, fmt.Errorf("fetch pending requests for %s: %w", periodCode, err)
	}

	result := &BulkEligibilityResult{
		Eligible:        []string{},
		RequiresReview:  []string{},
		ShouldDeny:      []string{},
		Recommendations: make(map[string]*LeaveEligibilityCheck, len(pending)),
	}

	for _, record := range pending {
		check, err := s.CheckEligibility(ctx, LeaveRequestCheck{
			RequestID: record.ID,
			PilotID:   record.PilotID,
			PilotRank: record.PilotRank,
			StartDate: record.StartDate,
			EndDate:   record.EndDate,
		})
		if err != nil {
			slog.Error("bulk eligibility evaluation failed", "requestId", record.ID, "period", periodCode, "err", err)
			result.Errors = append(result.Errors, BulkError{RequestID: record.ID, Message: err.Error()})
			continue
		}

		result.Recommendations[record.ID] = check
		switch check.Recommendation {
		case RecommendApprove:
			result.Eligible = append(result.Eligible, record.ID)
		case RecommendDeny:
			result.ShouldDeny = append(result.ShouldDeny, record.ID)
		default:
			result.RequiresReview = append(result.RequiresReview, record.ID)
		}
	}
	return result, nil
}
