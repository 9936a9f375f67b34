package eligibility

import (
	"context"
	"fmt"
	"log/slog"
)

// CalculateAvailability computes the per-day crew picture for the
// inclusive range [start, end]. Records with status APPROVED or PENDING
// count as on leave for every day their interval covers. A non-empty
// excludeRequestID removes that record from the projection, so a request
// being re-evaluated does not double-count its own prior state.
//
// The result always has exactly one entry per calendar day in the range,
// date ascending.
func (s *Service) CalculateAvailability(ctx context.Context, start, end Date, excludeRequestID string) ([]CrewAvailability, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	totalCaptains, err := s.src.ActivePilotCount(ctx, RankCaptain)
	if err != nil {
		return nil, fmt.Errorf("count captains: %w", err)
	}
	totalFirstOfficers, err := s.src.ActivePilotCount(ctx, RankFirstOfficer)
	if err != nil {
		return nil, fmt.Errorf("count first officers: %w", err)
	}

	records, err := s.src.LeaveRecordsIntersecting(ctx, start, end, []string{StatusApproved, StatusPending})
	if err != nil {
		return nil, fmt.Errorf("fetch leave records: %w", err)
	}

	requirements, err := s.Requirements(ctx)
	if err != nil {
		return nil, err
	}

	return buildAvailability(start, end, totalCaptains, totalFirstOfficers, records, excludeRequestID, requirements), nil
}

func buildAvailability(start, end Date, totalCaptains, totalFirstOfficers int, records []LeaveRecord, excludeRequestID string, requirements CrewRequirements) []CrewAvailability {
	days, _ := DaysBetween(start, end)
	out := make([]CrewAvailability, 0, days)

	for day := start; !day.After(end); day = day.AddDays(1) {
		onLeaveCaptains := 0
		onLeaveFirstOfficers := 0
		for _, record := range records {
			if excludeRequestID != "" && record.ID == excludeRequestID {
				continue
			}
			if day.Before(record.StartDate) || day.After(record.EndDate) {
				continue
			}
			if record.PilotRank == RankCaptain {
				onLeaveCaptains++
			} else {
				onLeaveFirstOfficers++
			}
		}

		// more pilots on leave than exist means the store is feeding us
		// records for inactive pilots; clamp and log rather than emit a
		// negative count
		if onLeaveCaptains > totalCaptains {
			slog.Error("on-leave captains exceed roster total", "date", day.String(), "onLeave", onLeaveCaptains, "total", totalCaptains)
			onLeaveCaptains = totalCaptains
		}
		if onLeaveFirstOfficers > totalFirstOfficers {
			slog.Error("on-leave first officers exceed roster total", "date", day.String(), "onLeave", onLeaveFirstOfficers, "total", totalFirstOfficers)
			onLeaveFirstOfficers = totalFirstOfficers
		}

		availableCaptains := totalCaptains - onLeaveCaptains
		availableFirstOfficers := totalFirstOfficers - onLeaveFirstOfficers
		captainsShortfall := availableCaptains - requirements.MinimumCaptains
		firstOfficersShortfall := availableFirstOfficers - requirements.MinimumFirstOfficers

		out = append(out, CrewAvailability{
			Date:                   day,
			TotalCaptains:          totalCaptains,
			TotalFirstOfficers:     totalFirstOfficers,
			OnLeaveCaptains:        onLeaveCaptains,
			OnLeaveFirstOfficers:   onLeaveFirstOfficers,
			AvailableCaptains:      availableCaptains,
			AvailableFirstOfficers: availableFirstOfficers,
			MeetsMinimum:           captainsShortfall >= 0 && firstOfficersShortfall >= 0,
			CaptainsShortfall:      captainsShortfall,
			FirstOfficersShortfall: firstOfficersShortfall,
		})
	}
	return out
}
