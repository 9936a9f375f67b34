package eligibility

import (
	"context"
	"fmt"
	"sort"
)

// GetAlternativePilots lists same-rank active pilots other than
// excludePilotID, seniority ascending with unranked pilots last, each
// annotated with its leave state for [start, end] and a 1-based priority.
// Pure read, no side effects.
func (s *Service) GetAlternativePilots(ctx context.Context, rank Rank, start, end Date, excludePilotID string) ([]PilotRecommendation, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	pilots, err := s.src.ActivePilots(ctx, rank)
	if err != nil {
		return nil, fmt.Errorf("fetch %s roster: %w", rank, err)
	}

	records, err := s.src.LeaveRecordsIntersecting(ctx, start, end, []string{StatusApproved, StatusPending})
	if err != nil {
		return nil, fmt.Errorf("fetch leave records: %w", err)
	}

	return rankAlternatives(pilots, records, excludePilotID), nil
}

func rankAlternatives(pilots []RosterPilot, records []LeaveRecord, excludePilotID string) []PilotRecommendation {
	ordered := make([]RosterPilot, len(pilots))
	copy(ordered, pilots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SeniorityNumber < ordered[j].SeniorityNumber
	})

	states := make(map[string]string, len(records))
	for _, record := range records {
		switch record.Status {
		case StatusApproved:
			states[record.PilotID] = PilotOnLeave
		case StatusPending:
			// approved leave outweighs a pending request for the range
			if states[record.PilotID] != PilotOnLeave {
				states[record.PilotID] = PilotPendingLeave
			}
		}
	}

	out := make([]PilotRecommendation, 0, len(ordered))
	priority := 0
	for _, pilot := range ordered {
		if pilot.ID == excludePilotID {
			continue
		}
		priority++
		state, ok := states[pilot.ID]
		if !ok {
			state = PilotAvailable
		}
		out = append(out, PilotRecommendation{
			PilotID:         pilot.ID,
			PilotName:       pilot.Name,
			Rank:            pilot.Rank,
			SeniorityNumber: pilot.SeniorityNumber,
			LeaveState:      state,
			Priority:        priority,
		})
	}
	return out
}
