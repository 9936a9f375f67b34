package eligibility

import (
	"context"
	"fmt"
)

// GetConflictingRequests runs seniority arbitration for a candidate:
// it finds other PENDING requests of the same rank whose dates overlap,
// touch, or sit near the candidate's, classifies and ranks them, and
// renders a spreading recommendation when approving everyone would breach
// the fleet-wide minimum for the rank.
//
// Cross-rank requests never compete: same-rank leave pools are fungible
// for minimum-crew purposes, other ranks are not.
func (s *Service) GetConflictingRequests(ctx context.Context, candidate LeaveRequestCheck) (*ConflictingRequestsResult, error) {
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

	// widen the fetch window so ADJACENT and NEARBY competitors are
	// visible to classification; the broad intersection filter alone
	// would hide them
	fetchStart := candidate.StartDate.AddDays(-NearbyWindowDays)
	fetchEnd := candidate.EndDate.AddDays(NearbyWindowDays)
	pending, err := s.src.PendingByRankIntersecting(ctx, candidate.PilotRank, fetchStart, fetchEnd)
	if err != nil {
		return nil, fmt.Errorf("fetch pending requests: %w", err)
	}

	totalOfRank, err := s.src.ActivePilotCount(ctx, candidate.PilotRank)
	if err != nil {
		return nil, fmt.Errorf("count %s pilots: %w", candidate.PilotRank, err)
	}

	approved, err := s.src.LeaveRecordsIntersecting(ctx, candidate.StartDate, candidate.EndDate, []string{StatusApproved})
	if err != nil {
		return nil, fmt.Errorf("fetch approved leave: %w", err)
	}

	requirements, err := s.Requirements(ctx)
	if err != nil {
		return nil, err
	}

	result := arbitrate(candidate, pilot.SeniorityNumber, pending, approved, totalOfRank, requirements)
	return &result, nil
}

// arbitrate is the pure core of the Seniority Arbitration Engine.
func arbitrate(candidate LeaveRequestCheck, candidateSeniority int, pending, approved []LeaveRecord, totalOfRank int, requirements CrewRequirements) ConflictingRequestsResult {
	competitors := make([]ConflictingRequest, 0, len(pending))
	for _, record := range pending {
		if record.PilotRank != candidate.PilotRank {
			continue
		}
		isSelf := record.ID != "" && record.ID == candidate.RequestID
		overlapType, overlappingDays := ClassifyOverlap(candidate.StartDate, candidate.EndDate, record.StartDate, record.EndDate)
		competitors = append(competitors, ConflictingRequest{
			RequestID:       record.ID,
			PilotID:         record.PilotID,
			PilotName:       record.PilotName,
			PilotRank:       record.PilotRank,
			SeniorityNumber: record.SeniorityNumber,
			StartDate:       record.StartDate,
			EndDate:         record.EndDate,
			OverlappingDays: overlappingDays,
			OverlapType:     overlapType,
			IsOwnRequest:    isSelf,
			IsPriority:      !isSelf && record.PilotID != candidate.PilotID && record.SeniorityNumber < candidateSeniority,
		})
	}
	SortCompetitors(competitors)

	// only requests sharing days with the candidate pull crew off the
	// roster at the same time; adjacent and nearby windows are listed
	// for context but never drive the contention math
	contenders := make([]ConflictingRequest, 0, len(competitors))
	for _, c := range competitors {
		if c.OverlapType.Intersects() {
			contenders = append(contenders, c)
		}
	}

	// the candidate itself competes even before its request is persisted
	competingCount := len(contenders)
	if !containsOwnRequest(contenders) {
		competingCount++
	}

	result := ConflictingRequestsResult{ConflictingRequests: competitors}
	if competingCount < 2 {
		return result
	}

	// worst-day approved absence over the candidate window, then assume
	// every competing request is approved on top of it
	peakApproved := peakConcurrentOnLeave(candidate.PilotRank, candidate.StartDate, candidate.EndDate, approved)
	availableAfterAll := totalOfRank - peakApproved - competingCount
	minimum := requirements.MinimumFor(candidate.PilotRank)

	if availableAfterAll >= minimum {
		result.SeniorityRecommendation = renderAllApprovable(candidate.PilotRank, competingCount)
		return result
	}

	winner := pickWinner(contenders, candidate, candidateSeniority)
	for i := range competitors {
		c := &competitors[i]
		if !c.OverlapType.Intersects() {
			continue
		}
		if competitorKey(*c) == winner {
			c.Recommendation = renderApproveRecommendation(c.SeniorityNumber)
			continue
		}
		c.Recommendation = renderDeferRecommendation(c.SeniorityNumber)
		c.SpreadSuggestion = renderSpreadSuggestion(c.StartDate, c.EndDate)
	}
	result.SeniorityRecommendation = renderContentionSummary(candidate.PilotRank, competingCount, winnerSeniority(contenders, winner, candidateSeniority))
	return result
}

// pickWinner returns the key of the single competitor to approve: rank
// then seniority number ascending. When the candidate itself outranks
// every listed competitor its own (possibly unpersisted) request wins.
func pickWinner(competitors []ConflictingRequest, candidate LeaveRequestCheck, candidateSeniority int) string {
	best := ""
	bestSeniority := UnrankedSeniority + 1
	for _, c := range competitors {
		if c.SeniorityNumber < bestSeniority {
			bestSeniority = c.SeniorityNumber
			best = competitorKey(c)
		}
	}
	if !hasOwnEntry(competitors, candidate) && candidateSeniority < bestSeniority {
		return candidateSelfKey(candidate)
	}
	return best
}

func competitorKey(c ConflictingRequest) string {
	if c.RequestID != "" {
		return c.RequestID
	}
	return c.PilotID
}

func candidateSelfKey(candidate LeaveRequestCheck) string {
	if candidate.RequestID != "" {
		return candidate.RequestID
	}
	return candidate.PilotID
}

func hasOwnEntry(competitors []ConflictingRequest, candidate LeaveRequestCheck) bool {
	for _, c := range competitors {
		if c.IsOwnRequest || c.PilotID == candidate.PilotID {
			return true
		}
	}
	return false
}

func containsOwnRequest(competitors []ConflictingRequest) bool {
	for _, c := range competitors {
		if c.IsOwnRequest {
			return true
		}
	}
	return false
}

func winnerSeniority(competitors []ConflictingRequest, winner string, candidateSeniority int) int {
	for _, c := range competitors {
		if competitorKey(c) == winner {
			return c.SeniorityNumber
		}
	}
	return candidateSeniority
}

// peakConcurrentOnLeave returns the highest single-day count of records of
// the given rank covering any day of [start, end].
func peakConcurrentOnLeave(rank Rank, start, end Date, records []LeaveRecord) int {
	peak := 0
	for day := start; !day.After(end); day = day.AddDays(1) {
		count := 0
		for _, record := range records {
			if record.PilotRank != rank {
				continue
			}
			if day.Before(record.StartDate) || day.After(record.EndDate) {
				continue
			}
			count++
		}
		if count > peak {
			peak = count
		}
	}
	return peak
}
