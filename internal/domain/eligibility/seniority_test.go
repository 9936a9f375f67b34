package eligibility

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestArbitrationSeniorityContention(t *testing.T) {
	start := d(2026, time.June, 8)
	end := start.AddDays(6)

	// two first officers want the exact same week; one more is already on
	// approved leave, so approving both would leave 9 of the required 10
	source := &fakeSource{
		pilots: crewOf(12, 12),
		config: twoHullConfig,
		records: []LeaveRecord{
			record("req-4", foID(4), RankFirstOfficer, 4, StatusPending, start, end),
			record("req-9", foID(9), RankFirstOfficer, 9, StatusPending, start, end),
			record("appr-11", foID(11), RankFirstOfficer, 11, StatusApproved, start, end),
		},
	}
	service := NewService(source)

	result, err := service.GetConflictingRequests(context.Background(), LeaveRequestCheck{
		RequestID: "req-4",
		PilotID:   foID(4),
		PilotRank: RankFirstOfficer,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.ConflictingRequests) != 2 {
		t.Fatalf("expected 2 competitors, got %d", len(result.ConflictingRequests))
	}

	winner := result.ConflictingRequests[0]
	loser := result.ConflictingRequests[1]
	if winner.RequestID != "req-4" || loser.RequestID != "req-9" {
		t.Fatalf("unexpected ordering: %s then %s", winner.RequestID, loser.RequestID)
	}
	if winner.OverlapType != OverlapExact || loser.OverlapType != OverlapExact {
		t.Fatalf("expected EXACT overlaps, got %s and %s", winner.OverlapType, loser.OverlapType)
	}
	if !winner.IsOwnRequest {
		t.Fatal("candidate's own record must be flagged")
	}
	if winner.IsPriority {
		t.Fatal("a request is never priority over itself")
	}
	if loser.IsPriority {
		t.Fatal("seniority #9 must not outrank the #4 candidate")
	}

	if !strings.Contains(winner.Recommendation, "#4") {
		t.Fatalf("expected approval recommendation for #4, got %q", winner.Recommendation)
	}
	if loser.SpreadSuggestion == "" || winner.SpreadSuggestion != "" {
		t.Fatalf("expected spread suggestion only for the outranked request: winner=%q loser=%q", winner.SpreadSuggestion, loser.SpreadSuggestion)
	}
	// three shifted windows of the original duration
	if got := strings.Count(loser.SpreadSuggestion, " to "); got != 3 {
		t.Fatalf("expected 3 alternative windows, got %d in %q", got, loser.SpreadSuggestion)
	}
	if !strings.Contains(loser.SpreadSuggestion, "2026-06-01 to 2026-06-07") {
		t.Fatalf("expected a week-earlier window, got %q", loser.SpreadSuggestion)
	}
	if !strings.Contains(result.SeniorityRecommendation, "#4") {
		t.Fatalf("expected summary naming the winner, got %q", result.SeniorityRecommendation)
	}
}

func TestArbitrationPriorityForMoreSeniorCompetitor(t *testing.T) {
	start := d(2026, time.June, 8)
	end := start.AddDays(6)

	source := &fakeSource{
		pilots: crewOf(12, 12),
		config: twoHullConfig,
		records: []LeaveRecord{
			record("req-4", foID(4), RankFirstOfficer, 4, StatusPending, start, end),
		},
	}
	service := NewService(source)

	// junior candidate, not yet persisted
	result, err := service.GetConflictingRequests(context.Background(), LeaveRequestCheck{
		PilotID:   foID(9),
		PilotRank: RankFirstOfficer,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.ConflictingRequests) != 1 {
		t.Fatalf("expected 1 competitor, got %d", len(result.ConflictingRequests))
	}
	if !result.ConflictingRequests[0].IsPriority {
		t.Fatal("the #4 competitor must outrank the #9 candidate")
	}
}

func TestArbitrationAllApprovableNote(t *testing.T) {
	start := d(2026, time.June, 8)
	end := start.AddDays(6)

	// nobody on approved leave: 12 - 2 competing = 10, exactly the minimum
	source := &fakeSource{
		pilots: crewOf(12, 12),
		config: twoHullConfig,
		records: []LeaveRecord{
			record("req-4", foID(4), RankFirstOfficer, 4, StatusPending, start, end),
			record("req-9", foID(9), RankFirstOfficer, 9, StatusPending, start, end),
		},
	}
	service := NewService(source)

	result, err := service.GetConflictingRequests(context.Background(), LeaveRequestCheck{
		RequestID: "req-4",
		PilotID:   foID(4),
		PilotRank: RankFirstOfficer,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.SeniorityRecommendation, "can be approved") {
		t.Fatalf("expected informational note, got %q", result.SeniorityRecommendation)
	}
	for _, competitor := range result.ConflictingRequests {
		if competitor.SpreadSuggestion != "" {
			t.Fatalf("no spread suggestions when crew suffices, got %q", competitor.SpreadSuggestion)
		}
	}
}

func TestArbitrationNoContentionWithoutCompetitors(t *testing.T) {
	start := d(2026, time.June, 8)
	end := start.AddDays(6)

	source := &fakeSource{
		pilots: crewOf(12, 12),
		config: twoHullConfig,
		records: []LeaveRecord{
			record("req-4", foID(4), RankFirstOfficer, 4, StatusPending, start, end),
		},
	}
	service := NewService(source)

	result, err := service.GetConflictingRequests(context.Background(), LeaveRequestCheck{
		RequestID: "req-4",
		PilotID:   foID(4),
		PilotRank: RankFirstOfficer,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SeniorityRecommendation != "" {
		t.Fatalf("expected no recommendation for a lone request, got %q", result.SeniorityRecommendation)
	}
}

func TestArbitrationDisjointWindowsDoNotDriveContention(t *testing.T) {
	start := d(2026, time.June, 8)
	end := start.AddDays(4)

	// one exact competitor plus a nearby window: only the exact one
	// removes crew on the candidate's days, so 12 - 2 = 10 holds the
	// minimum and nobody is asked to move
	source := &fakeSource{
		pilots: crewOf(12, 12),
		config: twoHullConfig,
		records: []LeaveRecord{
			record("req-4", foID(4), RankFirstOfficer, 4, StatusPending, start, end),
			record("req-near", foID(2), RankFirstOfficer, 2, StatusPending, d(2026, time.June, 21), d(2026, time.June, 24)),
		},
	}
	service := NewService(source)

	result, err := service.GetConflictingRequests(context.Background(), LeaveRequestCheck{
		PilotID:   foID(9),
		PilotRank: RankFirstOfficer,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.SeniorityRecommendation, "All 2 overlapping") {
		t.Fatalf("expected the nearby window excluded from the count, got %q", result.SeniorityRecommendation)
	}
	for _, competitor := range result.ConflictingRequests {
		if competitor.SpreadSuggestion != "" {
			t.Fatalf("no spread suggestions without a real breach, got %q for %s", competitor.SpreadSuggestion, competitor.RequestID)
		}
	}
}

func TestArbitrationCrossRankNeverCompetes(t *testing.T) {
	start := d(2026, time.June, 8)
	end := start.AddDays(6)

	source := &fakeSource{
		pilots: crewOf(12, 12),
		config: twoHullConfig,
		records: []LeaveRecord{
			record("req-c1", captainID(1), RankCaptain, 1, StatusPending, start, end),
		},
	}
	service := NewService(source)

	result, err := service.GetConflictingRequests(context.Background(), LeaveRequestCheck{
		PilotID:   foID(9),
		PilotRank: RankFirstOfficer,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.ConflictingRequests) != 0 {
		t.Fatalf("captain requests must not compete with a first officer, got %d", len(result.ConflictingRequests))
	}
}

func TestArbitrationPicksUpAdjacentAndNearby(t *testing.T) {
	start := d(2026, time.June, 8)
	end := start.AddDays(4) // 8th to 12th

	source := &fakeSource{
		pilots: crewOf(12, 12),
		config: twoHullConfig,
		records: []LeaveRecord{
			// 2 day gap after the candidate's end
			record("req-adj", foID(2), RankFirstOfficer, 2, StatusPending, d(2026, time.June, 15), d(2026, time.June, 18)),
			// 8 day gap, inside the fetch window but past adjacency
			record("req-near", foID(3), RankFirstOfficer, 3, StatusPending, d(2026, time.June, 21), d(2026, time.June, 24)),
		},
	}
	service := NewService(source)

	result, err := service.GetConflictingRequests(context.Background(), LeaveRequestCheck{
		PilotID:   foID(9),
		PilotRank: RankFirstOfficer,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.ConflictingRequests) != 2 {
		t.Fatalf("expected adjacent and nearby competitors, got %d", len(result.ConflictingRequests))
	}
	if result.ConflictingRequests[0].OverlapType != OverlapAdjacent {
		t.Fatalf("expected ADJACENT first, got %s", result.ConflictingRequests[0].OverlapType)
	}
	if result.ConflictingRequests[1].OverlapType != OverlapNearby {
		t.Fatalf("expected NEARBY second, got %s", result.ConflictingRequests[1].OverlapType)
	}
}
