package eligibility

import (
	"context"
	"sort"
	"time"
)

// fakeSource is an in-memory DataSource for engine tests.
type fakeSource struct {
	pilots   []RosterPilot
	records  []LeaveRecord
	periodOf map[string]string
	config   *RequirementsConfig
	err      error
}

func (f *fakeSource) ActivePilotCount(_ context.Context, rank Rank) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, p := range f.pilots {
		if p.Rank == rank {
			count++
		}
	}
	return count, nil
}

func (f *fakeSource) ActivePilots(_ context.Context, rank Rank) ([]RosterPilot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []RosterPilot
	for _, p := range f.pilots {
		if p.Rank == rank {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) PilotByID(_ context.Context, pilotID string) (*RosterPilot, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.pilots {
		if p.ID == pilotID {
			pilot := p
			return &pilot, nil
		}
	}
	return nil, nil
}

func (f *fakeSource) LeaveRecordsIntersecting(_ context.Context, start, end Date, statuses []string) ([]LeaveRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []LeaveRecord
	for _, r := range f.records {
		if !statusIn(r.Status, statuses) {
			continue
		}
		if RangesIntersect(start, end, r.StartDate, r.EndDate) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSource) PendingByRankIntersecting(_ context.Context, rank Rank, start, end Date) ([]LeaveRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []LeaveRecord
	for _, r := range f.records {
		if r.Status != StatusPending || r.PilotRank != rank {
			continue
		}
		if RangesIntersect(start, end, r.StartDate, r.EndDate) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSource) PendingByRosterPeriod(_ context.Context, periodCode string) ([]LeaveRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []LeaveRecord
	for _, r := range f.records {
		if r.Status == StatusPending && f.periodOf[r.ID] == periodCode {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

func (f *fakeSource) RequirementsConfig(_ context.Context) (*RequirementsConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

func statusIn(status string, statuses []string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func d(year int, month time.Month, day int) Date {
	return NewDate(year, month, day)
}

func pilot(id string, rank Rank, seniority int) RosterPilot {
	return RosterPilot{ID: id, Name: "Pilot " + id, Rank: rank, SeniorityNumber: seniority}
}

func record(id, pilotID string, rank Rank, seniority int, status string, start, end Date) LeaveRecord {
	return LeaveRecord{
		ID:              id,
		PilotID:         pilotID,
		PilotRank:       rank,
		SeniorityNumber: seniority,
		Status:          status,
		StartDate:       start,
		EndDate:         end,
	}
}

// crewOf builds a roster of n captains and m first officers with
// seniority numbers 1..n and 1..m.
func crewOf(captains, firstOfficers int) []RosterPilot {
	var pilots []RosterPilot
	for i := 1; i <= captains; i++ {
		pilots = append(pilots, pilot(captainID(i), RankCaptain, i))
	}
	for i := 1; i <= firstOfficers; i++ {
		pilots = append(pilots, pilot(foID(i), RankFirstOfficer, i))
	}
	return pilots
}

func captainID(i int) string {
	return "capt-" + string(rune('0'+i/10)) + string(rune('0'+i%10))
}

func foID(i int) string {
	return "fo-" + string(rune('0'+i/10)) + string(rune('0'+i%10))
}
