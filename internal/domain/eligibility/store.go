package eligibility

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres-backed DataSource.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ActivePilotCount(ctx context.Context, rank Rank) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM pilots
    WHERE is_active AND rank = $1
  `, string(rank)).Scan(&count)
	return count, err
}

func (s *Store) ActivePilots(ctx context.Context, rank Rank) ([]RosterPilot, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name || ' ' || last_name, rank, COALESCE(seniority_number, 9999)
    FROM pilots
    WHERE is_active AND rank = $1
    ORDER BY COALESCE(seniority_number, 9999), last_name
  `, string(rank))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pilots []RosterPilot
	for rows.Next() {
		var p RosterPilot
		var rankValue string
		if err := rows.Scan(&p.ID, &p.Name, &rankValue, &p.SeniorityNumber); err != nil {
			return nil, err
		}
		p.Rank = Rank(rankValue)
		pilots = append(pilots, p)
	}
	return pilots, rows.Err()
}

func (s *Store) PilotByID(ctx context.Context, pilotID string) (*RosterPilot, error) {
	var p RosterPilot
	var rankValue string
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name || ' ' || last_name, rank, COALESCE(seniority_number, 9999)
    FROM pilots
    WHERE is_active AND id = $1
  `, pilotID).Scan(&p.ID, &p.Name, &rankValue, &p.SeniorityNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Rank = Rank(rankValue)
	return &p, nil
}

func (s *Store) LeaveRecordsIntersecting(ctx context.Context, start, end Date, statuses []string) ([]LeaveRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT lr.id, lr.pilot_id, p.first_name || ' ' || p.last_name, lr.rank,
           lr.start_date, lr.end_date, lr.status, COALESCE(p.seniority_number, 9999)
    FROM leave_requests lr
    JOIN pilots p ON lr.pilot_id = p.id
    WHERE lr.status = ANY($3)
      AND lr.end_date >= $1 AND lr.start_date <= $2
    ORDER BY lr.start_date, lr.id
  `, start.Time(), end.Time(), statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaveRecords(rows)
}

func (s *Store) PendingByRankIntersecting(ctx context.Context, rank Rank, start, end Date) ([]LeaveRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT lr.id, lr.pilot_id, p.first_name || ' ' || p.last_name, lr.rank,
           lr.start_date, lr.end_date, lr.status, COALESCE(p.seniority_number, 9999)
    FROM leave_requests lr
    JOIN pilots p ON lr.pilot_id = p.id
    WHERE lr.status = $1 AND lr.rank = $2
      AND lr.end_date >= $3 AND lr.start_date <= $4
    ORDER BY lr.start_date, lr.id
  `, StatusPending, string(rank), start.Time(), end.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaveRecords(rows)
}

func (s *Store) PendingByRosterPeriod(ctx context.Context, periodCode string) ([]LeaveRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT lr.id, lr.pilot_id, p.first_name || ' ' || p.last_name, lr.rank,
           lr.start_date, lr.end_date, lr.status, COALESCE(p.seniority_number, 9999)
    FROM leave_requests lr
    JOIN pilots p ON lr.pilot_id = p.id
    WHERE lr.status = $1 AND lr.roster_period = $2
    ORDER BY lr.start_date, lr.id
  `, StatusPending, periodCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaveRecords(rows)
}

func (s *Store) RequirementsConfig(ctx context.Context) (*RequirementsConfig, error) {
	var cfg RequirementsConfig
	err := s.DB.QueryRow(ctx, `
    SELECT captains_per_hull, first_officers_per_hull, number_of_aircraft
    FROM crew_requirements
    WHERE id = 1
  `).Scan(&cfg.CaptainsPerHull, &cfg.FirstOfficersPerHull, &cfg.NumberOfAircraft)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func scanLeaveRecords(rows pgx.Rows) ([]LeaveRecord, error) {
	var records []LeaveRecord
	for rows.Next() {
		var record LeaveRecord
		var rankValue string
		var startDate, endDate time.Time
		if err := rows.Scan(&record.ID, &record.PilotID, &record.PilotName, &rankValue, &startDate, &endDate, &record.Status, &record.SeniorityNumber); err != nil {
			return nil, err
		}
		record.PilotRank = Rank(rankValue)
		record.StartDate = DateOf(startDate)
		record.EndDate = DateOf(endDate)
		records = append(records, record)
	}
	return records, rows.Err()
}
