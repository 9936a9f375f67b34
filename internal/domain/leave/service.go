package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crewops/internal/domain/eligibility"
	"crewops/internal/domain/roster"
)

var (
	ErrNotFound     = errors.New("leave request not found")
	ErrInvalidState = errors.New("invalid state")

	// ErrEligibilityDenied blocks an approval whose eligibility verdict
	// is DENY; pass override to approve anyway.
	ErrEligibilityDenied = errors.New("eligibility check recommends denial")
)

type Service struct {
	DB       *pgxpool.Pool
	Engine   *eligibility.Service
	Calendar *roster.Calendar
}

func NewService(db *pgxpool.Pool, engine *eligibility.Service, calendar *roster.Calendar) *Service {
	return &Service{DB: db, Engine: engine, Calendar: calendar}
}

type ListFilter struct {
	Status       string
	RosterPeriod string
	PilotID      string
	Limit        int
	Offset       int
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	query := `
    SELECT lr.id, lr.pilot_id, p.first_name || ' ' || p.last_name, lr.rank, lr.roster_period,
           lr.request_type, lr.start_date, lr.end_date, lr.reason, lr.status,
           lr.created_at, lr.decided_at, COALESCE(lr.decided_by, '')
    FROM leave_requests lr
    JOIN pilots p ON lr.pilot_id = p.id
    WHERE true
  `
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND lr.status = $%d", len(args))
	}
	if filter.RosterPeriod != "" {
		args = append(args, filter.RosterPeriod)
		query += fmt.Sprintf(" AND lr.roster_period = $%d", len(args))
	}
	if filter.PilotID != "" {
		args = append(args, filter.PilotID)
		query += fmt.Sprintf(" AND lr.pilot_id = $%d", len(args))
	}
	query += " ORDER BY lr.start_date, lr.created_at"
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Service) Get(ctx context.Context, id string) (LeaveRequest, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT lr.id, lr.pilot_id, p.first_name || ' ' || p.last_name, lr.rank, lr.roster_period,
           lr.request_type, lr.start_date, lr.end_date, lr.reason, lr.status,
           lr.created_at, lr.decided_at, COALESCE(lr.decided_by, '')
    FROM leave_requests lr
    JOIN pilots p ON lr.pilot_id = p.id
    WHERE lr.id = $1
  `, id)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRequest{}, ErrNotFound
	}
	return req, err
}

// Create persists a new PENDING request. The pilot's rank is denormalized
// onto the request and the roster period derived from the start date when
// the caller does not supply one.
func (s *Service) Create(ctx context.Context, payload LeaveRequest) (LeaveRequest, error) {
	if payload.EndDate.Before(payload.StartDate) {
		return LeaveRequest{}, fmt.Errorf("%w: end date before start date", ErrInvalidState)
	}
	if !ValidType(payload.RequestType) {
		return LeaveRequest{}, fmt.Errorf("%w: unknown request type %q", ErrInvalidState, payload.RequestType)
	}

	var rank string
	err := s.DB.QueryRow(ctx, "SELECT rank FROM pilots WHERE id = $1 AND is_active", payload.PilotID).Scan(&rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRequest{}, eligibility.ErrPilotNotFound
	}
	if err != nil {
		return LeaveRequest{}, err
	}

	period := payload.RosterPeriod
	if period == "" {
		period = s.Calendar.CodeFor(payload.StartDate)
	} else if _, err := s.Calendar.Range(period); err != nil {
		return LeaveRequest{}, fmt.Errorf("%w: %s", ErrInvalidState, period)
	}

	days := int(payload.EndDate.Sub(payload.StartDate).Hours()/24) + 1

	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (pilot_id, rank, roster_period, request_type, start_date, end_date, days, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, payload.PilotID, rank, period, payload.RequestType, payload.StartDate, payload.EndDate, days, payload.Reason, eligibility.StatusPending).Scan(&id); err != nil {
		return LeaveRequest{}, err
	}
	return s.Get(ctx, id)
}

// Approve marks a PENDING request APPROVED. The eligibility engine is
// consulted first: a DENY verdict blocks the approval unless override is
// set. The engine itself never mutates anything; this is the external
// admission control its verdicts feed.
func (s *Service) Approve(ctx context.Context, id, decidedBy string, override bool) (*eligibility.LeaveEligibilityCheck, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != eligibility.StatusPending {
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidState, request.Status)
	}

	check, err := s.Engine.CheckEligibility(ctx, eligibility.LeaveRequestCheck{
		RequestID: request.ID,
		PilotID:   request.PilotID,
		PilotRank: eligibility.Rank(request.Rank),
		StartDate: eligibility.DateOf(request.StartDate),
		EndDate:   eligibility.DateOf(request.EndDate),
	})
	if err != nil {
		return nil, err
	}
	if check.Recommendation == eligibility.RecommendDeny && !override {
		return check, ErrEligibilityDenied
	}

	if err := s.decide(ctx, id, eligibility.StatusApproved, decidedBy); err != nil {
		return check, err
	}
	return check, nil
}

func (s *Service) Deny(ctx context.Context, id, decidedBy string) error {
	request, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if request.Status != eligibility.StatusPending {
		return fmt.Errorf("%w: request is %s", ErrInvalidState, request.Status)
	}
	return s.decide(ctx, id, eligibility.StatusDenied, decidedBy)
}

func (s *Service) decide(ctx context.Context, id, status, decidedBy string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $2, decided_by = $3, decided_at = now()
    WHERE id = $1 AND status = $4
  `, id, status, decidedBy, eligibility.StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (LeaveRequest, error) {
	var req LeaveRequest
	var decidedAt *time.Time
	if err := row.Scan(&req.ID, &req.PilotID, &req.PilotName, &req.Rank, &req.RosterPeriod,
		&req.RequestType, &req.StartDate, &req.EndDate, &req.Reason, &req.Status,
		&req.CreatedAt, &decidedAt, &req.DecidedBy); err != nil {
		return LeaveRequest{}, err
	}
	req.DecidedAt = decidedAt
	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	req.Days = days
	return req, nil
}
