package pilots

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("pilot not found")

const (
	RankCaptain      = "Captain"
	RankFirstOfficer = "First Officer"
)

func ValidRank(rank string) bool {
	return rank == RankCaptain || rank == RankFirstOfficer
}

type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) List(ctx context.Context, includeInactive bool) ([]Pilot, error) {
	query := `
    SELECT id, employee_id, first_name, last_name, rank, seniority_number, is_active, commencement_date, created_at
    FROM pilots
  `
	if !includeInactive {
		query += " WHERE is_active"
	}
	query += " ORDER BY COALESCE(seniority_number, 9999), last_name"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Pilot
	for rows.Next() {
		var p Pilot
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.FirstName, &p.LastName, &p.Rank, &p.SeniorityNumber, &p.IsActive, &p.CommencementDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Service) Get(ctx context.Context, id string) (Pilot, error) {
	var p Pilot
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, first_name, last_name, rank, seniority_number, is_active, commencement_date, created_at
    FROM pilots
    WHERE id = $1
  `, id).Scan(&p.ID, &p.EmployeeID, &p.FirstName, &p.LastName, &p.Rank, &p.SeniorityNumber, &p.IsActive, &p.CommencementDate, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Pilot{}, ErrNotFound
	}
	return p, err
}

func (s *Service) Create(ctx context.Context, payload Pilot) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO pilots (employee_id, first_name, last_name, rank, seniority_number, is_active, commencement_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, payload.EmployeeID, payload.FirstName, payload.LastName, payload.Rank, payload.SeniorityNumber, true, payload.CommencementDate).Scan(&id)
	return id, err
}

func (s *Service) Update(ctx context.Context, id string, payload Pilot) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE pilots
    SET first_name = $2, last_name = $3, rank = $4, seniority_number = $5, is_active = $6, commencement_date = $7
    WHERE id = $1
  `, id, payload.FirstName, payload.LastName, payload.Rank, payload.SeniorityNumber, payload.IsActive, payload.CommencementDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE pilots SET is_active = false WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
