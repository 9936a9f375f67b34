package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"crewops/internal/domain/eligibility"
	"crewops/internal/domain/roster"
)

const JobBulkEligibilityScan = "bulk_eligibility_scan"

// Service runs the nightly bulk eligibility scan over the current roster
// period and records every run in job_runs. All runs, scheduled or manual,
// go through runJob so operators get the same audit trail either way.
type Service struct {
	DB       *pgxpool.Pool
	Engine   *eligibility.Service
	Calendar *roster.Calendar
	cron     *cron.Cron
}

func New(db *pgxpool.Pool, engine *eligibility.Service, calendar *roster.Calendar) *Service {
	return &Service{
		DB:       db,
		Engine:   engine,
		Calendar: calendar,
		// Prevent overlapping scans when one run outlasts the schedule.
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

func (s *Service) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.RunBulkScan(ctx, s.Calendar.CodeFor(time.Now())); err != nil {
			slog.Warn("scheduled bulk scan failed", "err", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunBulkScan evaluates every pending leave request in the given roster
// period and returns the bucketed result.
func (s *Service) RunBulkScan(ctx context.Context, rosterPeriod string) (*eligibility.BulkEligibilityResult, error) {
	details, err := s.runJob(ctx, JobBulkEligibilityScan, func(ctx context.Context) (any, error) {
		return s.Engine.CheckBulkEligibility(ctx, rosterPeriod)
	})
	result, _ := details.(*eligibility.BulkEligibilityResult)
	return result, err
}

func (s *Service) runJob(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1, $2)
    RETURNING id
  `, jobType, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

type JobRun struct {
	ID          string          `json:"id"`
	JobType     string          `json:"jobType"`
	Status      string          `json:"status"`
	Details     json.RawMessage `json:"details"`
	StartedAt   time.Time       `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt"`
}

func (s *Service) RecentRuns(ctx context.Context, limit int) ([]JobRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, job_type, status, COALESCE(details_json, '{}'), started_at, completed_at
    FROM job_runs
    ORDER BY started_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []JobRun
	for rows.Next() {
		var run JobRun
		if err := rows.Scan(&run.ID, &run.JobType, &run.Status, &run.Details, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
