package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"crewops/internal/domain/users"
	"crewops/internal/platform/config"
)

// Seed makes sure a fresh database has an admin account and a crew
// requirements row. It is idempotent; existing rows are left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureRequirements(ctx, pool, cfg.Fleet); err != nil {
		return err
	}
	if cfg.SeedAdminEmail != "" {
		if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}
	return nil
}

func ensureRequirements(ctx context.Context, pool *pgxpool.Pool, fleet config.FleetConfig) error {
	_, err := pool.Exec(ctx, `
    INSERT INTO crew_requirements (id, captains_per_hull, first_officers_per_hull, number_of_aircraft)
    VALUES (1, $1, $2, $3)
    ON CONFLICT (id) DO NOTHING
  `, fleet.CaptainsPerHull, fleet.FirstOfficersPerHull, fleet.NumberOfAircraft)
	return err
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		slog.Warn("seed admin skipped, empty password", "email", email)
		return nil
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, name, role, password_hash)
    VALUES ($1, $2, $3, $4)
  `, email, "Crew Planning Admin", users.RoleAdmin, hash)
	if err != nil {
		return err
	}
	slog.Info("seeded admin user", "email", email)
	return nil
}
