package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	JWTSecret          string
	Environment        string
	SeedAdminEmail     string
	SeedAdminPassword  string
	RunMigrations      bool
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
	FleetConfigPath    string
	BulkScanSchedule   string
	Fleet              FleetConfig
}

// FleetConfig carries the operational fleet parameters that drive crewing
// minimums and roster period arithmetic. When FLEET_CONFIG points at a YAML
// file its values take precedence over the flat environment variables.
type FleetConfig struct {
	CaptainsPerHull      int    `yaml:"captainsPerHull"`
	FirstOfficersPerHull int    `yaml:"firstOfficersPerHull"`
	NumberOfAircraft     int    `yaml:"numberOfAircraft"`
	RosterAnchorDate     string `yaml:"rosterAnchorDate"`
	RosterAnchorNumber   int    `yaml:"rosterAnchorNumber"`
	RosterAnchorYear     int    `yaml:"rosterAnchorYear"`
}

func Load() Config {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		Environment:        getEnv("APP_ENV", "development"),
		SeedAdminEmail:     getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:  getEnv("SEED_ADMIN_PASSWORD", ""),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:            getEnvBool("RUN_SEED", true),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		FleetConfigPath:    getEnv("FLEET_CONFIG", ""),
		BulkScanSchedule:   getEnv("BULK_SCAN_SCHEDULE", "0 0 2 * * *"),
		Fleet: FleetConfig{
			CaptainsPerHull:      getEnvInt("FLEET_CAPTAINS_PER_HULL", 7),
			FirstOfficersPerHull: getEnvInt("FLEET_FIRST_OFFICERS_PER_HULL", 7),
			NumberOfAircraft:     getEnvInt("FLEET_NUMBER_OF_AIRCRAFT", 2),
			RosterAnchorDate:     getEnv("ROSTER_ANCHOR_DATE", "2026-01-06"),
			RosterAnchorNumber:   getEnvInt("ROSTER_ANCHOR_NUMBER", 1),
			RosterAnchorYear:     getEnvInt("ROSTER_ANCHOR_YEAR", 2026),
		},
	}

	if cfg.FleetConfigPath != "" {
		fleet, err := LoadFleetConfig(cfg.FleetConfigPath)
		if err == nil {
			cfg.Fleet = mergeFleet(cfg.Fleet, fleet)
		}
	}

	return cfg
}

func LoadFleetConfig(path string) (FleetConfig, error) {
	var fleet FleetConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return fleet, err
	}
	if err := yaml.Unmarshal(raw, &fleet); err != nil {
		return fleet, fmt.Errorf("parse fleet config %s: %w", path, err)
	}
	return fleet, nil
}

func mergeFleet(base, override FleetConfig) FleetConfig {
	if override.CaptainsPerHull > 0 {
		base.CaptainsPerHull = override.CaptainsPerHull
	}
	if override.FirstOfficersPerHull > 0 {
		base.FirstOfficersPerHull = override.FirstOfficersPerHull
	}
	if override.NumberOfAircraft > 0 {
		base.NumberOfAircraft = override.NumberOfAircraft
	}
	if override.RosterAnchorDate != "" {
		base.RosterAnchorDate = override.RosterAnchorDate
	}
	if override.RosterAnchorNumber > 0 {
		base.RosterAnchorNumber = override.RosterAnchorNumber
	}
	if override.RosterAnchorYear > 0 {
		base.RosterAnchorYear = override.RosterAnchorYear
	}
	return base
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Fleet.CaptainsPerHull <= 0 || c.Fleet.FirstOfficersPerHull <= 0 || c.Fleet.NumberOfAircraft <= 0 {
		return fmt.Errorf("fleet crewing parameters must all be positive")
	}
	return nil
}
