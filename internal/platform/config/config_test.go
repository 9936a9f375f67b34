package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.Fleet.CaptainsPerHull != 7 || cfg.Fleet.FirstOfficersPerHull != 7 {
		t.Fatalf("expected 7/7 per-hull defaults, got %d/%d", cfg.Fleet.CaptainsPerHull, cfg.Fleet.FirstOfficersPerHull)
	}
	if cfg.Fleet.NumberOfAircraft != 2 {
		t.Fatalf("expected 2 aircraft, got %d", cfg.Fleet.NumberOfAircraft)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error without DATABASE_URL")
	}
	cfg.DatabaseURL = "postgres://localhost/crewops"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsZeroFleet(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = "postgres://localhost/crewops"
	cfg.Fleet.NumberOfAircraft = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero aircraft")
	}
}

func TestLoadFleetConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fleet.yaml")
	payload := []byte("captainsPerHull: 9\nfirstOfficersPerHull: 8\nnumberOfAircraft: 3\nrosterAnchorDate: \"2026-01-06\"\n")
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("write fleet config: %v", err)
	}

	fleet, err := LoadFleetConfig(path)
	if err != nil {
		t.Fatalf("load fleet config: %v", err)
	}
	if fleet.CaptainsPerHull != 9 || fleet.FirstOfficersPerHull != 8 || fleet.NumberOfAircraft != 3 {
		t.Fatalf("unexpected fleet values: %+v", fleet)
	}

	merged := mergeFleet(Load().Fleet, fleet)
	if merged.CaptainsPerHull != 9 {
		t.Fatalf("expected override to win, got %d", merged.CaptainsPerHull)
	}
	if merged.RosterAnchorNumber != 1 {
		t.Fatalf("expected unset override to keep base, got %d", merged.RosterAnchorNumber)
	}
}

func TestLoadFleetConfigMissingFile(t *testing.T) {
	if _, err := LoadFleetConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing fleet config file")
	}
}
