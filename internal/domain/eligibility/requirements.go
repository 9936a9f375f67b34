package eligibility

import "context"

// Defaults applied when no crew requirements record is configured. These
// are deliberate constants: tests pin them, and changing them silently
// changes every verdict the engine produces.
const (
	DefaultCaptainsPerHull      = 7
	DefaultFirstOfficersPerHull = 7
	DefaultNumberOfAircraft     = 2
)

// Requirements resolves the staffing floor for one evaluation. The
// snapshot is recomputed on every call, never cached, so configuration
// changes take effect immediately.
func (s *Service) Requirements(ctx context.Context) (CrewRequirements, error) {
	cfg, err := s.src.RequirementsConfig(ctx)
	if err != nil {
		return CrewRequirements{}, err
	}
	if cfg == nil {
		cfg = &RequirementsConfig{
			CaptainsPerHull:      DefaultCaptainsPerHull,
			FirstOfficersPerHull: DefaultFirstOfficersPerHull,
			NumberOfAircraft:     DefaultNumberOfAircraft,
		}
	}
	return buildRequirements(*cfg), nil
}

func buildRequirements(cfg RequirementsConfig) CrewRequirements {
	return CrewRequirements{
		CaptainsPerHull:      cfg.CaptainsPerHull,
		FirstOfficersPerHull: cfg.FirstOfficersPerHull,
		NumberOfAircraft:     cfg.NumberOfAircraft,
		MinimumCaptains:      cfg.CaptainsPerHull * cfg.NumberOfAircraft,
		MinimumFirstOfficers: cfg.FirstOfficersPerHull * cfg.NumberOfAircraft,
	}
}
