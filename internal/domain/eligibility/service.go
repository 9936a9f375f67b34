package eligibility

import (
	"context"
	"regexp"
)

// RosterPilot is one active pilot as supplied by the roster source.
type RosterPilot struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Rank            Rank   `json:"rank"`
	SeniorityNumber int    `json:"seniorityNumber"`
}

// RequirementsConfig is the raw configuration record for crew minimums.
// A nil record means no configuration exists and defaults apply.
type RequirementsConfig struct {
	CaptainsPerHull      int
	FirstOfficersPerHull int
	NumberOfAircraft     int
}

// DataSource supplies the engine's inputs. The engine only reads; it
// never writes through this interface.
type DataSource interface {
	// ActivePilotCount returns the number of active pilots of a rank.
	ActivePilotCount(ctx context.Context, rank Rank) (int, error)

	// ActivePilots lists active pilots of a rank, seniority ascending
	// with unranked pilots last.
	ActivePilots(ctx context.Context, rank Rank) ([]RosterPilot, error)

	// PilotByID returns an active pilot by id, nil when none exists.
	PilotByID(ctx context.Context, pilotID string) (*RosterPilot, error)

	// LeaveRecordsIntersecting returns leave records with one of the
	// given statuses whose inclusive interval intersects [start, end].
	LeaveRecordsIntersecting(ctx context.Context, start, end Date, statuses []string) ([]LeaveRecord, error)

	// PendingByRankIntersecting returns PENDING records of a rank whose
	// interval intersects [start, end].
	PendingByRankIntersecting(ctx context.Context, rank Rank, start, end Date) ([]LeaveRecord, error)

	// PendingByRosterPeriod returns PENDING records tagged with a roster
	// period code, start date ascending.
	PendingByRosterPeriod(ctx context.Context, periodCode string) ([]LeaveRecord, error)

	// RequirementsConfig returns the crew requirements record, nil when
	// none is configured.
	RequirementsConfig(ctx context.Context) (*RequirementsConfig, error)
}

// Service is the Crew Availability & Leave Eligibility Engine. It is
// stateless: every method is a pure function of its arguments and the
// data source's contents at call time.
type Service struct {
	src DataSource
}

func NewService(src DataSource) *Service {
	return &Service{src: src}
}

var periodCodePattern = regexp.MustCompile(`^RP([1-9]|1[0-3])/\d{4}$`)

func validPeriodCode(code string) bool {
	return periodCodePattern.MatchString(code)
}
