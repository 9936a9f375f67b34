package eligibility

import "errors"

var (
	// ErrPilotNotFound distinguishes a missing candidate pilot from a
	// zero-conflict eligibility result.
	ErrPilotNotFound = errors.New("pilot not found")

	// ErrRosterPeriodNotFound is returned for an unknown or malformed
	// roster period code in bulk evaluation.
	ErrRosterPeriodNotFound = errors.New("roster period not found")

	// ErrInvalidDateRange is returned when a candidate's end date
	// precedes its start date.
	ErrInvalidDateRange = errors.New("end date before start date")
)
