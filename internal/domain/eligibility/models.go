package eligibility

// Rank is a crew category tracked independently for minimum-staffing
// purposes.
type Rank string

const (
	RankCaptain      Rank = "Captain"
	RankFirstOfficer Rank = "First Officer"
)

// UnrankedSeniority sorts pilots without a seniority number after every
// ranked pilot.
const UnrankedSeniority = 9999

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusDenied   = "DENIED"
)

const (
	RecommendApprove        = "APPROVE"
	RecommendDeny           = "DENY"
	RecommendReviewRequired = "REVIEW_REQUIRED"
)

const (
	SeverityWarning  = "WARNING"
	SeverityCritical = "CRITICAL"
)

const (
	PilotAvailable    = "AVAILABLE"
	PilotOnLeave      = "ON_LEAVE"
	PilotPendingLeave = "PENDING_LEAVE"
)

// CrewRequirements is an immutable snapshot of the staffing floor for one
// evaluation. Fleet-wide minimums are per-hull minimums scaled by the
// aircraft count.
type CrewRequirements struct {
	MinimumCaptains      int `json:"minimumCaptains"`
	MinimumFirstOfficers int `json:"minimumFirstOfficers"`
	NumberOfAircraft     int `json:"numberOfAircraft"`
	CaptainsPerHull      int `json:"captainsPerHull"`
	FirstOfficersPerHull int `json:"firstOfficersPerHull"`
}

// MinimumFor returns the fleet-wide minimum for a rank.
func (r CrewRequirements) MinimumFor(rank Rank) int {
	if rank == RankCaptain {
		return r.MinimumCaptains
	}
	return r.MinimumFirstOfficers
}

// PerHullFor returns the per-hull minimum for a rank, the hard floor below
// which a shortfall is CRITICAL.
func (r CrewRequirements) PerHullFor(rank Rank) int {
	if rank == RankCaptain {
		return r.CaptainsPerHull
	}
	return r.FirstOfficersPerHull
}

// LeaveRecord is a persisted leave request as the engine sees it: read
// only, never mutated.
type LeaveRecord struct {
	ID              string `json:"id"`
	PilotID         string `json:"pilotId"`
	PilotName       string `json:"pilotName,omitempty"`
	PilotRank       Rank   `json:"pilotRank"`
	StartDate       Date   `json:"startDate"`
	EndDate         Date   `json:"endDate"`
	Status          string `json:"status"`
	SeniorityNumber int    `json:"seniorityNumber"`
}

// LeaveRequestCheck is a candidate request under hypothetical approval.
// RequestID is empty for a brand-new request and set when re-evaluating an
// existing one, so its own persisted state is excluded from projections.
type LeaveRequestCheck struct {
	RequestID string `json:"requestId,omitempty"`
	PilotID   string `json:"pilotId"`
	PilotRank Rank   `json:"pilotRank"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
}

// CrewAvailability is the headcount picture for a single calendar day.
type CrewAvailability struct {
	Date                   Date `json:"date"`
	TotalCaptains          int  `json:"totalCaptains"`
	TotalFirstOfficers     int  `json:"totalFirstOfficers"`
	OnLeaveCaptains        int  `json:"onLeaveCaptains"`
	OnLeaveFirstOfficers   int  `json:"onLeaveFirstOfficers"`
	AvailableCaptains      int  `json:"availableCaptains"`
	AvailableFirstOfficers int  `json:"availableFirstOfficers"`
	MeetsMinimum           bool `json:"meetsMinimum"`
	CaptainsShortfall      int  `json:"captainsShortfall"`
	FirstOfficersShortfall int  `json:"firstOfficersShortfall"`
}

// LeaveConflict is one day where hypothetical approval drops a rank below
// its minimum.
type LeaveConflict struct {
	Date                   Date   `json:"date"`
	AvailableCaptains      int    `json:"availableCaptains"`
	RequiredCaptains       int    `json:"requiredCaptains"`
	AvailableFirstOfficers int    `json:"availableFirstOfficers"`
	RequiredFirstOfficers  int    `json:"requiredFirstOfficers"`
	Severity               string `json:"severity"`
	Message                string `json:"message"`
}

// ConflictingRequest is a competing same-rank PENDING request annotated
// with its relationship to the candidate.
type ConflictingRequest struct {
	RequestID        string      `json:"requestId"`
	PilotID          string      `json:"pilotId"`
	PilotName        string      `json:"pilotName,omitempty"`
	PilotRank        Rank        `json:"pilotRank"`
	SeniorityNumber  int         `json:"seniorityNumber"`
	StartDate        Date        `json:"startDate"`
	EndDate          Date        `json:"endDate"`
	OverlappingDays  int         `json:"overlappingDays"`
	OverlapType      OverlapType `json:"overlapType"`
	IsPriority       bool        `json:"isPriority"`
	IsOwnRequest     bool        `json:"isOwnRequest"`
	Recommendation   string      `json:"recommendation,omitempty"`
	SpreadSuggestion string      `json:"spreadSuggestion,omitempty"`
}

// ConflictingRequestsResult pairs the ranked competitor list with the
// rendered arbitration summary.
type ConflictingRequestsResult struct {
	ConflictingRequests     []ConflictingRequest `json:"conflictingRequests"`
	SeniorityRecommendation string               `json:"seniorityRecommendation"`
}

// PilotRecommendation is a substitute-pilot suggestion.
type PilotRecommendation struct {
	PilotID         string `json:"pilotId"`
	PilotName       string `json:"pilotName,omitempty"`
	Rank            Rank   `json:"rank"`
	SeniorityNumber int    `json:"seniorityNumber"`
	LeaveState      string `json:"leaveState"`
	Priority        int    `json:"priority"`
}

// LeaveEligibilityCheck is the engine's full verdict for one candidate.
type LeaveEligibilityCheck struct {
	IsEligible              bool                  `json:"isEligible"`
	Conflicts               []LeaveConflict       `json:"conflicts"`
	AffectedDates           []Date                `json:"affectedDates"`
	Recommendation          string                `json:"recommendation"`
	Reasons                 []string              `json:"reasons"`
	AlternativePilots       []PilotRecommendation `json:"alternativePilots"`
	CrewImpact              []CrewAvailability    `json:"crewImpact"`
	ConflictingRequests     []ConflictingRequest  `json:"conflictingRequests"`
	SeniorityRecommendation string                `json:"seniorityRecommendation"`
}

// BulkEligibilityResult buckets every PENDING request of a roster period.
// Failed evaluations land in Errors and in none of the three buckets.
type BulkEligibilityResult struct {
	Eligible        []string                          `json:"eligible"`
	RequiresReview  []string                          `json:"requiresReview"`
	ShouldDeny      []string                          `json:"shouldDeny"`
	Recommendations map[string]*LeaveEligibilityCheck `json:"recommendations"`
	Errors          []BulkError                       `json:"errors,omitempty"`
}

// BulkError records one request whose evaluation failed without aborting
// the batch.
type BulkError struct {
	RequestID string `json:"requestId"`
	Message   string `json:"message"`
}
