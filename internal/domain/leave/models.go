package leave

import "time"

const (
	TypeRDO    = "RDO"
	TypeAnnual = "ANNUAL"
	TypeSick   = "SICK"
	TypeLSL    = "LSL"
	TypeUnpaid = "UNPAID"
)

func ValidType(requestType string) bool {
	switch requestType {
	case TypeRDO, TypeAnnual, TypeSick, TypeLSL, TypeUnpaid:
		return true
	}
	return false
}

type LeaveRequest struct {
	ID           string     `json:"id"`
	PilotID      string     `json:"pilotId"`
	PilotName    string     `json:"pilotName,omitempty"`
	Rank         string     `json:"rank"`
	RosterPeriod string     `json:"rosterPeriod"`
	RequestType  string     `json:"requestType"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Days         int        `json:"days"`
	Reason       string     `json:"reason,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	DecidedBy    string     `json:"decidedBy,omitempty"`
}
