package pilots

import "time"

type Pilot struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employeeId"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Rank             string     `json:"rank"`
	SeniorityNumber  *int       `json:"seniorityNumber,omitempty"`
	IsActive         bool       `json:"isActive"`
	CommencementDate *time.Time `json:"commencementDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
