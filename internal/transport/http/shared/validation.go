package shared

import (
	"net/http"
	"strings"
	"time"

	"crewops/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil || strings.TrimSpace(reason) == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{Field: strings.TrimSpace(field), Reason: strings.TrimSpace(reason)})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) Enum(field, value string, allowed []string, reason string) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return
	}
	for _, candidate := range allowed {
		if normalized == strings.ToUpper(strings.TrimSpace(candidate)) {
			return
		}
	}
	v.Add(field, reason)
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) OK() bool {
	return v == nil || len(v.issues) == 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil {
		return nil
	}
	return v.issues
}

// Respond writes a 422 envelope carrying the collected issues and reports
// whether a response was written.
func (v *Validator) Respond(w http.ResponseWriter, requestID string) bool {
	if v.OK() {
		return false
	}
	api.WriteJSON(w, http.StatusUnprocessableEntity, api.Envelope{
		Success:   false,
		Data:      map[string]any{"issues": v.issues},
		Error:     &api.Error{Code: "validation_failed", Message: "request validation failed"},
		RequestID: requestID,
	})
	return true
}
