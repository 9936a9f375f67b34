package eligibilityhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"crewops/internal/domain/eligibility"
	"crewops/internal/platform/metrics"
	"crewops/internal/transport/http/api"
	"crewops/internal/transport/http/middleware"
	"crewops/internal/transport/http/shared"
)

type Handler struct {
	Engine  *eligibility.Service
	Metrics *metrics.Collector
}

func NewHandler(engine *eligibility.Service, collector *metrics.Collector) *Handler {
	return &Handler{Engine: engine, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/eligibility", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/check", h.handleCheck)
		r.Post("/conflicting-requests", h.handleConflictingRequests)
		r.Get("/availability", h.handleAvailability)
		r.Get("/alternative-pilots", h.handleAlternativePilots)
		r.Post("/bulk", h.handleBulk)
		r.Get("/requirements", h.handleRequirements)
	})
}

type checkRequest struct {
	RequestID string `json:"requestId"`
	PilotID   string `json:"pilotId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *Handler) parseCandidate(w http.ResponseWriter, r *http.Request) (eligibility.LeaveRequestCheck, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload checkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return eligibility.LeaveRequestCheck{}, false
	}

	v := shared.NewValidator()
	v.Required("pilotId", payload.PilotID, "pilot id is required")
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Respond(w, requestID) {
		return eligibility.LeaveRequestCheck{}, false
	}

	return eligibility.LeaveRequestCheck{
		RequestID: payload.RequestID,
		PilotID:   payload.PilotID,
		StartDate: eligibility.DateOf(start),
		EndDate:   eligibility.DateOf(end),
	}, true
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	candidate, ok := h.parseCandidate(w, r)
	if !ok {
		return
	}

	check, err := h.Engine.CheckEligibility(r.Context(), candidate)
	if h.respondEngineError(w, err, requestID) {
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordDecision(check.Recommendation)
	}
	api.Success(w, check, requestID)
}

func (h *Handler) handleConflictingRequests(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	candidate, ok := h.parseCandidate(w, r)
	if !ok {
		return
	}

	result, err := h.Engine.GetConflictingRequests(r.Context(), candidate)
	if h.respondEngineError(w, err, requestID) {
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	start, startOK := v.Date("startDate", r.URL.Query().Get("startDate"))
	end, endOK := v.Date("endDate", r.URL.Query().Get("endDate"))
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Respond(w, requestID) {
		return
	}

	availability, err := h.Engine.CalculateAvailability(r.Context(), eligibility.DateOf(start), eligibility.DateOf(end),
		r.URL.Query().Get("excludeRequestId"))
	if h.respondEngineError(w, err, requestID) {
		return
	}
	api.Success(w, availability, requestID)
}

func (h *Handler) handleAlternativePilots(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	rank := strings.TrimSpace(r.URL.Query().Get("rank"))
	v.Required("rank", rank, "rank is required")
	if rank != "" && rank != string(eligibility.RankCaptain) && rank != string(eligibility.RankFirstOfficer) {
		v.Add("rank", "must be Captain or First Officer")
	}
	start, startOK := v.Date("startDate", r.URL.Query().Get("startDate"))
	end, endOK := v.Date("endDate", r.URL.Query().Get("endDate"))
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Respond(w, requestID) {
		return
	}

	alternatives, err := h.Engine.GetAlternativePilots(r.Context(), eligibility.Rank(rank),
		eligibility.DateOf(start), eligibility.DateOf(end), r.URL.Query().Get("excludePilotId"))
	if h.respondEngineError(w, err, requestID) {
		return
	}
	api.Success(w, alternatives, requestID)
}

type bulkRequest struct {
	RosterPeriod string `json:"rosterPeriod"`
}

func (h *Handler) handleBulk(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	result, err := h.Engine.CheckBulkEligibility(r.Context(), payload.RosterPeriod)
	if h.respondEngineError(w, err, requestID) {
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordBulkScan()
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleRequirements(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	requirements, err := h.Engine.Requirements(r.Context())
	if h.respondEngineError(w, err, requestID) {
		return
	}
	api.Success(w, requirements, requestID)
}

// respondEngineError maps engine errors to envelopes, reporting whether a
// response was written.
func (h *Handler) respondEngineError(w http.ResponseWriter, err error, requestID string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, eligibility.ErrPilotNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "pilot not found", requestID)
	case errors.Is(err, eligibility.ErrRosterPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "roster period not found", requestID)
	case errors.Is(err, eligibility.ErrInvalidDateRange):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_range", "end date must not precede start date", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "engine_error", "eligibility evaluation failed", requestID)
	}
	return true
}
