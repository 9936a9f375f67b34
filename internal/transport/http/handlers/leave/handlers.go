package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"crewops/internal/domain/eligibility"
	"crewops/internal/domain/leave"
	"crewops/internal/platform/metrics"
	"crewops/internal/transport/http/api"
	"crewops/internal/transport/http/middleware"
	"crewops/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Metrics *metrics.Collector
}

func NewHandler(service *leave.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave-requests", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{requestID}", h.handleGet)
		r.Post("/{requestID}/approve", h.handleApprove)
		r.Post("/{requestID}/deny", h.handleDeny)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	filter := leave.ListFilter{
		Status:       strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))),
		RosterPeriod: strings.TrimSpace(r.URL.Query().Get("rosterPeriod")),
		PilotID:      strings.TrimSpace(r.URL.Query().Get("pilotId")),
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
	list, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to list leave requests", requestID)
		return
	}
	api.Success(w, list, requestID)
}

type createRequest struct {
	PilotID      string `json:"pilotId"`
	RequestType  string `json:"requestType"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	RosterPeriod string `json:"rosterPeriod"`
	Reason       string `json:"reason"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("pilotId", payload.PilotID, "pilot id is required")
	v.Required("requestType", payload.RequestType, "request type is required")
	if payload.RequestType != "" && !leave.ValidType(strings.ToUpper(payload.RequestType)) {
		v.Add("requestType", "must be one of RDO, ANNUAL, SICK, LSL, UNPAID")
	}
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Respond(w, requestID) {
		return
	}

	created, err := h.Service.Create(r.Context(), leave.LeaveRequest{
		PilotID:      payload.PilotID,
		RequestType:  strings.ToUpper(payload.RequestType),
		StartDate:    start,
		EndDate:      end,
		RosterPeriod: payload.RosterPeriod,
		Reason:       payload.Reason,
	})
	if errors.Is(err, eligibility.ErrPilotNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "pilot not found", requestID)
		return
	}
	if errors.Is(err, leave.ErrInvalidState) {
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_request", err.Error(), requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to create leave request", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	request, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"))
	if errors.Is(err, leave.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to fetch leave request", requestID)
		return
	}
	api.Success(w, request, requestID)
}

type approveRequest struct {
	Override bool `json:"override"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload approveRequest
	if r.Body != nil {
		// An empty body means a plain approval with no override.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	check, err := h.Service.Approve(r.Context(), chi.URLParam(r, "requestID"), user.UserID, payload.Override)
	if errors.Is(err, leave.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
		return
	}
	if errors.Is(err, leave.ErrInvalidState) {
		api.Fail(w, http.StatusConflict, "invalid_state", "leave request is not pending", requestID)
		return
	}
	if errors.Is(err, leave.ErrEligibilityDenied) {
		api.WriteJSON(w, http.StatusConflict, api.Envelope{
			Success:   false,
			Data:      map[string]any{"eligibility": check},
			Error:     &api.Error{Code: "eligibility_denied", Message: "eligibility check recommends denial; pass override to approve anyway"},
			RequestID: requestID,
		})
		return
	}
	if errors.Is(err, eligibility.ErrPilotNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "pilot not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to approve leave request", requestID)
		return
	}

	if h.Metrics != nil && check != nil {
		h.Metrics.RecordDecision(check.Recommendation)
	}
	api.Success(w, map[string]any{"status": "approved", "eligibility": check}, requestID)
}

func (h *Handler) handleDeny(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	err := h.Service.Deny(r.Context(), chi.URLParam(r, "requestID"), user.UserID)
	if errors.Is(err, leave.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
		return
	}
	if errors.Is(err, leave.ErrInvalidState) {
		api.Fail(w, http.StatusConflict, "invalid_state", "leave request is not pending", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to deny leave request", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "denied"}, requestID)
}
