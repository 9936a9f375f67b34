package jobshandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"crewops/internal/domain/eligibility"
	"crewops/internal/domain/users"
	"crewops/internal/platform/jobs"
	"crewops/internal/transport/http/api"
	"crewops/internal/transport/http/middleware"
)

type Handler struct {
	Jobs *jobs.Service
}

func NewHandler(jobsSvc *jobs.Service) *Handler {
	return &Handler{Jobs: jobsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Use(middleware.RequireRole(users.RoleAdmin))
		r.Post("/bulk-scan/run", h.handleRunBulkScan)
		r.Get("/runs", h.handleListRuns)
	})
}

type runRequest struct {
	RosterPeriod string `json:"rosterPeriod"`
}

func (h *Handler) handleRunBulkScan(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload runRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	rosterPeriod := payload.RosterPeriod
	if rosterPeriod == "" {
		rosterPeriod = h.Jobs.Calendar.CodeFor(time.Now())
	}

	result, err := h.Jobs.RunBulkScan(r.Context(), rosterPeriod)
	if errors.Is(err, eligibility.ErrRosterPeriodNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "roster period not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "job_error", "bulk scan failed", requestID)
		return
	}
	api.Success(w, map[string]any{"rosterPeriod": rosterPeriod, "result": result}, requestID)
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.Jobs.RecentRuns(r.Context(), limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to list job runs", requestID)
		return
	}
	api.Success(w, runs, requestID)
}
