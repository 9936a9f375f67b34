package pilotshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"crewops/internal/domain/pilots"
	"crewops/internal/domain/users"
	"crewops/internal/transport/http/api"
	"crewops/internal/transport/http/middleware"
	"crewops/internal/transport/http/shared"
)

type Handler struct {
	Service *pilots.Service
}

func NewHandler(service *pilots.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pilots", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{pilotID}", h.handleGet)
		r.With(middleware.RequireRole(users.RoleAdmin)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(users.RoleAdmin)).Put("/{pilotID}", h.handleUpdate)
		r.With(middleware.RequireRole(users.RoleAdmin)).Delete("/{pilotID}", h.handleDeactivate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	list, err := h.Service.List(r.Context(), includeInactive)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to list pilots", requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	pilot, err := h.Service.Get(r.Context(), chi.URLParam(r, "pilotID"))
	if errors.Is(err, pilots.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "pilot not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to fetch pilot", requestID)
		return
	}
	api.Success(w, pilot, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload pilots.Pilot
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if issues := validatePilot(payload); issues.Respond(w, requestID) {
		return
	}

	id, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to create pilot", requestID)
		return
	}
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload pilots.Pilot
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if issues := validatePilot(payload); issues.Respond(w, requestID) {
		return
	}

	err := h.Service.Update(r.Context(), chi.URLParam(r, "pilotID"), payload)
	if errors.Is(err, pilots.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "pilot not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to update pilot", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, requestID)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	err := h.Service.Deactivate(r.Context(), chi.URLParam(r, "pilotID"))
	if errors.Is(err, pilots.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "pilot not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "db_error", "failed to deactivate pilot", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deactivated"}, requestID)
}

func validatePilot(payload pilots.Pilot) *shared.Validator {
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("rank", payload.Rank, "rank is required")
	if strings.TrimSpace(payload.Rank) != "" && !pilots.ValidRank(payload.Rank) {
		v.Add("rank", "must be Captain or First Officer")
	}
	if payload.SeniorityNumber != nil && *payload.SeniorityNumber <= 0 {
		v.Add("seniorityNumber", "must be positive when set")
	}
	return v
}
