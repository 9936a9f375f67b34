package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crewops/internal/domain/users"
	"crewops/internal/transport/http/api"
	"crewops/internal/transport/http/middleware"
)

type Handler struct {
	Users  *users.Service
	Secret string
}

func NewHandler(usersSvc *users.Service, secret string) *Handler {
	return &Handler{Users: usersSvc, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireAuth).Get("/auth/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	user, err := h.Users.Authenticate(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "auth_error", "authentication failed", requestID)
		return
	}

	token, err := users.GenerateToken(h.Secret, users.Claims{UserID: user.ID, Role: user.Role}, 8*time.Hour)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}

	api.Success(w, map[string]any{"token": token, "user": user}, requestID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	userCtx, _ := middleware.GetUser(r.Context())

	user, err := h.Users.Get(r.Context(), userCtx.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", requestID)
		return
	}
	api.Success(w, user, requestID)
}
