package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/tendant/portfolio-content/pkg/portfolio/session"
)

// LoginRequest is the request body for opening an edit session
type LoginRequest struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

// LoginResponse is the response body for a successful login
type LoginResponse struct {
	Token string `json:"token"`
}

// SessionHandler handles edit-session login and logout
type SessionHandler struct {
	gate *session.Gate
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(gate *session.Gate) *SessionHandler {
	return &SessionHandler{gate: gate}
}

// Login opens an edit session when the supplied credential pair matches
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.gate.Login(req.ID, req.Secret)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			slog.Warn("Login rejected", "id", req.ID)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		slog.Error("Failed to issue session token", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Edit session opened")
	render.JSON(w, r, LoginResponse{Token: token})
}

// Logout revokes the caller's session token. It must be mounted behind the
// gate's Verifier and Authenticator middleware.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.gate.Logout(claims)

	slog.Info("Edit session closed")
	w.WriteHeader(http.StatusNoContent)
}
