package handler

import (
	"net/http"

	"github.com/eventtix/eventtix/internal/auth"
	"github.com/eventtix/eventtix/internal/model"
	"github.com/eventtix/eventtix/internal/service"
)

// AuthHandler holds the HTTP handlers for registration and sessions.
type AuthHandler struct {
	users  *service.UserService
	tokens *auth.TokenManager
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users *service.UserService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Register handles POST /register
// Creates a new account and returns it without the password hash.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /login
// Verifies credentials and sets the HTTP-only session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.Authenticate(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	http.SetCookie(w, h.tokens.SessionCookie(token))
	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /logout
// Overwrites the session cookie with an expired one. The token itself is not
// tracked server-side, so this only clears the client's copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.tokens.ClearedCookie())
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Profile handles GET /profile
// Returns the authenticated user's account.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), UserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
