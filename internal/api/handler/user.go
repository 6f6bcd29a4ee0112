package handler

import (
	"encoding/json"
	"net/http"

	"courtbook/internal/api/middleware"
	"courtbook/internal/api/request"
	"courtbook/internal/api/response"
	"courtbook/internal/services/directory"
	"courtbook/internal/services/session"
)

// UserHandler handles registration, login and session endpoints
type UserHandler struct {
	directory *directory.Service
	sessions  *session.Store
}

// NewUserHandler creates a new user handler
func NewUserHandler(dir *directory.Service, sessions *session.Store) *UserHandler {
	return &UserHandler{
		directory: dir,
		sessions:  sessions,
	}
}

// Register handles POST /api/v1/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	user, err := h.directory.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Registration logs the new user straight in
	sess := h.sessions.Login(user)
	response.JSON(w, http.StatusCreated, response.SessionFromStore(sess))
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("name and password are required"))
		return
	}

	user, err := h.directory.Authenticate(r.Context(), req.Name, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	sess := h.sessions.Login(user)
	response.JSON(w, http.StatusOK, response.SessionFromStore(sess))
}

// Logout handles POST /api/v1/users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess != nil {
		h.sessions.Logout(sess.Token)
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
