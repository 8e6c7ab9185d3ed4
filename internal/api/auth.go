package api

import (
	"errors"
	"net/http"

	"github.com/nerrad567/recipe-manager/internal/audit"
	"github.com/nerrad567/recipe-manager/internal/auth"
)

// credentialsRequest is the body of POST /auth/login and /auth/register.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin authenticates a user and returns {role, token, userId}.
// Bad credentials get a 401 with an empty body.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, msgInvalidJSON)
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			loginAttempts.WithLabelValues("rejected").Inc()
			s.logger.Info("login rejected", "request_id", requestIDFromContext(r.Context()))
		}
		s.writeServiceError(w, r, err)
		return
	}

	loginAttempts.WithLabelValues("accepted").Inc()
	ctx := auth.WithIdentity(r.Context(), auth.Identity{Subject: token.UserID})
	s.auditLog(ctx, audit.ActionLogin, entityUser, token.UserID, nil)

	writeJSON(w, http.StatusOK, token)
}

// handleRegister creates a ROLE_USER account and returns its id as a JSON string.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, msgInvalidJSON)
		return
	}

	id, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeUserError(w, r, err, "", req.Username)
		return
	}

	ctx := auth.WithIdentity(r.Context(), auth.Identity{Subject: id})
	s.auditLog(ctx, audit.ActionCreate, entityUser, id, map[string]any{"username": req.Username})

	writeJSON(w, http.StatusCreated, id)
}
