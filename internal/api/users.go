package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/recipe-manager/internal/audit"
	"github.com/nerrad567/recipe-manager/internal/auth"
)

// ─── Request/Response Types ────────────────────────────────────────

// userResponse is the public view of an account.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type updateUserRequest struct {
	Username string `json:"username"`
}

func toUserResponse(u *auth.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

// ─── Handlers ──────────────────────────────────────────────────────

// handleListUsers returns all user accounts.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetUser returns one account. Callers may read themselves; admins anyone.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeUserError(w, r, err, id, "")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleUpdateUser changes an account's username.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, msgInvalidJSON)
		return
	}

	user, err := s.users.UpdateUsername(r.Context(), id, req.Username)
	if err != nil {
		s.writeUserError(w, r, err, id, req.Username)
		return
	}

	s.auditLog(r.Context(), audit.ActionUpdate, entityUser, id, map[string]any{"username": user.Username})
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleDeleteUser removes an account and everything it created.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeUserError(w, r, err, id, "")
		return
	}

	s.auditLog(r.Context(), audit.ActionDelete, entityUser, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
