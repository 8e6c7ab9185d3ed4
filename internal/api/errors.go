package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nerrad567/recipe-manager/internal/auth"
	"github.com/nerrad567/recipe-manager/internal/recipe"
)

// Fixed response messages.
const (
	msgAccessDenied = "Access denied."
	msgInternal     = "An unexpected error occurred"
	msgInvalidJSON  = "Malformed JSON request body"
	msgRateLimited  = "Too many requests"
)

// errorResponse is the body of every non-401 error.
type errorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{
		Status:    status,
		Message:   message,
		Timestamp: s.now().UnixMilli(),
	})
}

// writeBadRequest writes a 400 error response.
func (s *Server) writeBadRequest(w http.ResponseWriter, message string) {
	s.writeError(w, http.StatusBadRequest, message)
}

// writeForbidden writes the fixed 403 response.
func (s *Server) writeForbidden(w http.ResponseWriter) {
	s.writeError(w, http.StatusForbidden, msgAccessDenied)
}

// writeUnauthorized writes a 401 with no body.
func writeUnauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
}

// writeServiceError maps a domain error onto its HTTP response.
// Anything unrecognised is logged and reported as a 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *recipe.NotFoundError
	switch {
	case errors.As(err, &nf):
		s.writeError(w, http.StatusNotFound, nf.Error())
	case errors.Is(err, auth.ErrAccessDenied):
		s.writeForbidden(w)
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeUnauthorized(w)
	case isValidationError(err):
		s.writeBadRequest(w, err.Error())
	default:
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
		s.writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// writeUserError maps user-service errors, which do not carry the id or
// username themselves, and falls back to writeServiceError.
func (s *Server) writeUserError(w http.ResponseWriter, r *http.Request, err error, id, username string) {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("User with id %s was not found", id))
	case errors.Is(err, auth.ErrUsernameExists):
		s.writeError(w, http.StatusConflict, fmt.Sprintf("User with username %s already exists.", username))
	default:
		s.writeServiceError(w, r, err)
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		recipe.ErrInvalidName,
		recipe.ErrInvalidQuantity,
		recipe.ErrInvalidStep,
		recipe.ErrInvalidDescription,
		auth.ErrInvalidUsername,
		auth.ErrInvalidPassword,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}
