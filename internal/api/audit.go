package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nerrad567/recipe-manager/internal/audit"
	"github.com/nerrad567/recipe-manager/internal/auth"
)

// entityUser is the audit entity type for account changes.
const entityUser = "user"

// auditLog records a mutation. The write happens in the request, after the
// change has committed; a failed write is logged and does not fail the request.
func (s *Server) auditLog(ctx context.Context, action, entityType, entityID string, details map[string]any) {
	if s.auditRepo == nil {
		return
	}

	entry := &audit.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if id, ok := auth.IdentityFromContext(ctx); ok {
		entry.UserID = id.Subject
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Error("audit log write failed",
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
			"request_id", requestIDFromContext(ctx),
			"error", err,
		)
	}
}

// handleListAuditLogs returns paginated audit log entries with optional filters.
//
// Query parameters:
//   - action: filter by action type (create, update, delete, login)
//   - entityType: filter by entity type (recipe, component, ingredient, step, user)
//   - entityId: filter by specific entity ID
//   - userId: filter by acting user
//   - limit: max results (default 50, max 200)
//   - offset: pagination offset
func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	if s.auditRepo == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Audit logging is not configured")
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Action:     q.Get("action"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
		UserID:     q.Get("userId"),
	}

	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	result, err := s.auditRepo.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
