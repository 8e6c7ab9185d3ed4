// Package audit records and lists the trail of mutations made through the API.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/recipe-manager/internal/infrastructure/database"
)

// Page size bounds for List.
const (
	defaultLimit = 50
	maxLimit     = 200
)

// Actions recorded by the API layer.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
)

// SourceAPI is the default Source for entries written by HTTP handlers.
const SourceAPI = "api"

// AuditLog is one recorded mutation. EntityID is empty when the change
// created several rows at once; Details then names the parent.
type AuditLog struct { //nolint:revive // audit.AuditLog reads better than audit.Log at call sites
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId,omitempty"`
	UserID     string         `json:"userId,omitempty"`
	Source     string         `json:"source"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Filter narrows List. Zero fields match everything.
type Filter struct {
	Action     string
	EntityType string
	EntityID   string
	UserID     string
	Limit      int // defaults to 50, capped at 200
	Offset     int
}

// where renders the filter as a SQL predicate with ? placeholders. Column
// names are fixed here; only values come from the caller.
func (f Filter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(column, value string) {
		if value != "" {
			clauses = append(clauses, column+" = ?")
			args = append(args, value)
		}
	}
	add("action", f.Action)
	add("entity_type", f.EntityType)
	add("entity_id", f.EntityID)
	add("user_id", f.UserID)

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (f Filter) normalised() Filter {
	switch {
	case f.Limit <= 0:
		f.Limit = defaultLimit
	case f.Limit > maxLimit:
		f.Limit = maxLimit
	}
	f.Offset = max(f.Offset, 0)
	return f
}

// ListResult is one page of audit logs plus the unpaginated total.
type ListResult struct {
	Logs   []AuditLog `json:"logs"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Repository persists audit logs.
type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLRepository keeps audit logs in the audit_logs table.
type SQLRepository struct {
	db  database.Querier
	now func() time.Time
}

// NewRepository returns a Repository backed by db.
func NewRepository(db database.Querier) *SQLRepository {
	return &SQLRepository{db: db, now: time.Now}
}

const auditColumns = "id, action, entity_type, entity_id, user_id, source, details, created_at"

// Create stores log, assigning ID, Source and CreatedAt when unset.
func (r *SQLRepository) Create(ctx context.Context, log *AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Source == "" {
		log.Source = SourceAPI
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = r.now().UTC()
	}

	var details sql.NullString
	if len(log.Details) > 0 {
		b, err := json.Marshal(log.Details)
		if err != nil {
			return fmt.Errorf("encoding details for %s %s: %w", log.Action, log.EntityType, err)
		}
		details = sql.NullString{String: string(b), Valid: true}
	}

	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_logs ("+auditColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		log.ID, log.Action, log.EntityType,
		optional(log.EntityID), optional(log.UserID),
		log.Source, details, database.FormatTime(log.CreatedAt),
	); err != nil {
		return fmt.Errorf("recording %s %s: %w", log.Action, log.EntityType, err)
	}
	return nil
}

// optional stores "" as NULL.
func optional(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// List returns one page of matching logs, newest first.
func (r *SQLRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	filter = filter.normalised()
	where, args := filter.where()

	result := &ListResult{Logs: []AuditLog{}, Limit: filter.Limit, Offset: filter.Offset}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_logs"+where, args...).Scan(&result.Total); err != nil {
		return nil, fmt.Errorf("counting audit logs: %w", err)
	}
	if result.Total <= filter.Offset {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+auditColumns+" FROM audit_logs"+where+" ORDER BY created_at DESC, id LIMIT ? OFFSET ?",
		append(args, filter.Limit, filter.Offset)...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		result.Logs = append(result.Logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}
	return result, nil
}

func scanAuditLog(rows *sql.Rows) (AuditLog, error) {
	var (
		entry                     AuditLog
		entityID, userID, details sql.NullString
		createdAt                 string
	)
	if err := rows.Scan(&entry.ID, &entry.Action, &entry.EntityType,
		&entityID, &userID, &entry.Source, &details, &createdAt); err != nil {
		return AuditLog{}, fmt.Errorf("reading audit log: %w", err)
	}
	entry.EntityID = entityID.String
	entry.UserID = userID.String

	// Undecodable details are dropped rather than hiding the rest of the trail.
	if details.Valid {
		var m map[string]any
		if json.Unmarshal([]byte(details.String), &m) == nil {
			entry.Details = m
		}
	}

	var err error
	if entry.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return AuditLog{}, fmt.Errorf("reading audit log %s: %w", entry.ID, err)
	}
	return entry, nil
}
