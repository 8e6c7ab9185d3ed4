package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/recipe-manager/internal/infrastructure/database"
)

// UserRepository is the credential store.
//
// Lookups return ErrUserNotFound rather than an empty result.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]User, error)
	UpdateUsername(ctx context.Context, id, username string) (*User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SQLUserRepository implements UserRepository on SQLite or PostgreSQL.
type SQLUserRepository struct {
	db database.Querier
	// now is replaceable in tests.
	now func() time.Time
}

// NewUserRepository creates a SQL-backed user repository.
func NewUserRepository(db database.Querier) *SQLUserRepository {
	return &SQLUserRepository{db: db, now: time.Now}
}

const userColumns = "id, username, password_hash, role, created_at, updated_at"

// Create inserts a new user account. The ID is generated if empty.
func (r *SQLUserRepository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	if !IsValidUserRole(user.Role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
	}

	now := r.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	ts := database.FormatTime(now)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, string(user.Role), ts, ts,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their unique ID.
func (r *SQLUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

// GetByUsername retrieves a user by their username.
func (r *SQLUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username))
}

// ExistsByUsername reports whether the username is taken.
func (r *SQLUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking username: %w", err)
	}
	return n > 0, nil
}

// List returns all users ordered by creation date.
func (r *SQLUserRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at ASC, username ASC")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// UpdateUsername renames an account and returns the updated record.
func (r *SQLUserRepository) UpdateUsername(ctx context.Context, id, username string) (*User, error) {
	ts := database.FormatTime(r.now())

	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, updated_at = ? WHERE id = ?`,
		username, ts, id,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 { //nolint:errcheck // supported by both drivers
		return nil, ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user account by ID. Their recipes cascade with it.
func (r *SQLUserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 { //nolint:errcheck // supported by both drivers
		return ErrUserNotFound
	}
	return nil
}

// Count returns the total number of user accounts.
func (r *SQLUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*User, error) {
	var u User
	var role, createdAt, updatedAt string

	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.Role = Role(role)
	if u.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = database.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
