package auth

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// maxUsernameLength is counted in characters, not bytes.
const maxUsernameLength = 128

// IsValidUsername accepts any name that is not blank and fits the column.
// Spaces, punctuation and non-ASCII letters are all allowed.
func IsValidUsername(username string) bool {
	username = strings.TrimSpace(username)
	return username != "" && utf8.RuneCountInString(username) <= maxUsernameLength
}

// Role is the authority string stored on a user account.
//
// A role value may hold several comma-separated authorities; see ParseAuthorities.
type Role string

const (
	// RoleUser is a regular account. It may manage the recipes it created.
	RoleUser Role = "ROLE_USER"

	// RoleAdmin overrides ownership on every resource and manages users.
	RoleAdmin Role = "ROLE_ADMIN"
)

// IsValidUserRole returns true if the role is assignable to an account.
func IsValidUserRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the stored role is exactly ROLE_ADMIN.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Token is the result of a successful login.
type Token struct {
	Role   Role   `json:"role"`
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPassword    = errors.New("password is required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccessDenied       = errors.New("access denied")

	// ErrIdentityUnresolved means a verified token names a user that no
	// longer exists. It is an internal error, not a denial.
	ErrIdentityUnresolved = errors.New("authenticated subject does not resolve to a user")
)
