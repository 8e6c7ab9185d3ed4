package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Service implements account registration, login and profile management.
type Service struct {
	users  UserRepository
	tokens *TokenService
	policy *Policy
	logger *slog.Logger
}

// NewService wires the user service.
func NewService(users UserRepository, tokens *TokenService, policy *Policy, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, policy: policy, logger: logger}
}

// Register creates a ROLE_USER account and returns its id.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if !IsValidUsername(username) {
		return "", ErrInvalidUsername
	}
	if password == "" {
		return "", ErrInvalidPassword
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrUsernameExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	user := &User{Username: username, PasswordHash: hash, Role: RoleUser}
	// A concurrent registration can still win the race; Create maps the
	// unique violation to ErrUsernameExists.
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user.ID, nil
}

// Login verifies credentials and issues a token.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*Token, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &Token{Role: user.Role, Token: signed, UserID: user.ID}, nil
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.users.List(ctx)
}

// Get returns one account. Callers may read themselves; admins may read anyone.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUsername renames an account. Only the username is mutable here.
func (s *Service) UpdateUsername(ctx context.Context, id, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if !IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Username == username {
		return user, nil
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	return s.users.UpdateUsername(ctx, id, username)
}

// Delete removes an account and, through cascading keys, everything it created.
// The admin requirement is enforced by the caller's route guard.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
