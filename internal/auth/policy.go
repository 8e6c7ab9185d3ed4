package auth

import (
	"context"
	"errors"
	"fmt"
)

// UserLookup is the part of the credential store the policy needs.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// Policy decides whether the caller may act on a resource owned by someone.
//
// A caller is allowed when they are the owner or hold the admin role.
type Policy struct {
	users UserLookup
}

// NewPolicy creates a Policy backed by the credential store.
func NewPolicy(users UserLookup) *Policy {
	return &Policy{users: users}
}

// CurrentUser resolves the identity in ctx to a stored account.
//
// Anonymous requests get ErrAccessDenied. A verified subject with no account
// behind it gets ErrIdentityUnresolved, which callers treat as internal.
func (p *Policy) CurrentUser(ctx context.Context) (*User, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok || id.Subject == "" {
		return nil, ErrAccessDenied
	}

	user, err := p.users.GetByID(ctx, id.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrIdentityUnresolved, id.Subject)
		}
		return nil, fmt.Errorf("resolving current user: %w", err)
	}
	return user, nil
}

// IsAllowed reports whether the current user may act on a resource owned by ownerID.
func (p *Policy) IsAllowed(ctx context.Context, ownerID string) (bool, error) {
	current, err := p.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return current.IsAdmin() || current.ID == ownerID, nil
}

// Check returns ErrAccessDenied unless the current user owns the resource or is an admin.
func (p *Policy) Check(ctx context.Context, ownerID string) error {
	allowed, err := p.IsAllowed(ctx, ownerID)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrAccessDenied
	}
	return nil
}
