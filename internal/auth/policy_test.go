package auth

import (
	"context"
	"errors"
	"testing"
)

func TestPolicy_Check(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	policy := NewPolicy(repo)

	alice := seedTestUser(t, repo, "alice", RoleUser)
	bob := seedTestUser(t, repo, "bob", RoleUser)
	admin := seedTestUser(t, repo, "admin", RoleAdmin)

	tests := []struct {
		name    string
		caller  *User
		owner   string
		wantErr error
	}{
		{"owner allowed", alice, alice.ID, nil},
		{"non-owner denied", alice, bob.ID, ErrAccessDenied},
		{"admin allowed on other", admin, bob.ID, nil},
		{"admin allowed on own", admin, admin.ID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Check(asUser(tt.caller), tt.owner)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Check() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPolicy_RoleComesFromStoreNotToken(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	policy := NewPolicy(repo)

	alice := seedTestUser(t, repo, "alice", RoleUser)
	bob := seedTestUser(t, repo, "bob", RoleUser)

	// A token claiming ROLE_ADMIN does not override the stored role.
	ctx := WithIdentity(context.Background(), Identity{
		Subject:     alice.ID,
		Authorities: []string{string(RoleAdmin)},
	})
	if err := policy.Check(ctx, bob.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Check() error = %v, want ErrAccessDenied", err)
	}
}

func TestPolicy_Anonymous(t *testing.T) {
	policy := NewPolicy(NewUserRepository(testDB(t)))

	if err := policy.Check(context.Background(), "anyone"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Check() error = %v, want ErrAccessDenied", err)
	}
}

func TestPolicy_UnresolvableSubject(t *testing.T) {
	policy := NewPolicy(NewUserRepository(testDB(t)))
	ctx := WithIdentity(context.Background(), Identity{Subject: "ghost", Authorities: []string{"ROLE_ADMIN"}})

	err := policy.Check(ctx, "ghost")
	if !errors.Is(err, ErrIdentityUnresolved) {
		t.Fatalf("Check() error = %v, want ErrIdentityUnresolved", err)
	}
	if errors.Is(err, ErrAccessDenied) {
		t.Error("unresolvable subject must not look like a denial")
	}
}

func TestPolicy_CurrentUser(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	policy := NewPolicy(repo)
	alice := seedTestUser(t, repo, "alice", RoleUser)

	got, err := policy.CurrentUser(asUser(alice))
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if got.ID != alice.ID {
		t.Errorf("CurrentUser().ID = %q, want %q", got.ID, alice.ID)
	}
}

func TestUser_IsAdmin(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleUser, false},
		{Role("ROLE_USER,ROLE_ADMIN"), false},
		{Role("role_admin"), false},
		{Role(""), false},
	}
	for _, tt := range tests {
		u := &User{Role: tt.role}
		if got := u.IsAdmin(); got != tt.want {
			t.Errorf("IsAdmin(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
