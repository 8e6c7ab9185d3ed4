package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestService(t *testing.T) (*Service, *SQLUserRepository) {
	t.Helper()
	repo := NewUserRepository(testDB(t))
	return NewService(repo, testTokens(t), NewPolicy(repo), testLogger()), repo
}

func TestService_Register(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "  newcook ", "secret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if user.Username != "newcook" {
		t.Errorf("Username = %q, want trimmed %q", user.Username, "newcook")
	}
	if user.Role != RoleUser {
		t.Errorf("Role = %q, want %q", user.Role, RoleUser)
	}
	if user.PasswordHash == "secret" {
		t.Error("password stored in plaintext")
	}
}

func TestService_Register_Conflict(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "taken", "pw"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := svc.Register(ctx, "taken", "other"); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("second Register() error = %v, want ErrUsernameExists", err)
	}

	if n, _ := repo.Count(ctx); n != 1 {
		t.Errorf("Count() = %d, want 1 (no duplicate row)", n)
	}
}

func TestService_Register_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "pw"); !errors.Is(err, ErrInvalidUsername) {
		t.Errorf("Register(empty username) error = %v, want ErrInvalidUsername", err)
	}
	if _, err := svc.Register(ctx, "   ", "pw"); !errors.Is(err, ErrInvalidUsername) {
		t.Errorf("Register(blank username) error = %v, want ErrInvalidUsername", err)
	}
	for _, name := range []string{"Jane Doe", "josé", "o'brien"} {
		if _, err := svc.Register(ctx, name, "pw"); err != nil {
			t.Errorf("Register(%q) error = %v, want nil", name, err)
		}
	}
	if _, err := svc.Register(ctx, "cook", ""); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Register(empty password) error = %v, want ErrInvalidPassword", err)
	}
}

func TestService_Login(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	admin := seedTestUser(t, repo, "admin", RoleAdmin)

	token, err := svc.Login(ctx, "admin", "test-password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token.Role != RoleAdmin || token.UserID != admin.ID || token.Token == "" {
		t.Errorf("Login() = %+v, want admin token", token)
	}

	id, err := svc.tokens.Verify(token.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if diff := cmp.Diff([]string{"ROLE_ADMIN"}, id.Authorities); diff != "" {
		t.Errorf("authorities mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Login_Failures(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	seedTestUser(t, repo, "cook", RoleUser)

	if _, err := svc.Login(ctx, "cook", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody", "test-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(unknown user) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestService_Get(t *testing.T) {
	svc, repo := newTestService(t)
	alice := seedTestUser(t, repo, "alice", RoleUser)
	bob := seedTestUser(t, repo, "bob", RoleUser)
	admin := seedTestUser(t, repo, "admin", RoleAdmin)

	if _, err := svc.Get(asUser(alice), alice.ID); err != nil {
		t.Errorf("Get(self) error = %v", err)
	}
	if _, err := svc.Get(asUser(alice), bob.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Get(other) error = %v, want ErrAccessDenied", err)
	}
	if _, err := svc.Get(asUser(admin), bob.ID); err != nil {
		t.Errorf("Get(other as admin) error = %v", err)
	}
	if _, err := svc.Get(asUser(admin), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestService_UpdateUsername(t *testing.T) {
	svc, repo := newTestService(t)
	alice := seedTestUser(t, repo, "alice", RoleUser)
	bob := seedTestUser(t, repo, "bob", RoleUser)

	updated, err := svc.UpdateUsername(asUser(alice), alice.ID, "alicia")
	if err != nil {
		t.Fatalf("UpdateUsername(self) error = %v", err)
	}
	if updated.Username != "alicia" {
		t.Errorf("Username = %q, want %q", updated.Username, "alicia")
	}

	// Unchanged name is a no-op, not a conflict with itself.
	if _, err := svc.UpdateUsername(asUser(alice), alice.ID, "alicia"); err != nil {
		t.Errorf("UpdateUsername(same name) error = %v", err)
	}
	if _, err := svc.UpdateUsername(asUser(alice), alice.ID, "bob"); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("UpdateUsername(taken) error = %v, want ErrUsernameExists", err)
	}
	if _, err := svc.UpdateUsername(asUser(alice), bob.ID, "robert"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("UpdateUsername(other) error = %v, want ErrAccessDenied", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	bob := seedTestUser(t, repo, "bob", RoleUser)

	if err := svc.Delete(ctx, bob.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(ctx, bob.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second Delete() error = %v, want ErrUserNotFound", err)
	}
}
