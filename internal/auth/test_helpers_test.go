package auth

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/nerrad567/recipe-manager/internal/infrastructure/database"
	_ "github.com/nerrad567/recipe-manager/migrations"
)

// testSecret is long enough for HS256 and short enough to stay on it.
const testSecret = "test-secret-key-at-least-32-chars!"

// testDB creates a temporary SQLite database with every migration applied.
// The database is closed when the test completes.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "auth-test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // test cleanup

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

// seedTestUser inserts a user whose password is "test-password".
func seedTestUser(t *testing.T, repo UserRepository, username string, role Role) *User {
	t.Helper()

	hash, err := HashPassword("test-password")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	user := &User{Username: username, PasswordHash: hash, Role: role}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user %s: %v", username, err)
	}
	return user
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokens(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret, DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return ts
}

// asUser returns a context carrying the identity a token for u would produce.
func asUser(u *User) context.Context {
	return WithIdentity(context.Background(), Identity{
		Subject:     u.ID,
		Authorities: ParseAuthorities(string(u.Role)),
	})
}
