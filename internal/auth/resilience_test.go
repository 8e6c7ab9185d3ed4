package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// Resilience tests verify that the auth subsystem handles failure scenarios
// gracefully. These tests use the TestResilience_ prefix for easy filtering:
//
//	go test -run TestResilience -race ./internal/auth/...

// TestResilience_ConcurrentRegistration verifies that racing registrations of
// one username produce exactly one account and Conflict for everyone else.
func TestResilience_ConcurrentRegistration(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	svc := NewService(repo, testTokens(t), NewPolicy(repo), testLogger())
	ctx := context.Background()

	const racers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, "racer", "pw")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrUsernameExists):
				conflicts++
			default:
				t.Errorf("Register() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("successes = %d, want 1", successes)
	}
	if conflicts != racers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, racers-1)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("user rows = %d, want 1", count)
	}
}

// TestResilience_UserDeletion_CascadesRecipes verifies that deleting a user
// removes their recipe tree through ON DELETE CASCADE.
func TestResilience_UserDeletion_CascadesRecipes(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedTestUser(t, repo, "cascade-user", RoleUser)

	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO recipes (id, name, description, created_by, created_at, updated_at)
		  VALUES ('r1', 'Bread', '', ?, '2026-01-01T00:00:00.000000000Z', '2026-01-01T00:00:00.000000000Z')`, []any{user.ID}},
		{`INSERT INTO components (id, recipe_id, name, position) VALUES ('c1', 'r1', 'Dough', 1)`, nil},
		{`INSERT INTO steps (id, component_id, step_number, description, position) VALUES ('s1', 'c1', 1, 'Knead', 1)`, nil},
		{`INSERT INTO ingredients (id, component_id, name, quantity, unit, position) VALUES ('i1', 'c1', 'Flour', 500, 'g', 1)`, nil},
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s.query, s.args...); err != nil {
			t.Fatalf("seeding recipe tree: %v", err)
		}
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	for _, table := range []string{"recipes", "components", "steps", "ingredients"} {
		var n int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			t.Fatalf("counting %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s rows = %d after user deletion, want 0", table, n)
		}
	}
}

// TestResilience_ContextCancellation_RepositoryOps verifies that repository
// operations respect context cancellation and return clean errors.
func TestResilience_ContextCancellation_RepositoryOps(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.List(ctx); err == nil {
		t.Error("List with cancelled context should return error")
	}
	if _, err := repo.GetByUsername(ctx, "nonexistent"); err == nil {
		t.Error("GetByUsername with cancelled context should return error")
	}
	if _, err := repo.Count(ctx); err == nil {
		t.Error("Count with cancelled context should return error")
	}
	if err := repo.Create(ctx, &User{Username: "cancel-test", PasswordHash: "x"}); err == nil {
		t.Error("Create with cancelled context should return error")
	}
}
