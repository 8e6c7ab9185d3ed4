package recipe

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/recipe-manager/internal/auth"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/database"
	_ "github.com/nerrad567/recipe-manager/migrations"
)

// testDB creates a temporary SQLite database with every migration applied.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "recipe-test.db"),
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

// createUser inserts an account directly; the hash is never verified here.
func createUser(t *testing.T, db *database.DB, username string, role auth.Role) *auth.User {
	t.Helper()
	u := &auth.User{Username: username, PasswordHash: "unused", Role: role}
	if err := auth.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return u
}

func asUser(u *auth.User) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{
		Subject:     u.ID,
		Authorities: auth.ParseAuthorities(string(u.Role)),
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// steppingClock returns strictly increasing times one second apart.
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

// recordingNotifier captures events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, ev Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return n.err
}

func (n *recordingNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

func sampleRecipe() RecipeInput {
	return RecipeInput{
		Name:        "Bread",
		Description: "Plain loaf",
		Components: []ComponentInput{
			{
				Name: "Dough",
				Ingredients: []IngredientInput{
					{Name: "Flour", Quantity: 500, Unit: "g"},
					{Name: "Water", Quantity: 350, Unit: "ml"},
				},
				Steps: []StepInput{
					{StepNumber: 2, Description: "Knead"},
					{StepNumber: 1, Description: "Mix"},
				},
			},
			{Name: "Glaze"},
		},
	}
}
