package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeConfig writes a minimal sqlite config listening on port.
func writeConfig(t *testing.T, port int, secret string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := fmt.Sprintf(`
site:
  id: test-site

database:
  driver: sqlite
  path: %q
  wal_mode: true
  busy_timeout: 5

api:
  host: "127.0.0.1"
  port: %d
  timeouts:
    read: 5
    write: 5
    idle: 5

logging:
  level: error
  format: text
  output: stdout

security:
  jwt:
    secret: %q
    token_ttl: 3600
  admin:
    username: admin
    password: "admin-test-password"
  rate_limit:
    enabled: false
`, filepath.Join(dir, "recipes.db"), port, secret)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("finding free port: %v", err)
	}
	defer l.Close() //nolint:errcheck // probe listener
	return l.Addr().(*net.TCPAddr).Port
}

const validSecret = "cmd-test-secret-at-least-32-bytes-long"

// runApp runs the CLI with args and returns what it printed.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := app.Run(ctx, append([]string{"recipemanager"}, args...))
	return out.String(), err
}

func TestRun_InvalidConfigPath(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx, "/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

func TestRun_MissingSecret(t *testing.T) {
	path := writeConfig(t, 8080, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx, path)
	if err == nil {
		t.Fatal("run() should fail without a JWT secret")
	}
	if !strings.Contains(err.Error(), "security.jwt.secret") {
		t.Errorf("error = %v, want mention of security.jwt.secret", err)
	}
}

func TestRun_ServesAndShutsDown(t *testing.T) {
	port := freePort(t)
	path := writeConfig(t, port, validSecret)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, path) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/health", port)
	deadline := time.Now().Add(15 * time.Second)
	for {
		resp, err := http.Get(url) //nolint:gosec,noctx // test-local URL
		if err == nil {
			resp.Body.Close() //nolint:errcheck // status is all we need
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("server never became healthy: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v, want clean shutdown", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run() did not return after cancellation")
	}
}

func TestMigrateCommands(t *testing.T) {
	path := writeConfig(t, 8080, validSecret)

	out, err := runApp(t, "--config", path, "migrate", "status")
	if err != nil {
		t.Fatalf("migrate status error = %v", err)
	}
	if !strings.Contains(out, "pending") || strings.Contains(out, "applied") {
		t.Errorf("fresh status output = %q, want only pending migrations", out)
	}

	if _, err := runApp(t, "--config", path, "migrate", "up"); err != nil {
		t.Fatalf("migrate up error = %v", err)
	}
	out, err = runApp(t, "--config", path, "migrate", "status")
	if err != nil {
		t.Fatalf("migrate status error = %v", err)
	}
	if strings.Contains(out, "pending") {
		t.Errorf("status after up = %q, want all applied", out)
	}

	if _, err := runApp(t, "--config", path, "migrate", "down"); err != nil {
		t.Fatalf("migrate down error = %v", err)
	}
	out, _ = runApp(t, "--config", path, "migrate", "status") //nolint:errcheck // checked above
	if strings.Count(out, "pending") != 1 {
		t.Errorf("status after down = %q, want exactly one pending", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, "recipemanager "+version) {
		t.Errorf("output = %q, want version %q", out, version)
	}
}
