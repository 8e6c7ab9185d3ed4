package auth

import "testing"

// ─── Password hashing (bcrypt cost 11, intentionally slow) ──────────

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HashPassword("correct-horse-battery-staple") //nolint:errcheck // benchmark
	}
}

func BenchmarkVerifyPassword(b *testing.B) {
	hash, err := HashPassword("correct-horse-battery-staple")
	if err != nil {
		b.Fatalf("HashPassword: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		VerifyPassword("correct-horse-battery-staple", hash) //nolint:errcheck // benchmark
	}
}

// ─── JWT tokens (per-request hot path) ──────────────────────────────

func benchTokens(b *testing.B) *TokenService {
	b.Helper()
	ts, err := NewTokenService("benchmark-secret-key-32-bytes-xx", DefaultTokenTTL)
	if err != nil {
		b.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func BenchmarkIssueToken(b *testing.B) {
	ts := benchTokens(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ts.Issue("usr-bench", RoleAdmin) //nolint:errcheck // benchmark
	}
}

func BenchmarkVerifyToken(b *testing.B) {
	ts := benchTokens(b)
	token, err := ts.Issue("usr-bench", RoleAdmin)
	if err != nil {
		b.Fatalf("Issue: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ts.Verify(token) //nolint:errcheck // benchmark
	}
}
