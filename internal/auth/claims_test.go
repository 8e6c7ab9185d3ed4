package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
)

func TestIssueAndVerify(t *testing.T) {
	ts := testTokens(t)

	for _, role := range []Role{RoleUser, RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			token, err := ts.Issue("3f2c6a1e-0000-4000-8000-000000000001", role)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			id, err := ts.Verify(token)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}

			if id.Subject != "3f2c6a1e-0000-4000-8000-000000000001" {
				t.Errorf("Subject = %q, want user id", id.Subject)
			}
			if diff := cmp.Diff([]string{string(role)}, id.Authorities); diff != "" {
				t.Errorf("Authorities mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIssue_ClaimsContract(t *testing.T) {
	ts := testTokens(t)
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts.now = func() time.Time { return issuedAt }

	token, err := ts.Issue("usr-1", RoleAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("ParseUnverified() error = %v", err)
	}

	if claims.ID != TokenID {
		t.Errorf("jti = %q, want %q", claims.ID, TokenID)
	}
	if claims.Subject != "usr-1" {
		t.Errorf("sub = %q, want %q", claims.Subject, "usr-1")
	}
	if !claims.IssuedAt.Time.Equal(issuedAt) {
		t.Errorf("iat = %v, want %v", claims.IssuedAt.Time, issuedAt)
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != 3600*time.Second {
		t.Errorf("exp - iat = %v, want 3600s", got)
	}
	if diff := cmp.Diff([]string{"ROLE_ADMIN"}, claims.Authorities); diff != "" {
		t.Errorf("authorities mismatch (-want +got):\n%s", diff)
	}
}

func TestSigningMethodFollowsKeyLength(t *testing.T) {
	tests := []struct {
		secretLen int
		wantAlg   string
	}{
		{32, "HS256"},
		{47, "HS256"},
		{48, "HS384"},
		{63, "HS384"},
		{64, "HS512"},
		{100, "HS512"},
	}

	for _, tt := range tests {
		ts, err := NewTokenService(strings.Repeat("k", tt.secretLen), time.Hour)
		if err != nil {
			t.Fatalf("NewTokenService(len=%d) error = %v", tt.secretLen, err)
		}

		token, err := ts.Issue("usr-1", RoleUser)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		parsed, _, err := jwt.NewParser().ParseUnverified(token, &Claims{})
		if err != nil {
			t.Fatalf("ParseUnverified() error = %v", err)
		}
		if got := parsed.Method.Alg(); got != tt.wantAlg {
			t.Errorf("secret len %d: alg = %s, want %s", tt.secretLen, got, tt.wantAlg)
		}

		if _, err := ts.Verify(token); err != nil {
			t.Errorf("secret len %d: Verify() error = %v", tt.secretLen, err)
		}
	}
}

func TestNewTokenService_WeakSecret(t *testing.T) {
	if _, err := NewTokenService("short", time.Hour); !errors.Is(err, ErrWeakSecret) {
		t.Errorf("NewTokenService() error = %v, want ErrWeakSecret", err)
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	ts, err := NewTokenService(testSecret, 0)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	if ts.ttl != DefaultTokenTTL {
		t.Errorf("ttl = %v, want %v", ts.ttl, DefaultTokenTTL)
	}
}

func TestVerify_Expired(t *testing.T) {
	ts := testTokens(t)
	ts.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := ts.Issue("usr-1", RoleUser)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	ts.now = time.Now
	_, err = ts.Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify() error = %v, want ErrTokenInvalid", err)
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("Verify() error = %v, want wrapped jwt.ErrTokenExpired", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := testTokens(t).Issue("usr-1", RoleUser)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other, err := NewTokenService("another-secret-key-at-least-32-chars", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	ts := testTokens(t)
	token, err := ts.Issue("usr-1", RoleUser)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// The first signature character carries six full data bits.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ts.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	ts := testTokens(t)
	for _, token := range []string{"", "abc.def", "not-a-valid-jwt", "a.b.c"} {
		if _, err := ts.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	ts := testTokens(t)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Authorities: []string{"ROLE_ADMIN"},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing none token: %v", err)
	}

	if _, err := ts.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	ts := testTokens(t)
	token, err := ts.Issue("", RoleUser)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := ts.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseAuthorities(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"ROLE_USER", []string{"ROLE_USER"}},
		{"ROLE_USER,ROLE_ADMIN", []string{"ROLE_USER", "ROLE_ADMIN"}},
		{" ROLE_USER , ROLE_ADMIN ", []string{"ROLE_USER", "ROLE_ADMIN"}},
		{"ROLE_USER,,", []string{"ROLE_USER"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseAuthorities(tt.in)); diff != "" {
			t.Errorf("ParseAuthorities(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
