package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenID is the fixed jti carried by every token this service issues.
	TokenID = "recipesManagerJWT"

	// DefaultTokenTTL is the token lifetime used when none is configured.
	DefaultTokenTTL = 3600 * time.Second

	// minSecretLength matches the shortest key HS256 accepts here.
	minSecretLength = 32
)

// ErrWeakSecret is returned when the signing secret is too short.
var ErrWeakSecret = errors.New("jwt secret must be at least 32 bytes")

// Claims is the JWT payload: registered claims plus the granted authorities.
type Claims struct {
	jwt.RegisteredClaims
	Authorities []string `json:"authorities"`
}

// TokenService issues and verifies signed access tokens.
//
// Tokens are stateless; nothing is persisted server-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. The secret comes from configuration only.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// signingMethod picks the HMAC strength from the key size:
// 64+ bytes sign with HS512, 48+ with HS384, anything shorter with HS256.
func (s *TokenService) signingMethod() jwt.SigningMethod {
	switch {
	case len(s.secret) >= 64: //nolint:mnd // HS512 key size
		return jwt.SigningMethodHS512
	case len(s.secret) >= 48: //nolint:mnd // HS384 key size
		return jwt.SigningMethodHS384
	default:
		return jwt.SigningMethodHS256
	}
}

// Issue creates a signed token for userID whose authorities are parsed from role.
func (s *TokenService) Issue(userID string, role Role) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        TokenID,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Authorities: ParseAuthorities(string(role)),
	}

	signed, err := jwt.NewWithClaims(s.signingMethod(), claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the identity the token carries.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	return Identity{
		Subject:     claims.Subject,
		Authorities: claims.Authorities,
	}, nil
}

// ParseAuthorities splits a comma-separated authority list. Entries are
// trimmed and empty entries dropped, so a single role yields one element.
func ParseAuthorities(list string) []string {
	parts := strings.Split(list, ",")
	authorities := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authorities = append(authorities, p)
		}
	}
	return authorities
}
