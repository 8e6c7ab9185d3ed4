package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// seedPasswordBytes is the number of random bytes for a generated admin password.
const seedPasswordBytes = 16

// SeedAdmin creates the administrator account on first boot if no users exist.
//
// When password is empty a random one is generated and logged once at Warn
// level. Returns the password used (empty if seeding was skipped).
func SeedAdmin(ctx context.Context, userRepo UserRepository, username, password string, logger *slog.Logger) (string, error) {
	count, err := userRepo.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("checking user count: %w", err)
	}

	if count > 0 {
		logger.Info("users exist, skipping admin seed")
		return "", nil
	}

	generated := password == ""
	if generated {
		b := make([]byte, seedPasswordBytes)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("generating seed password: %w", err)
		}
		password = hex.EncodeToString(b)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing seed password: %w", err)
	}

	admin := &User{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return "", fmt.Errorf("creating seed admin: %w", err)
	}

	if generated {
		logger.Warn("seed admin account created",
			"username", username,
			"password", password,
			"action_required", "change this password immediately",
		)
	} else {
		logger.Info("seed admin account created", "username", username)
	}

	return password, nil
}
