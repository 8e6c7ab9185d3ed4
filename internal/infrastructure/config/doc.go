// Package config loads the recipe manager's YAML configuration.
//
// Values are layered: built-in defaults, then the YAML file, then RECIPES_*
// environment variables. Load validates the result and reports every problem
// at once rather than stopping at the first.
//
// The JWT signing secret is deliberately never defaulted. Deployments should
// pass it, and the seeded administrator password, through RECIPES_JWT_SECRET
// and RECIPES_ADMIN_PASSWORD instead of committing them to the file.
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
//	ttl := cfg.GetTokenTTL()
package config
