// Recipe Manager - multi-tenant recipe management REST API.
//
// This is the main entry point. The binary serves the HTTP API and manages
// the database schema:
//
//	recipemanager serve              # default command
//	recipemanager migrate up|down|status
//	recipemanager version
//
// The configuration file is chosen with --config or RECIPES_CONFIG.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	_ "github.com/nerrad567/recipe-manager/migrations"

	"github.com/nerrad567/recipe-manager/internal/infrastructure/config"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/database"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on Ctrl+C and SIGTERM so every command can shut down cleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. It is separate from main for testability.
func newApp() *cli.Command {
	return &cli.Command{
		Name:           "recipemanager",
		Usage:          "Multi-tenant recipe management REST API",
		Version:        version,
		DefaultCommand: "serve",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaultConfigPath,
				Usage:   "Path to the YAML configuration file",
				Sources: cli.EnvVars("RECIPES_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			versionCmd(),
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API until interrupted",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd.String("config"))
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDatabase(cmd.String("config"), func(db *database.DB) error {
						if err := db.Migrate(ctx); err != nil {
							return err
						}
						fmt.Fprintln(cmd.Root().Writer, "migrations applied")
						return nil
					})
				},
			},
			{
				Name:  "down",
				Usage: "Roll back the most recent migration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDatabase(cmd.String("config"), func(db *database.DB) error {
						if err := db.MigrateDown(ctx); err != nil {
							return err
						}
						fmt.Fprintln(cmd.Root().Writer, "rolled back one migration")
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "List migrations and whether they are applied",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDatabase(cmd.String("config"), func(db *database.DB) error {
						statuses, err := db.MigrationStatus(ctx)
						if err != nil {
							return err
						}
						w := cmd.Root().Writer
						for _, s := range statuses {
							state := "pending"
							if s.Applied {
								state = "applied " + s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
							}
							fmt.Fprintf(w, "%05d  %-30s  %s\n", s.Version, s.Source, state)
						}
						return nil
					})
				},
			},
		},
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintf(cmd.Root().Writer, "recipemanager %s (commit %s, built %s)\n", version, commit, date)
			return nil
		},
	}
}

// withDatabase loads the configuration, opens the database and runs fn.
func withDatabase(configPath string, fn func(db *database.DB) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // read-mostly CLI path

	return fn(db)
}

func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(database.Config{
		Driver:      cfg.Database.Driver,
		Path:        cfg.Database.Path,
		DSN:         cfg.Database.DSN,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}
