package main

import (
	"context"
	"fmt"

	"github.com/nerrad567/recipe-manager/internal/api"
	"github.com/nerrad567/recipe-manager/internal/audit"
	"github.com/nerrad567/recipe-manager/internal/auth"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/config"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/influxdb"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/logging"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/mqtt"
	"github.com/nerrad567/recipe-manager/internal/notify"
	"github.com/nerrad567/recipe-manager/internal/recipe"
)

// run is the serve command, separated from the CLI wiring for testability.
// It blocks until ctx is cancelled and returns nil on a clean shutdown.
func run(ctx context.Context, configPath string) error { //nolint:gocognit,gocyclo // linear startup sequence
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting recipe manager",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "driver", db.Dialect())

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	tokens, err := auth.NewTokenService(cfg.Security.JWT.Secret, cfg.GetTokenTTL())
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	userRepo := auth.NewUserRepository(db)
	policy := auth.NewPolicy(userRepo)
	users := auth.NewService(userRepo, tokens, policy, log.Logger)

	if _, seedErr := auth.SeedAdmin(ctx, userRepo, cfg.Security.Admin.Username, cfg.Security.Admin.Password, log.Logger); seedErr != nil {
		return fmt.Errorf("seeding admin: %w", seedErr)
	}

	// Optional change notification channels
	var notifiers notify.Fanout

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
		notifiers = append(notifiers, notify.NewMQTT(mqttClient))
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		notifiers = append(notifiers, notify.NewInflux(influxClient))
	} else {
		log.Info("InfluxDB disabled")
	}

	var notifier recipe.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}
	recipes := recipe.NewService(recipe.NewRepository(db), policy, notifier, log.Logger)

	server, err := api.New(api.Deps{
		Config:    cfg.API,
		Security:  cfg.Security,
		Logger:    log,
		DB:        db,
		Tokens:    tokens,
		Users:     users,
		Recipes:   recipes,
		AuditRepo: audit.NewRepository(db),
		MQTT:      mqttClient,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}

	log.Info("recipe manager started",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		"site", cfg.Site.ID,
	)

	<-ctx.Done()
	log.Info("shutdown signal received")

	if err := server.Close(); err != nil {
		log.Error("error stopping API server", "error", err)
	}

	log.Info("recipe manager stopped")
	return nil
}

