// Package logging configures the process-wide slog logger.
//
// Level, format (json or text) and output come from the logging section of
// the config. Every record carries service and version attributes.
//
//	log := logging.New(cfg.Logging, version)
//	log.Info("database connected", "driver", db.Dialect())
//
// Passwords, bearer tokens and the JWT secret are never logged. The single
// exception is a generated administrator password, printed once on first
// start so the operator can sign in.
package logging
