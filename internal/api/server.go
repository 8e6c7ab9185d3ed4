package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nerrad567/recipe-manager/internal/audit"
	"github.com/nerrad567/recipe-manager/internal/auth"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/config"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/database"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/logging"
	"github.com/nerrad567/recipe-manager/internal/infrastructure/mqtt"
	"github.com/nerrad567/recipe-manager/internal/recipe"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// secondsPerMinute converts the configured per-minute rate to rate.Limit.
const secondsPerMinute = 60

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	Security  config.SecurityConfig
	Logger    *logging.Logger
	DB        *database.DB
	Tokens    *auth.TokenService
	Users     *auth.Service
	Recipes   *recipe.Service
	AuditRepo audit.Repository
	MQTT      *mqtt.Client // optional; reported by the health endpoint only
	Version   string
}

// Server is the HTTP API server for the recipe manager.
//
// The server is created with New() and started with Start().
type Server struct {
	cfg         config.APIConfig
	logger      *logging.Logger
	db          *database.DB
	tokens      *auth.TokenService
	users       *auth.Service
	recipes     *recipe.Service
	auditRepo   audit.Repository
	mqtt        *mqtt.Client
	rateLimiter *rate.Limiter // nil when rate limiting is disabled
	version     string
	now         func() time.Time
	server      *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("database is required")
	}
	if deps.Tokens == nil || deps.Users == nil {
		return nil, fmt.Errorf("token and user services are required")
	}
	if deps.Recipes == nil {
		return nil, fmt.Errorf("recipe service is required")
	}

	s := &Server{
		cfg:       deps.Config,
		logger:    deps.Logger,
		db:        deps.DB,
		tokens:    deps.Tokens,
		users:     deps.Users,
		recipes:   deps.Recipes,
		auditRepo: deps.AuditRepo,
		mqtt:      deps.MQTT,
		version:   deps.Version,
		now:       time.Now,
	}

	if rl := deps.Security.RateLimit; rl.Enabled {
		s.rateLimiter = rate.NewLimiter(rate.Limit(float64(rl.RequestsPerMinute)/secondsPerMinute), rl.Burst)
	}

	return s, nil
}

// Handler returns the fully wired router. Start serves the same handler.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start begins listening for HTTP connections in a background goroutine.
// The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
