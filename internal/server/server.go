// Package server defines the Server container that composes the
// application's shared dependencies and owns their lifecycle:
//
//   - configuration and logging (with the optional New Relic agent)
//   - the PostgreSQL pool and the Redis client
//   - the request validator and its captcha verifier
//   - the background job worker (asynq)
//   - the http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/ticketdesk/internal/captcha"
	"github.com/deppfellow/ticketdesk/internal/config"
	"github.com/deppfellow/ticketdesk/internal/database"
	"github.com/deppfellow/ticketdesk/internal/lib/job"
	"github.com/deppfellow/ticketdesk/internal/validation"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/ticketdesk/internal/logger"
)

// Server is the application container. It is not the HTTP server itself;
// that is configured in SetupHTTPServer.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client

	// Validator runs request rules, including captcha verification.
	Validator *validation.Validator

	// Job enqueues and runs background tasks.
	Job *job.JobService

	httpServer *http.Server
}

// New connects to PostgreSQL and Redis and starts the job worker.
//
// Redis is required: sessions live there, so an unreachable Redis fails
// startup instead of failing every ticket check later.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})
	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pingRedis(ctx, redisClient); err != nil {
		db.Close()
		return nil, err
	}

	if !cfg.Captcha.Enabled() {
		logger.Warn().Msg("captcha secret not configured, captcha verification disabled")
	}
	validator := validation.New(captcha.NewClient(cfg.Captcha, logger))

	jobService := job.NewJobService(logger, cfg)
	if err := jobService.InitHandlers(cfg, logger); err != nil {
		redisClient.Close()
		db.Close()
		return nil, fmt.Errorf("failed to initialize job handlers: %w", err)
	}
	if err := jobService.Start(); err != nil {
		redisClient.Close()
		db.Close()
		return nil, fmt.Errorf("failed to start job server: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Validator:     validator,
		Job:           jobService,
	}, nil
}

// pingRedis checks the connection and closes the client when Redis is
// unreachable.
func pingRedis(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

// SetupHTTPServer configures the http.Server around handler. Config
// timeouts are in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then stops the workers and closes
// the connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		s.Logger.Error().Err(err).Msg("failed to close redis client")
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
