package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ratioai/backend/config"
	"github.com/ratioai/backend/internal/database"
	"github.com/ratioai/backend/internal/router"
	"github.com/ratioai/backend/internal/scraper"
	"github.com/ratioai/backend/internal/service"
)

// Server wires configuration, storage and services into an HTTP server.
type Server struct {
	cfg   *config.Config
	http  *http.Server
	db    *gorm.DB
	redis *redis.Client
}

// New builds a fully wired server from configuration. Redis being down is
// not fatal: caching and rate limiting are disabled instead.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, caching and rate limiting disabled: %v", err)
		redisClient = nil
	}

	fetcher := scraper.NewWithClient(&http.Client{Timeout: cfg.ScrapeTimeout})
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, redisClient, fetcher, cfg.CacheTTL)

	engine := router.SetupRouter(cfg, authService, recipeService, redisClient)

	return &Server{
		cfg:   cfg,
		db:    db,
		redis: redisClient,
		http: &http.Server{
			Addr:              cfg.ServerHost + ":" + cfg.ServerPort,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	return nil
}
