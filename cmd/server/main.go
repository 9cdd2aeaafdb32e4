package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidmorel/skillswap/internal/config"
	"github.com/davidmorel/skillswap/internal/database"
	"github.com/davidmorel/skillswap/internal/handlers"
	"github.com/davidmorel/skillswap/internal/logging"
	"github.com/davidmorel/skillswap/internal/middleware"
	"github.com/davidmorel/skillswap/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
	}

	logger.Info("Starting SkillSwap server...")

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations
	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	sessionStore := services.NewRedisAdapter(redisDB.Client)

	profileService := services.NewProfileService(dbAdapter)
	authService := services.NewAuthService(dbAdapter, sessionStore)
	swapService := services.NewSwapService(dbAdapter, profileService, cfg.Swap.StrictOffered)

	if cfg.Swap.StrictOffered {
		logger.Info("Strict offered-skill validation enabled")
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(profileService, authService, cfg.Server.Secure)
	profileHandler := handlers.NewProfileHandler(profileService)
	swapHandler := handlers.NewSwapHandler(swapService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(logger)

	requireAuth := authMiddleware.RequireAuth

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandler.Me)))

	// Directory endpoints
	mux.Handle("GET /api/users", requireAuth(http.HandlerFunc(profileHandler.Browse)))
	mux.Handle("GET /api/users/{id}", requireAuth(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PUT /api/profile", requireAuth(http.HandlerFunc(profileHandler.Update)))

	// Swap request endpoints
	mux.Handle("POST /api/swaps", requireAuth(http.HandlerFunc(swapHandler.Create)))
	mux.Handle("GET /api/swaps", requireAuth(http.HandlerFunc(swapHandler.List)))
	mux.Handle("GET /api/swaps/counts", requireAuth(http.HandlerFunc(swapHandler.Counts)))
	mux.Handle("PUT /api/swaps/{id}/accept", requireAuth(http.HandlerFunc(swapHandler.Accept)))
	mux.Handle("PUT /api/swaps/{id}/reject", requireAuth(http.HandlerFunc(swapHandler.Reject)))
	mux.Handle("PUT /api/swaps/{id}/complete", requireAuth(http.HandlerFunc(swapHandler.Complete)))
	mux.Handle("POST /api/swaps/{id}/rating", requireAuth(http.HandlerFunc(swapHandler.Rate)))
	mux.Handle("DELETE /api/swaps/{id}", requireAuth(http.HandlerFunc(swapHandler.Delete)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
