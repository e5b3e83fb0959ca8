package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/belac-fun/belac-backend/internal/api"
	"github.com/belac-fun/belac-backend/internal/config"
	"github.com/belac-fun/belac-backend/internal/core"
	"github.com/belac-fun/belac-backend/internal/logging"
	"github.com/belac-fun/belac-backend/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Command line flag for seeding
	seedOnlyFlag := flag.Bool("seed-only", false, "Apply migrations, seed the app registry and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *seedOnlyFlag); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, seedOnly bool) error {
	// Initialize database store; migrations run on open
	dbStore, err := store.Open(cfg.DatabaseDriver, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbStore.Close()

	if cfg.SeedApps || seedOnly {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		_, err := dbStore.SeedApps(seedCtx, store.DefaultApps)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to seed app registry: %w", err)
		}
	}
	if seedOnly {
		logger.Info("Seeding complete, exiting")
		return nil
	}

	services := api.Services{
		Community:     core.NewCommunityService(dbStore),
		Tracker:       core.NewTrackerService(dbStore),
		Intent:        core.NewIntentService(dbStore, logger),
		Marketplace:   core.NewMarketplaceService(dbStore),
		Profiles:      core.NewProfileService(dbStore, logger),
		Conversations: core.NewConversationService(dbStore, logger),
	}
	apiHandler := api.NewAPIHandler(services, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := api.RouterOptions{AllowedOrigins: cfg.CORSAllowedOrigins}
	if cfg.RateLimitRPS > 0 {
		opts.RateLimiter = api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
		opts.RateLimiter.StartCleanup(ctx, 10*time.Minute)
	}
	router := api.NewRouter(apiHandler, opts)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", serverAddr), zap.String("driver", cfg.DatabaseDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("could not listen on %s: %w", serverAddr, err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	// Give active connections time to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exiting gracefully")
	return nil
}
