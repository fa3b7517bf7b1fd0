package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	ratingRepo := repository.NewRatingRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize token manager
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Optional bulk catalogue import at startup
	if cfg.Catalog.ImportEnabled {
		var loader catalog.Loader
		source := cfg.Catalog.FilePath

		if cfg.Catalog.S3Enabled {
			s3Loader, err := catalog.NewS3Loader(ctx, cfg.Catalog.S3Bucket, cfg.Catalog.S3Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 catalogue loader, falling back to local file")
				loader = catalog.NewFileLoader(logger)
			} else {
				loader = s3Loader
				source = cfg.Catalog.S3Key
			}
		} else {
			loader = catalog.NewFileLoader(logger)
		}

		importer := catalog.NewImporter(loader, productRepo, logger)
		if _, err := importer.Import(ctx, source); err != nil {
			return fmt.Errorf("failed to import catalogue: %w", err)
		}
	}

	// Optional Redis cache for analytics reports
	var reportCache cache.Cache
	if cfg.Redis.Enabled {
		reportCache, err = cache.NewRedisCache(ctx, cfg.Redis.Addr, "storefront", logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		defer reportCache.Close()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens, logger)
	productService := service.NewProductService(productRepo, logger)
	ratingService := service.NewRatingService(ratingRepo, productRepo, orderRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, model.StrictTransitionPolicy, logger)
	analyticsService := service.NewAnalyticsService(orderRepo, productRepo, userRepo, reportCache, cfg.Redis.CacheTTL, logger)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	productHandler := handler.NewProductHandler(productService, ratingService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)

	// Initialize router
	mux := router.New(authHandler, productHandler, orderHandler, analyticsHandler, tokens, authService, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
