package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vanphal/internal/account"
	"vanphal/internal/cart"
	"vanphal/internal/catalog"
	"vanphal/internal/config"
	"vanphal/internal/coupon"
	"vanphal/internal/handler"
	"vanphal/internal/middleware"
	"vanphal/internal/order"
	"vanphal/internal/recipe"
	"vanphal/internal/router"
	"vanphal/internal/seed"
	"vanphal/internal/store"
	"vanphal/internal/ticket"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting vanphal API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the durable key-value store
	st, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	// Seed the catalogue on first boot, from S3 with local fallback
	fileLoader := seed.NewFileLoader(logger)
	var seedLoader seed.Loader = fileLoader

	if cfg.Seed.S3Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 seed loader, falling back to local file system only")
		} else {
			seedLoader = seed.NewFallbackLoader(s3Loader, fileLoader, cfg.Seed.S3Prefix, true, logger)
		}
	}

	if err := seed.Run(ctx, st, seed.Config{
		ProductsFile:   cfg.Seed.ProductsFile,
		OffersFile:     cfg.Seed.OffersFile,
		CategoriesFile: cfg.Seed.CategoriesFile,
	}, seedLoader, logger); err != nil {
		return fmt.Errorf("failed to seed catalogue: %w", err)
	}

	// Initialize services
	accounts := account.NewService(st, logger)
	if err := accounts.EnsureReservedAccounts(ctx); err != nil {
		return fmt.Errorf("failed to seed reserved accounts: %w", err)
	}

	catalogSvc := catalog.NewService(st, logger)
	cartSvc := cart.NewService(st, catalogSvc, logger)
	resolver := coupon.NewResolver(catalogSvc, logger)
	orderSvc := order.NewService(st, cartSvc, resolver, logger)
	ticketSvc := ticket.NewService(st, logger)
	recipeClient := recipe.NewClient(cfg.Recipes, logger)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(accounts, logger)
	productHandler := handler.NewProductHandler(catalogSvc, recipeClient, logger)
	cartHandler := handler.NewCartHandler(cartSvc, resolver, logger)
	orderHandler := handler.NewOrderHandler(orderSvc, logger)
	ticketHandler := handler.NewTicketHandler(ticketSvc, logger)
	adminHandler := handler.NewAdminHandler(catalogSvc, orderSvc, accounts, ticketSvc, logger)

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)

	mux := router.New(
		authHandler,
		productHandler,
		cartHandler,
		orderHandler,
		ticketHandler,
		adminHandler,
		accounts,
		loginLimiter,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
