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
	"storefront/internal/events"
	"storefront/internal/handler"
	"storefront/internal/media"
	"storefront/internal/objectstore"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/validation"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// imageURLPrefix is where locally stored product images are served.
const imageURLPrefix = "/images"

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

	if cfg.Database.RunMigrations {
		if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	cartStore := repository.NewCartRepository(pool, logger)

	// Cart pages may read through Redis; checkout always prices from the store of record
	cartRepo := cartStore

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, cart cache disabled")
		} else {
			cartRepo = cache.NewCartRepository(cartStore, cache.NewRedisCache(rdb, cfg.Redis.CartTTL), logger)
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("cart cache enabled")
		}
	}

	// S3 serves both catalog feeds and product images when enabled
	var s3Client *s3.Client
	if cfg.S3.Enabled {
		s3Client, err = objectstore.NewS3Client(ctx, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 client, falling back to local file system only")
		}
	} else {
		logger.Info().Msg("using local file system for catalog feeds and images (S3 disabled)")
	}

	validator := validation.New()

	imageStore, err := newImageStore(cfg, s3Client, logger)
	if err != nil {
		return err
	}

	if err := importCatalog(ctx, cfg, s3Client, productRepo, validator, logger); err != nil {
		return err
	}

	publisher := events.NewNopPublisher()
	if cfg.AMQP.Enabled {
		publisher, err = events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize order event publisher: %w", err)
		}
	}
	defer publisher.Close()

	// Initialize services
	productService := service.NewProductService(productRepo, imageStore, validator, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	checkoutService := service.NewCheckoutService(
		cartStore, productRepo, orderRepo, addressRepo, publisher, validator,
		service.CheckoutOptions{
			Rules:            cfg.Checkout.Rules(),
			RevalidatePrices: cfg.Checkout.RevalidatePrices,
		},
		logger,
	)
	accountService := service.NewAccountService(userRepo, orderRepo, addressRepo, validator, logger)

	// Initialize HTTP handlers
	loginPath := cfg.Auth.LoginPath
	handlers := router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(cartService, loginPath, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, loginPath, logger),
		Account:  handler.NewAccountHandler(accountService, loginPath, logger),
		Admin:    handler.NewAdminHandler(productService, accountService, cfg.Images.MaxBytes, logger),
	}

	// Initialize router
	mux := router.New(handlers, router.Options{
		Verifier:    auth.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL),
		LoginPath:   loginPath,
		AdminAPIKey: cfg.Auth.AdminAPIKey,
		ImageDir:    cfg.Images.Dir,
	}, logger)

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

// newImageStore stores uploads on S3 when available, keeping the local
// directory as fallback.
func newImageStore(cfg *config.Config, s3Client *s3.Client, logger zerolog.Logger) (media.Store, error) {
	fileStore, err := media.NewFileStore(cfg.Images.Dir, imageURLPrefix, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}
	if s3Client == nil {
		return fileStore, nil
	}

	s3Store := media.NewS3Store(s3Client, media.S3Options{
		Bucket:  cfg.S3.Bucket,
		Region:  cfg.S3.Region,
		Prefix:  cfg.S3.ImagePrefix,
		BaseURL: cfg.S3.PublicBaseURL,
	}, logger)
	return media.NewFallbackStore(s3Store, fileStore, logger), nil
}

// importCatalog upserts the configured seed feeds before the server starts.
func importCatalog(
	ctx context.Context,
	cfg *config.Config,
	s3Client *s3.Client,
	products repository.ProductRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) error {
	if len(cfg.Catalog.SeedFiles) == 0 {
		return nil
	}

	var s3Loader catalog.Loader
	if s3Client != nil {
		s3Loader = catalog.NewS3Loader(s3Client, cfg.S3.Bucket, logger)
	}
	loader := catalog.NewFallbackLoader(s3Loader, catalog.NewFileLoader(logger), cfg.S3.CatalogPrefix, logger)

	result, err := catalog.NewImporter(loader, products, validator, logger).Import(ctx, cfg.Catalog.SeedFiles)
	if err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	logger.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("catalog seeded")
	return nil
}
