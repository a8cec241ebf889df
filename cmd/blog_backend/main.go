package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/blog_backend/internal/adapters/google"
	"github.com/SscSPs/blog_backend/internal/adapters/mail"
	"github.com/SscSPs/blog_backend/internal/adapters/storage"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	"github.com/SscSPs/blog_backend/internal/core/services"
	"github.com/SscSPs/blog_backend/internal/handlers"
	"github.com/SscSPs/blog_backend/internal/middleware"
	"github.com/SscSPs/blog_backend/internal/platform/config"
	"github.com/SscSPs/blog_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/blog_backend/internal/utils"
	"github.com/SscSPs/blog_backend/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/urfave/cli/v2"
)

// @title Blog Backend API
// @version 1.0
// @description Accounts, blogs, categories, tags and contact relay for the blog.

// @host localhost:8000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	app := &cli.App{
		Name:  "blog_backend",
		Usage: "blog API server",
		// serve is the default so the container entrypoint needs no arguments.
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Action: migrateOnly,
			},
			{
				Name:  "promote-admin",
				Usage: "grant the admin role to an existing user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "email of the user to promote", Required: true},
				},
				Action: promoteAdmin,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// bootstrap loads config and installs the JSON logger as the default.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func migrateOnly(_ *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	return runMigrations(cfg, logger)
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		return err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
	return nil
}

func promoteAdmin(c *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	pool, err := database.NewPgxPool(c.Context, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer pool.Close()

	repos := pgsql.NewRepositoryProvider(pool, nil)
	userService := services.NewUserService(cfg, repos.UserRepo, repos.BlogRepo, repos.PhotoRepo)
	if err := userService.PromoteAdmin(c.Context, c.String("email")); err != nil {
		return err
	}
	logger.Info("User promoted to admin", slog.String("email", c.String("email")))
	return nil
}

func serve(c *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	if err := cfg.ValidateSecrets(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		return err
	}

	photos, err := newPhotoStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	repos := pgsql.NewRepositoryProvider(dbPool, photos)
	container := services.NewServiceContainer(
		cfg,
		repos,
		mail.New(cfg.SendGridAPIKey, logger),
		google.NewVerifier(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL),
	)

	authLimiter, closeRedis, err := newAuthLimiter(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRedis()

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer analytics.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	r.MaxMultipartMemory = 12 << 20

	handlers.RegisterRoutes(r, cfg, container, handlers.Options{
		AuthLimiter: authLimiter,
		Analytics:   analytics,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newPhotoStore returns the S3 store when configured; nil selects the PostgreSQL bytea store.
func newPhotoStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.PhotoRepositoryFacade, error) {
	if cfg.PhotoStorage != config.PhotoStorageS3 {
		return nil, nil
	}
	store, err := storage.NewS3PhotoStore(ctx, storage.Options{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 photo store: %w", err)
	}
	logger.Info("Photos stored in S3", slog.String("bucket", cfg.S3Bucket))
	return store, nil
}

// newAuthLimiter shares limits through Redis when REDIS_URL is set, otherwise keeps them in memory.
func newAuthLimiter(cfg *config.Config, logger *slog.Logger) (*limiter.Limiter, func(), error) {
	noop := func() {}
	if cfg.RedisURL == "" {
		l, err := middleware.NewLimiter(cfg.AuthRateLimit, nil)
		if err != nil {
			return nil, noop, err
		}
		return l, noop, nil
	}

	client, err := middleware.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, noop, err
	}
	l, err := middleware.NewLimiter(cfg.AuthRateLimit, redis.UniversalClient(client))
	if err != nil {
		_ = client.Close()
		return nil, noop, err
	}
	logger.Info("Rate limits shared through Redis")
	return l, func() { _ = client.Close() }, nil
}
