package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/recordbridge/recordbridge/internal/config"
	"github.com/recordbridge/recordbridge/internal/domain/conflict"
	"github.com/recordbridge/recordbridge/internal/domain/dictionary"
	"github.com/recordbridge/recordbridge/internal/domain/export"
	"github.com/recordbridge/recordbridge/internal/domain/fusion"
	"github.com/recordbridge/recordbridge/internal/domain/mapping"
	"github.com/recordbridge/recordbridge/internal/domain/record"
	"github.com/recordbridge/recordbridge/internal/domain/source"
	"github.com/recordbridge/recordbridge/internal/domain/terminology"
	"github.com/recordbridge/recordbridge/internal/platform/auth"
	"github.com/recordbridge/recordbridge/internal/platform/db"
	"github.com/recordbridge/recordbridge/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bridge-server",
		Short: "Patient record normalization and fusion API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(translateCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// translateCmd runs one fusion pass over the configured sources and prints
// the canonical record as JSON. Useful for demos and pipeline smoke checks.
func translateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Fuse the source records once and print the canonical record",
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcesFlag, _ := cmd.Flags().GetString("sources")

			var selected []record.SourceSystem
			if sourcesFlag != "" {
				for _, s := range strings.Split(sourcesFlag, ",") {
					selected = append(selected, record.SourceSystem(strings.TrimSpace(s)))
				}
			}

			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			svc := fusion.NewService(
				source.NewMemoryRepo(source.SeedRecords()...),
				dictionary.NewStore(),
				conflict.NewService(logger),
				terminology.NewService(terminology.NewMemoryRepo()),
				logger,
			)

			rec, err := svc.Fuse(cmd.Context(), selected)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
	cmd.Flags().String("sources", "", "Comma-separated source systems (default: all)")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	newMigrator := func(ctx context.Context) (*db.Migrator, *config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for migrations")
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, err
		}
		return db.NewMigrator(pool, "migrations"), cfg, nil
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			migrator, _, err := newMigrator(ctx)
			if err != nil {
				return err
			}
			count, err := migrator.Up(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Applied %d migration(s)\n", count)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			migrator, _, err := newMigrator(ctx)
			if err != nil {
				return err
			}
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = fmt.Sprintf("applied %s", s.AppliedAt.Format(time.RFC3339))
				}
				fmt.Printf("%03d  %-30s %s\n", s.Version, s.Name, state)
			}
			return nil
		},
	}

	cmd.AddCommand(upCmd)
	cmd.AddCommand(statusCmd)
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Repositories: Postgres when DATABASE_URL is set, seed-backed memory
	// stores otherwise.
	var (
		pool         *pgxpool.Pool
		sourceRepo   source.Repository
		termRepo     terminology.Repository
		learningRepo mapping.LearningRepository
	)
	if cfg.UseMemoryStores() {
		logger.Info().Msg("no DATABASE_URL set, using in-memory stores with seed records")
		sourceRepo = source.NewMemoryRepo(source.SeedRecords()...)
		termRepo = terminology.NewMemoryRepo()
		learningRepo = mapping.NewMemoryLearningRepo()
	} else {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")

		sourceRepo = source.NewRepoPG(pool)
		termRepo = terminology.NewRepoPG(pool)
		learningRepo = mapping.NewLearningRepoPG(pool)
	}

	// Domain services
	dict := dictionary.NewStore()
	termSvc := terminology.NewService(termRepo)
	conflictSvc := conflict.NewService(logger)
	fusionSvc := fusion.NewService(sourceRepo, dict, conflictSvc, termSvc, logger)
	exportSvc := export.NewService(logger)
	engine := mapping.NewEngine(ctx, dict, learningRepo, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.ResolvedAuthMode() == "development" {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			SigningKey: []byte(cfg.AuthSecret),
		}))
	}

	// API group
	apiV1 := e.Group("/api/v1")

	// Rate limiting middleware
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// Domain routes
	source.NewHandler(sourceRepo).RegisterRoutes(apiV1)
	terminology.NewHandler(termSvc).RegisterRoutes(apiV1)
	fusion.NewHandler(fusionSvc).RegisterRoutes(apiV1)
	conflict.NewHandler(conflictSvc).RegisterRoutes(apiV1)
	export.NewHandler(exportSvc).RegisterRoutes(apiV1)
	mapping.NewHandler(engine).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
