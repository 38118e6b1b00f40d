package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/occucare/clinic/internal/config"
	"github.com/occucare/clinic/internal/domain/appointment"
	"github.com/occucare/clinic/internal/domain/billing"
	"github.com/occucare/clinic/internal/domain/dashboard"
	"github.com/occucare/clinic/internal/domain/doctor"
	"github.com/occucare/clinic/internal/domain/intake"
	"github.com/occucare/clinic/internal/domain/patient"
	"github.com/occucare/clinic/internal/domain/rcm"
	"github.com/occucare/clinic/internal/domain/webhookevent"
	"github.com/occucare/clinic/internal/integrations/agent"
	"github.com/occucare/clinic/internal/integrations/firecrawl"
	"github.com/occucare/clinic/internal/integrations/gohl"
	"github.com/occucare/clinic/internal/integrations/osmind"
	"github.com/occucare/clinic/internal/integrations/squarepay"
	"github.com/occucare/clinic/internal/platform/auth"
	"github.com/occucare/clinic/internal/platform/db"
	"github.com/occucare/clinic/internal/platform/middleware"
	"github.com/occucare/clinic/internal/platform/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic administration and billing API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
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
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// API groups. Webhook ingestion stays outside the authenticated group
	// because vendors cannot present our bearer tokens.
	root := e.Group("")
	apiV1 := e.Group("/api/v1")

	// Auth middleware
	if cfg.IsDev() {
		apiV1.Use(auth.DevAuthMiddleware())
	} else {
		apiV1.Use(auth.JWTMiddleware(auth.JWTConfig{
			SigningKey: []byte(cfg.JWTSecret),
		}))
	}

	// Session store for the voice agent. Redis when configured, so chat
	// sessions survive restarts and are shared across instances.
	sessionTTL := time.Duration(cfg.SessionTTLSeconds) * time.Second
	var sessions session.Store
	if cfg.RedisURL != "" {
		redisClient, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient, sessionTTL)
		logger.Info().Msg("using redis session store")
	} else {
		sessions = session.NewMemoryStore(sessionTTL)
		logger.Info().Msg("using in-memory session store")
	}

	// Outbound SaaS clients. Passthrough routes are always mounted; calls
	// against an unconfigured client surface the transport error to the
	// caller. Best-effort sync hooks are disabled entirely when the vendor
	// is unconfigured, so local writes never depend on them.
	ghlClient := gohl.NewClient(cfg.GHLBaseURL, cfg.GHLAPIKey, cfg.GHLLocationID, logger)
	squareClient := squarepay.NewClient(cfg.SquareBaseURL, cfg.SquareToken, cfg.SquareLocationID, logger)
	osmindClient := osmind.NewClient(cfg.OsmindBaseURL, cfg.OsmindAPIKey, logger)
	firecrawlClient := firecrawl.NewClient(cfg.FirecrawlBaseURL, cfg.FirecrawlAPIKey, logger)
	llmClient := agent.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)

	var contactSyncer patient.ContactSyncer
	var calendarClient appointment.CalendarClient
	if cfg.GHLBaseURL != "" {
		contactSyncer = ghlClient
		calendarClient = ghlClient
	} else {
		logger.Warn().Msg("GHL_BASE_URL not set; CRM sync and calendar push are disabled")
	}

	var invoicePusher billing.InvoicePusher
	if cfg.SquareBaseURL != "" {
		invoicePusher = squareClient
	} else {
		logger.Warn().Msg("SQUARE_BASE_URL not set; invoice push is disabled")
	}

	// -- Register Domain Handlers --

	// Intake workflow
	intakeRepo := intake.NewRepoPG(pool)
	intakeSvc := intake.NewService(intakeRepo)
	intakeHandler := intake.NewHandler(intakeSvc)
	intakeHandler.RegisterRoutes(apiV1)

	// Patient records
	patientRepo := patient.NewRepoPG(pool)
	patientSvc := patient.NewService(patientRepo, contactSyncer, logger)
	patientHandler := patient.NewHandler(patientSvc)
	patientHandler.RegisterRoutes(apiV1)

	// Billing
	billingRepo := billing.NewRepoPG(pool)
	billingSvc := billing.NewService(billingRepo, invoicePusher, logger)
	billingHandler := billing.NewHandler(billingSvc)
	billingHandler.RegisterRoutes(apiV1)

	// Appointments
	apptRepo := appointment.NewRepoPG(pool)
	apptSvc := appointment.NewService(apptRepo, calendarClient, logger)
	apptHandler := appointment.NewHandler(apptSvc)
	apptHandler.RegisterRoutes(apiV1)

	// Doctor tools (clinical notes, demo eRx and secure mail)
	doctorRepo := doctor.NewRepoPG(pool)
	doctorSvc := doctor.NewService(doctorRepo, &doctor.DemoERxSender{}, &doctor.DemoSecureMailer{}, logger)
	doctorHandler := doctor.NewHandler(doctorSvc)
	doctorHandler.RegisterRoutes(apiV1)

	// Revenue cycle (eligibility checks, data export)
	rcmRepo := rcm.NewRepoPG(pool)
	rcmSvc := rcm.NewService(rcmRepo, logger)
	rcmHandler := rcm.NewHandler(rcmSvc)
	rcmHandler.RegisterRoutes(apiV1)

	// Webhook ingestion and audit trail
	whRepo := webhookevent.NewRepoPG(pool)
	whSvc := webhookevent.NewService(whRepo, logger)
	whHandler := webhookevent.NewHandler(whSvc)
	whHandler.RegisterRoutes(root, apiV1)

	// Dashboard stats
	dashRepo := dashboard.NewRepoPG(pool)
	dashSvc := dashboard.NewService(dashRepo)
	dashHandler := dashboard.NewHandler(dashSvc)
	dashHandler.RegisterRoutes(apiV1)

	// -- Register Integration Passthrough Handlers --

	gohl.NewHandler(ghlClient).RegisterRoutes(apiV1)
	squarepay.NewHandler(squareClient).RegisterRoutes(apiV1)
	osmind.NewHandler(osmindClient).RegisterRoutes(apiV1)
	firecrawl.NewHandler(firecrawlClient).RegisterRoutes(apiV1)

	// Voice agent chat
	agentSvc := agent.NewService(llmClient, sessions, ghlClient, logger)
	agentHandler := agent.NewHandler(agentSvc)
	agentHandler.RegisterRoutes(apiV1)

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
