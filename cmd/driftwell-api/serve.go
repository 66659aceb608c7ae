package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/driftwell/backend/internal/config"
	"github.com/driftwell/backend/internal/handlers"
	"github.com/driftwell/backend/internal/logger"
	"github.com/driftwell/backend/internal/middleware"
	"github.com/driftwell/backend/internal/repository"
	"github.com/driftwell/backend/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// A missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.New(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	logger.SetDefault(log)

	log.Info("starting driftwell API server",
		logger.String("env", cfg.Server.Env),
		logger.String("storage", cfg.Storage.Driver),
	)

	// Wire the persistence adapter behind the repository interfaces.
	var (
		profileRepo repository.ProfileRepository
		trendRepo   repository.TrendRepository
		sessionRepo repository.SessionRepository
	)
	switch cfg.Storage.Driver {
	case "sqlite":
		store, err := repository.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("failed to open sqlite store: %w", err)
		}
		defer store.Close()
		profileRepo = store.Profiles()
		trendRepo = store.Trends()
		sessionRepo = store.Sessions()
	default:
		store := repository.NewMemoryStore()
		profileRepo = store.Profiles()
		trendRepo = store.Trends()
		sessionRepo = store.Sessions()
	}

	sleepService := service.NewSleepService(profileRepo, trendRepo, sessionRepo)

	profileHandler := handlers.NewProfileHandler(sleepService)
	sleepHandler := handlers.NewSleepHandler(sleepService)
	sessionHandler := handlers.NewSessionHandler(sleepService)
	analyticsHandler := handlers.NewAnalyticsHandler(sleepService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORS.Origins()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity())
	{
		v1.PUT("/profile", profileHandler.SaveProfile)
		v1.GET("/profile", profileHandler.GetProfile)

		v1.POST("/sleep", sleepHandler.RecordDailySleep)
		v1.GET("/sleep/trends", sleepHandler.GetSleepTrends)

		v1.POST("/breathing/sessions", sessionHandler.RecordSession)
		v1.GET("/breathing/sessions", sessionHandler.GetSessions)

		v1.GET("/analytics/sleep", analyticsHandler.GetSleepAnalytics)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
