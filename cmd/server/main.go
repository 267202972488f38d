package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/shift-scheduling-api/internal/config"
	"github.com/yukikurage/shift-scheduling-api/internal/constants"
	"github.com/yukikurage/shift-scheduling-api/internal/database"
	"github.com/yukikurage/shift-scheduling-api/internal/handlers"
	applogger "github.com/yukikurage/shift-scheduling-api/internal/logger"
	"github.com/yukikurage/shift-scheduling-api/internal/middleware"
	"github.com/yukikurage/shift-scheduling-api/internal/repository"
	"github.com/yukikurage/shift-scheduling-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("SHIFT_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := applogger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(10, "tcp", cfg.Redis.Addr(), "", "", []byte(cfg.Session.Secret))
	if err != nil {
		logger.Fatal("failed to create Redis store", zap.Error(err))
	}
	isProduction := cfg.Server.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	accountRepo := repository.NewAccountRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	authService := services.NewAuthService(accountRepo)
	accountService := services.NewAccountService(accountRepo)
	periodService := services.NewPeriodService(periodRepo)
	shiftService := services.NewShiftService(shiftRepo, periodRepo, accountRepo)
	exportService := services.NewExportService(shiftService, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService, authService)
	periodHandler := handlers.NewPeriodHandler(periodService)
	shiftHandler := handlers.NewShiftHandler(shiftService, exportService, authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Shift Scheduling API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentAccount)
			auth.POST("/change-pin", middleware.RequireAuth(), authHandler.ChangePIN)
		}

		// Account administration (manager only)
		accounts := api.Group("/accounts")
		accounts.Use(middleware.RequireAuth(), middleware.RequireManager())
		{
			accounts.GET("", accountHandler.List)
			accounts.POST("", accountHandler.Create)
			accounts.POST("/:id/approve", accountHandler.Approve)
			accounts.POST("/:id/reject", accountHandler.Reject)
			accounts.POST("/:id/reset-pin", accountHandler.ResetPIN)
			accounts.DELETE("/:id", accountHandler.Delete)
		}

		// Period lifecycle and shift data (authenticated)
		periods := api.Group("/periods")
		periods.Use(middleware.RequireAuth())
		{
			periods.GET("", periodHandler.List)
			periods.GET("/current", periodHandler.Current)
			periods.GET("/:id/shifts", shiftHandler.Grid)
			periods.PUT("/:id/shifts/me", shiftHandler.SubmitMine)
			periods.GET("/:id/shifts/me", shiftHandler.MySubmission)

			manager := periods.Group("")
			manager.Use(middleware.RequireManager())
			{
				manager.POST("", periodHandler.Create)
				manager.POST("/publish", periodHandler.Publish)
				manager.POST("/revert", periodHandler.Revert)
				manager.DELETE("/:id/shifts", shiftHandler.Delete)
				manager.GET("/:id/submissions", shiftHandler.Submissions)
				manager.GET("/:id/export", shiftHandler.Export)
			}
		}
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
