package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/krypton/adapters/event"
	httpAdapter "github.com/khoahotran/krypton/adapters/http"
	"github.com/khoahotran/krypton/adapters/media_storage"
	"github.com/khoahotran/krypton/adapters/persistence"
	authUC "github.com/khoahotran/krypton/internal/application/usecase/auth"
	pageUC "github.com/khoahotran/krypton/internal/application/usecase/page"
	settingsUC "github.com/khoahotran/krypton/internal/application/usecase/settings"
	"github.com/khoahotran/krypton/internal/config"
	"github.com/khoahotran/krypton/pkg/auth"
	"github.com/khoahotran/krypton/pkg/logger"
	"github.com/khoahotran/krypton/pkg/tracing"
)

func main() {

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Start Krypton API Server...")

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "krypton-api")
		if err != nil {
			appLogger.Fatal("cannot init tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	accountRepo := persistence.NewPostgresAccountRepo(dbPool)
	viewRepo := persistence.NewPostgresViewRepo(dbPool)
	pageCache := persistence.NewRedisPageCache(redisClient, cfg.Redis.PageTTL)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Use Cases
	signupUseCase := authUC.NewSignupUseCase(accountRepo, jwtSvc, kafkaClient, appLogger)
	loginUseCase := authUC.NewLoginUseCase(accountRepo, jwtSvc, appLogger)
	availabilityUseCase := authUC.NewAvailabilityUseCase(accountRepo)
	pageUseCase := pageUC.NewPageUseCase(accountRepo, pageCache, viewRepo, kafkaClient, appLogger)
	settingsUseCase := settingsUC.NewSettingsUseCase(accountRepo, pageCache, uploader, kafkaClient, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(signupUseCase, loginUseCase, availabilityUseCase)
	pageHandler := httpAdapter.NewPageHandler(pageUseCase)
	settingsHandler := httpAdapter.NewSettingsHandler(settingsUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/availability", authHandler.CheckAvailability)
		}

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.GET("/me", func(c *gin.Context) {

				accountID, ok := httpAdapter.GetAccountIDFromGinContext(c)
				if !ok {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get account id from context"})
					return
				}
				a, err := accountRepo.FindByID(c.Request.Context(), accountID)
				if err != nil {
					c.Error(err)
					return
				}
				c.JSON(http.StatusOK, httpAdapter.ToAccountDTO(a))
			})

			private.GET("/settings", settingsHandler.GetSettings)
			private.PUT("/settings", settingsHandler.UpdateSettings)
			private.POST("/settings/avatar", settingsHandler.UploadAvatar)
		}

		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.GET("/pages/:username", pageHandler.GetPage)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
