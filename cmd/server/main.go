package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	campaignapp "github.com/daana/backend/internal/application/campaign"
	donationapp "github.com/daana/backend/internal/application/donation"
	identityapp "github.com/daana/backend/internal/application/identity"
	"github.com/daana/backend/internal/application/media"
	"github.com/daana/backend/internal/infrastructure/auth"
	"github.com/daana/backend/internal/infrastructure/config"
	"github.com/daana/backend/internal/infrastructure/logger"
	"github.com/daana/backend/internal/infrastructure/mail"
	"github.com/daana/backend/internal/infrastructure/persistence"
	"github.com/daana/backend/internal/infrastructure/random"
	"github.com/daana/backend/internal/infrastructure/storage"
	"github.com/daana/backend/internal/infrastructure/telemetry"
	"github.com/daana/backend/internal/interfaces/http/handler"
	"github.com/daana/backend/internal/interfaces/http/middleware"
	"github.com/daana/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Daana Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing (no-op provider when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Token blacklist backed by Redis for logout support
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))

	jwtService := auth.NewJWTService(cfg.JWT)

	// Object storage: S3-compatible when credentials are configured, a
	// local stub otherwise so development works without MinIO
	var objectStorage media.ObjectStorageService
	if cfg.Storage.AccessKey != "" && cfg.Storage.SecretKey != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage credentials missing, using stub storage")
	}

	// Outbound mail: real SMTP relay when enabled, logged otherwise
	var mailer mail.Mailer
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(cfg.Mail, log)
	} else {
		mailer = mail.NewLogMailer(log)
		log.Info("Mail disabled, verification codes are logged")
	}

	codeGen := random.NewCryptoCodeGenerator()
	refGen := random.NewUUIDReferenceGenerator()

	// Initialize repositories
	donorRepo := persistence.NewGormDonorRepository(db.DB)
	charityRepo := persistence.NewGormCharityRepository(db.DB)
	adminRepo := persistence.NewGormAdminRepository(db.DB)
	campaignRepo := persistence.NewGormCampaignRepository(db.DB)
	donationRepo := persistence.NewGormDonationRepository(db.DB)
	txManager := persistence.NewTxManager(db)

	// Initialize application services
	authService := identityapp.NewAuthService(donorRepo, charityRepo, adminRepo,
		jwtService, blacklist, codeGen, mailer, log)
	donorService := identityapp.NewDonorService(donorRepo, codeGen, mailer, objectStorage, log)
	charityService := identityapp.NewCharityService(charityRepo, campaignRepo, codeGen, mailer, objectStorage, log)
	campaignService := campaignapp.NewService(campaignRepo, donationRepo, objectStorage, log)
	dashboardService := campaignapp.NewDashboardService(campaignRepo, donationRepo, log)
	donationService := donationapp.NewService(donationRepo, campaignRepo, donorRepo,
		objectStorage, refGen, txManager, log)

	// Shared route middlewares
	authMW := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	optionalAuthMW := middleware.OptionalJWTAuthMiddleware(jwtService)

	// OTP issuing endpoints get the stricter auth rate limit so one address
	// cannot be flooded with codes
	otpLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	otpMW := middleware.RateLimit(otpLimiter)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, authMW)
	donorHandler := handler.NewDonorHandler(donorService, authMW, otpMW)
	charityHandler := handler.NewCharityHandler(charityService, authMW, otpMW)
	campaignHandler := handler.NewCampaignHandler(campaignService, charityService, authMW)
	donationHandler := handler.NewDonationHandler(donationService, donorService, authMW, optionalAuthMW)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, charityService, authMW)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack order: request ID first so recovery and logging can
	// report it, tracing before handlers so spans wrap the request
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit covers the document and payment slip uploads
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint outside API versioning for load balancers
	engine.GET("/health", healthHandler(db))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(authHandler).
		Register(donorHandler).
		Register(charityHandler).
		Register(campaignHandler).
		Register(donationHandler).
		Register(dashboardHandler).
		Register(systemHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for the load balancer health check
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
