package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	apperrors "github.com/Maharshi2203/Sattys-main/common/errors"
	"github.com/Maharshi2203/Sattys-main/common/logger"
	commonmw "github.com/Maharshi2203/Sattys-main/common/middleware"
	"github.com/Maharshi2203/Sattys-main/controllers"
	"github.com/Maharshi2203/Sattys-main/database"
	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"github.com/Maharshi2203/Sattys-main/repository"
	"github.com/Maharshi2203/Sattys-main/routes"
	"github.com/Maharshi2203/Sattys-main/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "sattys-catalog"

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	// --- AWS setup ---
	awsCfg, err := awspkg.LoadAWSConfig(context.Background(), cfg.AWS)
	if err != nil {
		panic("failed to load AWS config: " + err.Error())
	}

	var (
		cwLogs *awspkg.CloudWatchLogsClient
		cwErr  error
	)
	if cfg.CloudWatchEnabled {
		cwLogs, cwErr = awspkg.NewCloudWatchLogsClient(context.Background(), awsCfg, cfg.CloudWatchLogGroup, serviceName, true)
	}

	// --- Logger ---
	var log *zap.Logger
	if cwLogs != nil {
		log, err = logger.InitializeWithWriter(cfg.Env, cwLogs)
	} else {
		log, err = logger.Initialize(cfg.Env)
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	if cwErr != nil {
		log.Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(cwErr))
	}

	log.Info("AWS Configuration",
		zap.String("region", cfg.AWS.Region),
		zap.String("endpoint", cfg.AWS.Endpoint),
		zap.String("bucket", cfg.S3Bucket),
	)

	metrics := awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled)
	events := services.NewCatalogEvents(awspkg.NewSNSClient(awsCfg, log), cfg.CatalogTopicARN, log)

	var objects services.ObjectUploader
	if cfg.S3Bucket != "" {
		objects = awspkg.NewObjectStore(awsCfg, awspkg.ObjectStoreOptions{
			Bucket:       cfg.S3Bucket,
			PublicDomain: cfg.CloudFrontDomain,
		})
	}

	// --- Datastores ---
	db, err := database.ConnectPostgres(cfg.Postgres, log, database.Models()...)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}

	rdb, err := database.NewRedisClient(context.Background(), cfg.RedisURL, log)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}

	// --- Dependency injection ---
	productRepo := repository.NewGormProductRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	shopRepo := repository.NewGormShopRepository(db)
	contactRepo := repository.NewGormContactRepository(db)
	adminRepo := repository.NewGormAdminRepository(db)

	cache := services.NewCacheManager(rdb, cfg.CacheTTL, log)

	tokens, err := services.NewTokenService(cfg.JWTSecret, services.AdminTokenTTL)
	if err != nil {
		log.Fatal("Invalid JWT configuration", zap.Error(err))
	}

	productService := services.NewProductService(productRepo, categoryRepo, contactRepo, cache, events, metrics, log)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, cache, log)
	importService := services.NewImportService(categoryRepo, productRepo, cache, events, metrics, log)
	reviewService := services.NewReviewService(reviewRepo, productRepo, metrics, log)
	shopService := services.NewShopService(shopRepo, log)
	contactService := services.NewContactService(contactRepo, log)
	authService := services.NewAuthService(adminRepo, tokens, log)
	uploadService := services.NewUploadService(objects, cfg.S3Prefix, metrics, log)
	checkoutService := services.NewCheckoutService(productRepo, cfg.WhatsAppPhone, metrics, log)

	importQueue, err := services.NewImportQueue(rdb, cfg.BulkStorageDir, log)
	if err != nil {
		log.Fatal("Failed to prepare bulk import storage", zap.Error(err))
	}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(bootCtx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Error("Failed to bootstrap admin user", zap.Error(err))
	}
	bootCancel()

	validator := controllers.NewRequestValidator()
	handlers := routes.Controllers{
		Products:   controllers.NewProductController(productService, validator),
		Categories: controllers.NewCategoryController(categoryService, validator),
		Imports:    controllers.NewImportController(importService, importQueue, validator, log),
		Reviews:    controllers.NewReviewController(reviewService, validator),
		Shop:       controllers.NewShopController(shopService, validator),
		Contact:    controllers.NewContactController(contactService, validator),
		Auth:       controllers.NewAuthController(authService, validator, tokens.TTL(), cfg.CookieSecure),
		Uploads:    controllers.NewUploadController(uploadService, validator),
		Checkout:   controllers.NewCheckoutController(checkoutService, validator),
	}

	globalLimiter := commonmw.NewRateLimiter(commonmw.PerMinute(cfg.RateLimitPerMinute), 50, 10*time.Minute)
	defer globalLimiter.Stop()
	loginLimiter := commonmw.NewRateLimiter(commonmw.PerMinute(cfg.LoginPerMinute), 5, 30*time.Minute)
	defer loginLimiter.Stop()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(cfg, log, metrics, globalLimiter.Middleware())
	routes.RegisterRoutes(r, handlers, tokens, loginLimiter.Middleware())

	// --- Background import worker ---
	workerCtx, stopWorker := context.WithCancel(context.Background())
	var workerWG sync.WaitGroup
	if cfg.ImportWorkerEnabled {
		worker := services.NewImportWorker(importQueue, importService, log)
		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			worker.Run(workerCtx)
		}()
	}

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Catalog service started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	stopWorker()
	workerWG.Wait()

	if err := rdb.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		log.Error("Database close error", zap.Error(err))
	}

	log.Info("Catalog service stopped gracefully")
}

// newRouter builds the engine with the cross-cutting middleware chain and
// the operational endpoints. Feature routes are added by routes.RegisterRoutes.
func newRouter(cfg *Config, log *zap.Logger, metrics commonmw.MetricsRecorder, rateLimit gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.MaxMultipartMemory = controllers.MaxUploadSize

	r.Use(commonmw.Recovery(log))
	r.Use(commonmw.RequestID())
	r.Use(commonmw.RequestLogger(log))
	r.Use(commonmw.MetricsMiddleware(metrics, serviceName))
	r.Use(commonmw.SecurityHeaders())
	r.Use(commonmw.CORS(cfg.AllowedOrigins))
	r.Use(apperrors.ErrorMiddleware(log))
	if rateLimit != nil {
		r.Use(rateLimit)
	}
	r.Use(commonmw.RequestTimeout(controllers.DefaultContextTimeout, routes.ImportRoute))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})
	r.NoRoute(apperrors.NotFoundHandler)
	r.NoMethod(apperrors.MethodNotAllowedHandler)

	return r
}
