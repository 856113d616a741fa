package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/bazaartech/backend/internal/application/audit"
	catalogapp "github.com/bazaartech/backend/internal/application/catalog"
	identityapp "github.com/bazaartech/backend/internal/application/identity"
	inventoryapp "github.com/bazaartech/backend/internal/application/inventory"
	partnerapp "github.com/bazaartech/backend/internal/application/partner"
	seedapp "github.com/bazaartech/backend/internal/application/seed"
	"github.com/bazaartech/backend/internal/infrastructure/auth"
	"github.com/bazaartech/backend/internal/infrastructure/cache"
	"github.com/bazaartech/backend/internal/infrastructure/config"
	"github.com/bazaartech/backend/internal/infrastructure/event"
	"github.com/bazaartech/backend/internal/infrastructure/logger"
	"github.com/bazaartech/backend/internal/infrastructure/persistence"
	"github.com/bazaartech/backend/internal/infrastructure/queue"
	"github.com/bazaartech/backend/internal/infrastructure/telemetry"
	"github.com/bazaartech/backend/internal/interfaces/http/handler"
	"github.com/bazaartech/backend/internal/interfaces/http/middleware"
	"github.com/bazaartech/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("Starting inventory backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env))

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.DB.Use(otelgorm.NewPlugin()); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	balanceRepo := persistence.NewGormStockBalanceRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	auditRepo := persistence.NewGormAuditEntryRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Token revocation prefers Redis so logouts survive restarts; the
	// in-memory fallback keeps a single instance usable without Redis.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	var blacklist auth.TokenBlacklist
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	stockCache, err := cache.NewStockCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to create stock cache", zap.Error(err))
	}

	bus := event.NewInMemoryEventBus(log)
	auditService := auditapp.NewService(auditRepo, log)
	depletedHandler := inventoryapp.NewStockDepletedHandler(log, auditService)
	bus.Subscribe(depletedHandler, depletedHandler.EventTypes()...)
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	var (
		taskQueue   queue.TaskQueue
		taskSource  queue.TaskSource
		queueProber handler.QueueProber
		closeQueue  func() error
	)
	switch cfg.Queue.Driver {
	case "redis":
		rq, err := queue.NewRedisTaskQueue(queue.RedisQueueOptions{
			Addr:        cfg.Redis.Addr(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			Key:         cfg.Queue.Name,
			PollTimeout: cfg.Queue.PollTimeout,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis task queue", zap.Error(err))
		}
		taskQueue, taskSource, queueProber, closeQueue = rq, rq, rq, rq.Close
	default:
		mq := queue.NewInMemoryTaskQueue(cfg.Queue.BufferSize, cfg.Queue.PollTimeout)
		taskQueue, taskSource, queueProber, closeQueue = mq, mq, mq, mq.Close
	}
	log.Info("Task queue ready",
		zap.String("driver", cfg.Queue.Driver),
		zap.Int("workers", cfg.Queue.Workers))

	reconciler := inventoryapp.NewReconciler(movementRepo, userRepo, txScope, stockCache, auditService, log)
	reconciler.SetEventPublisher(bus)

	dispatcher := inventoryapp.NewDispatcher(taskQueue, reconciler, log)
	registry := queue.NewRegistry()
	dispatcher.RegisterHandlers(registry)

	pool := queue.NewWorkerPool(taskSource, registry, cfg.Queue.Workers, log)
	pool.Start(ctx)

	jwtService := auth.NewJWTService(cfg.JWT)
	identityService := identityapp.NewService(userRepo, jwtService, blacklist, log)
	movementService := inventoryapp.NewMovementService(movementRepo, dispatcher, log)
	stockService := inventoryapp.NewStockService(balanceRepo, stockCache, log)
	productService := catalogapp.NewProductService(productRepo, log)
	storeService := partnerapp.NewStoreService(storeRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)

	authHandler := handler.NewAuthHandler(identityService)
	movementHandler := handler.NewMovementHandler(movementService)
	stockHandler := handler.NewStockHandler(stockService)
	auditHandler := handler.NewAuditHandler(auditService)
	productHandler := handler.NewProductHandler(productService)
	storeHandler := handler.NewStoreHandler(storeService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	systemHandler := handler.NewSystemHandler(db, queueProber)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
	)
	if cfg.Telemetry.Enabled {
		engine.Use(
			middleware.Tracing(middleware.TracingConfig{
				ServiceName: cfg.Telemetry.ServiceName,
				Enabled:     true,
			}),
			middleware.SpanErrorMarker(),
		)
	}
	engine.Use(
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		}),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	// Liveness probe outside the versioned API so load balancers reach it
	// without a token.
	engine.GET("/health", systemHandler.Health)

	skipPaths := []string{
		"/api/v1/auth/login",
		"/api/v1/auth/register",
		"/api/v1/system/ping",
		"/api/v1/system/info",
	}
	if cfg.App.Env != "production" {
		// Seeding creates the first login, so it cannot sit behind auth.
		skipPaths = append(skipPaths, "/api/v1/seed")
	}

	apiRouter := router.New(engine, router.WithAPIVersion("v1")).
		Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			SkipPaths:      skipPaths,
			Logger:         log,
		}))

	apiRouter.Register(
		router.NewGroup("/auth").
			POST("/register", authHandler.Register).
			POST("/login", authHandler.Login).
			POST("/logout", authHandler.Logout).
			GET("/me", authHandler.Me),
		router.NewGroup("/movements").
			POST("", movementHandler.Create).
			GET("", movementHandler.List).
			GET("/:id", movementHandler.GetByID),
		router.NewGroup("/stock").
			GET("", stockHandler.List).
			GET("/lookup", stockHandler.Lookup),
		router.NewGroup("/logs").
			GET("", auditHandler.List),
		router.NewGroup("/products").
			POST("", productHandler.Create).
			GET("", productHandler.List).
			GET("/:id", productHandler.GetByID).
			PUT("/:id", productHandler.Update).
			DELETE("/:id", productHandler.Delete),
		router.NewGroup("/stores").
			POST("", storeHandler.Create).
			GET("", storeHandler.List).
			GET("/:id", storeHandler.GetByID).
			PUT("/:id", storeHandler.Update).
			DELETE("/:id", storeHandler.Delete),
		router.NewGroup("/suppliers").
			POST("", supplierHandler.Create).
			GET("", supplierHandler.List).
			GET("/:id", supplierHandler.GetByID).
			PUT("/:id", supplierHandler.Update).
			DELETE("/:id", supplierHandler.Delete),
		router.NewGroup("/system").
			GET("/ping", systemHandler.Ping).
			GET("/info", systemHandler.Info).
			GET("/health", systemHandler.Health),
	)
	if cfg.App.Env != "production" {
		seedService := seedapp.NewService(storeRepo, supplierRepo, productRepo, userRepo, movementService, log)
		apiRouter.Register(router.NewGroup("/seed").POST("", handler.NewSeedHandler(seedService).Run))
	}
	apiRouter.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	// Drain in-flight reconciliations before closing the queue so accepted
	// movements are not lost on a clean exit.
	if err := pool.Stop(shutdownCtx); err != nil {
		log.Error("Worker pool shutdown failed", zap.Error(err))
	}
	if err := closeQueue(); err != nil {
		log.Error("Task queue close failed", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer shutdown failed", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Database close failed", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
