package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transandino/internal/config"
	"transandino/internal/handlers"
	"transandino/internal/middleware"
	"transandino/internal/repositories/mongodb"
	"transandino/internal/services"
	"transandino/pkg/cache"
	"transandino/pkg/database"
	"transandino/pkg/logger"
	"transandino/pkg/websocket"
	"transandino/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Repositories
	driverRepo := mongodb.NewDriverRepository(db.Database)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database)
	semitrailerRepo := mongodb.NewSemitrailerRepository(db.Database)
	tripRepo := mongodb.NewTripRepository(db.Database, redisCache)
	locationRepo := mongodb.NewLocationRepository(db.Database)
	clientRepo := mongodb.NewClientRepository(db.Database)
	auditRepo := mongodb.NewAuditLogRepository(db.Database)

	// Services
	auditService := services.NewAuditService(auditRepo, appLogger)
	assignmentService := services.NewAssignmentService(driverRepo, vehicleRepo, semitrailerRepo, tripRepo, auditService, appLogger)
	stageTemplates := services.NewStageTemplateService(locationRepo)
	tripService := services.NewTripService(tripRepo, stageTemplates, assignmentService, auditService, appLogger)
	fleetService := services.NewFleetService(driverRepo, vehicleRepo, semitrailerRepo, assignmentService, appLogger)
	clientService := services.NewClientService(clientRepo)

	// WebSocket hub
	wsHandler := websocket.NewHandler(websocket.Options{
		ReadBufferSize:    cfg.WebSocket.ReadBufferSize,
		WriteBufferSize:   cfg.WebSocket.WriteBufferSize,
		HandshakeTimeout:  cfg.WebSocket.HandshakeTimeout,
		EnableCompression: cfg.WebSocket.EnableCompression,
		AllowedOrigins:    cfg.WebSocket.AllowedOrigins,
	})

	// Handlers
	fleetHandler := handlers.NewFleetHandler(fleetService, assignmentService, wsHandler)
	tripHandler := handlers.NewTripHandler(tripService, wsHandler)
	clientHandler := handlers.NewClientHandler(clientService)
	auditHandler := handlers.NewAuditHandler(auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupFleetRoutes(v1, fleetHandler, cfg.Security.JWTSecret)
		routes.SetupTripRoutes(v1, tripHandler, cfg.Security.JWTSecret)
		routes.SetupClientRoutes(v1, clientHandler, auditHandler, cfg.Security.JWTSecret)
	}

	router.GET(cfg.WebSocket.Path, middleware.AuthRequired(cfg.Security.JWTSecret), wsHandler.HandleWebSocket)

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"mongodb": "ok", "redis": "ok"}
		if err := db.Ping(); err != nil {
			checks["mongodb"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := redisCache.Ping(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
			"checks":  checks,
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting server on port %d", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}
