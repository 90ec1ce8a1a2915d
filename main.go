package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"resqfood-api/cache"
	"resqfood-api/config"
	"resqfood-api/database"
	"resqfood-api/handlers"
	"resqfood-api/logger"
	"resqfood-api/middleware"
	"resqfood-api/repositories"
	"resqfood-api/routes"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, cleanup := logger.New(cfg.LogLevel, cfg.LogJSON)
	defer cleanup()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Database handle is injected into the repositories
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("✅ Database connected and migrated successfully")

	// Optional redis cache for the admin overview
	var overviewCache *cache.Cache
	if cfg.RedisAddr != "" {
		overviewCache = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		log.Info("Overview cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	// Repositories and handlers
	users := repositories.NewUserRepository(db)
	donations := repositories.NewDonationRepository(db, users)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RateLimit(200, 400),
		middleware.Metrics(),
		ginzap.Ginzap(log, time.RFC3339, true),
		ginzap.RecoveryWithZap(log, true),
	)

	// CORS for frontend integration
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
	}))

	routes.SetupRoutes(r, routes.Handlers{
		Auth:      handlers.NewAuthHandler(users, cfg.JWTSecret),
		Donations: handlers.NewDonationHandler(donations),
		Admin:     handlers.NewAdminHandler(users, donations, overviewCache),
		Public:    handlers.NewPublicHandler(db),
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info("🚀 Server running", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("Server stopped gracefully")
}
