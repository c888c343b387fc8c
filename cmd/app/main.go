package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/VoltEdgeBuilds/learn/config"
	"github.com/VoltEdgeBuilds/learn/internal/application/usecase"
	"github.com/VoltEdgeBuilds/learn/internal/domain"
	"github.com/VoltEdgeBuilds/learn/internal/infrastructure/cache"
	"github.com/VoltEdgeBuilds/learn/internal/infrastructure/database"
	"github.com/VoltEdgeBuilds/learn/internal/infrastructure/repository"
	"github.com/VoltEdgeBuilds/learn/internal/infrastructure/security"
	"github.com/VoltEdgeBuilds/learn/internal/infrastructure/seed"
	"github.com/VoltEdgeBuilds/learn/internal/middleware"
	grpc_server "github.com/VoltEdgeBuilds/learn/internal/transport/grpc"
	handlers "github.com/VoltEdgeBuilds/learn/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Postgres
	db, err := database.Connect(ctx, cfg.DSN(), 30*time.Second)
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// 3. Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis at", cfg.RedisAddr)

	// 4. Репозитории и юзкейсы
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db, rdb, cfg.CatalogCacheTTL, cfg.CourseCacheTTL)
	progressRepo := repository.NewProgressRepository(db)

	if cfg.SeedDemo {
		if _, err := seed.Demo(ctx, courseRepo); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
	}

	tokens := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	media := domain.NewMedia(cfg.MediaImageBase, cfg.MediaEmbedBase)

	authUC := usecase.NewAuthUseCase(userRepo, cache.NewTokenCache(rdb), security.NewPINHasher(), tokens)
	catalogUC := usecase.NewCatalogUseCase(courseRepo, media, cfg.CoursePageURL)
	playerUC := usecase.NewPlayerUseCase(courseRepo, progressRepo, userRepo, media, cfg.ProgressRetryMaxElapsed)

	// 5. HTTP
	if err := handlers.RegisterValidators(); err != nil {
		log.Fatalf("Validator registration failed: %v", err)
	}
	ready := func(ctx context.Context) error { return checkDeps(ctx, db, rdb) }
	router := handlers.NewRouter(handlers.Handlers{
		Auth:   handlers.NewAuthHandler(authUC, cfg.RefreshTTL),
		Course: handlers.NewCourseHandler(catalogUC, playerUC),
		Health: handlers.NewHealthHandler(ready),
	}, middleware.NewRateLimiter(rdb), tokens, cfg.Origins())

	srv := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. gRPC health
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatalf("Listen failed: %v", err)
	}
	ops := grpc_server.NewOpsServer()
	go func() {
		log.Printf("Ops gRPC running on %s", cfg.GRPCPort)
		if err := ops.Serve(lis); err != nil {
			log.Printf("Ops gRPC stopped: %v", err)
		}
	}()
	go ops.Monitor(ctx, 10*time.Second, ready)

	go func() {
		log.Printf("Learn API running on %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	ops.SetServing(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	ops.Stop()
	if err := rdb.Close(); err != nil {
		log.Printf("Redis close: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func checkDeps(ctx context.Context, db *gorm.DB, rdb *redis.Client) error {
	if err := database.Ping(ctx, db); err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}
