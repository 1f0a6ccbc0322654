package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"footcaster-market-api/internal/cache"
	"footcaster-market-api/internal/config"
	"footcaster-market-api/internal/handler"
	"footcaster-market-api/internal/middleware"
	"footcaster-market-api/internal/router"
	"footcaster-market-api/internal/service"
	"footcaster-market-api/internal/store"

	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Footcaster Market API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize record store based on config
	var st *store.Store
	var err error
	switch cfg.MarketDB.Type {
	case "mysql":
		st, err = store.OpenMySQL(cfg.MarketDB.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL store: %v", err)
		}
	default: // sqlite
		st, err = store.OpenSQLite(cfg.MarketDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite store: %v", err)
		}
	}
	defer st.Close()

	// Initialize cache (redis in production, memory otherwise)
	var readCache cache.Cache
	if cfg.Cache.Type == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
		} else {
			readCache = cache.NewRedisCache(redisClient)
			log.Println("Redis cache initialized")
		}
		cancel()
	}
	if readCache == nil {
		memCache := cache.NewMemoryCache()
		defer memCache.Close()
		readCache = memCache
		log.Println("Memory cache initialized")
	}

	// Initialize services
	identityService := service.NewIdentityService(st)
	starterService := service.NewStarterService(st, cfg.Game.HoldPeriod)
	marketService := service.NewMarketService(st, readCache, cfg.Cache.TTL, cfg.App.OperatorFID)
	auctionService := service.NewAuctionService(st, readCache, cfg.Cache.TTL, service.AuctionConfig{
		OperatorFID:        cfg.App.OperatorFID,
		AntiSnipeWindow:    cfg.Game.AntiSnipeWindow,
		AntiSnipeExtension: cfg.Game.AntiSnipeExtension,
	})
	inboxService := service.NewInboxService(st, readCache, cfg.Cache.TTL)
	pvpService := service.NewPvpService(st)
	replayService := service.NewReplayService(st)

	// Start the idempotency sweeper
	sweeper := service.NewSweeper(st, service.SweeperConfig{
		SweepInterval: cfg.Game.IdempotencySweepInterval,
	})
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize handlers
	healthHandler := handler.New(st, cfg.App.Version)
	identityHandler := handler.NewIdentityHandler(identityService, starterService, marketService)
	marketHandler := handler.NewMarketHandler(marketService)
	auctionHandler := handler.NewAuctionHandler(auctionService)
	inboxHandler := handler.NewInboxHandler(inboxService)
	pvpHandler := handler.NewPvpHandler(pvpService)
	replayHandler := handler.NewReplayHandler(replayService)
	eventHandler := handler.NewEventHandler(st)
	adminHandler := handler.NewAdminHandler(st, sweeper, cfg.App.LoginKey)

	// Create auth middleware with injected dependencies
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{})

	// Create router
	r := router.New(router.Config{
		Handler:         healthHandler,
		IdentityHandler: identityHandler,
		MarketHandler:   marketHandler,
		AuctionHandler:  auctionHandler,
		InboxHandler:    inboxHandler,
		PvpHandler:      pvpHandler,
		ReplayHandler:   replayHandler,
		EventHandler:    eventHandler,
		AdminHandler:    adminHandler,
		AuthMiddleware:  authMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
