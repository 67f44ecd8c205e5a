package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/admin"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/apikey"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/cache"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/logger"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/router"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/settings"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/stats"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/storage"
	postgres "github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/storage/postgres"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	cfg, err := NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	// Monetary report fields must serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Unknown time zone %q: %v", cfg.Timezone, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var store storage.Storage
	store, err = postgres.NewPostgresStorage(cfg.DatabaseConnection)
	if err != nil {
		log.Fatalf("Failed to initialize Postgres storage: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close storage: %v", err)
		}
	}()

	var statsCache cache.Cache
	switch cfg.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Unable to ping redis: %v", err)
		}
		defer client.Close()
		statsCache = cache.NewRedisCache(client)
	default:
		statsCache = cache.NewMemoryCache()
	}

	settingsSvc := settings.NewService(store)
	if err := settingsSvc.Load(ctx); err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	settingsHandler := settings.NewHandler(settingsSvc)

	statsSvc := stats.NewService(store, statsCache, settingsSvc, loc)
	statsHandler := stats.NewHandler(statsSvc)

	scheduler := stats.NewScheduler(statsSvc.PreloadAll, loc)
	settingsSvc.Subscribe(scheduler.Apply)
	scheduler.Apply(settingsSvc.Snapshot())
	defer scheduler.CancelDailyJob()

	gate := apikey.NewService(settingsSvc)
	keyHandler := apikey.NewHandler(gate)

	adminSvc, err := admin.NewService(cfg.AdminPassword, []byte(cfg.JWTSecret), cfg.JWTTTL)
	if err != nil {
		log.Fatalf("Failed to initialize admin auth: %v", err)
	}
	adminHandler := admin.NewHandler(adminSvc)

	r := router.NewRouter(statsHandler, adminHandler, settingsHandler, keyHandler, gate, adminSvc)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
