package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omkarh25/som/internal/cache"
	"github.com/omkarh25/som/internal/config"
	"github.com/omkarh25/som/internal/database"
	"github.com/omkarh25/som/internal/repository"
	"github.com/omkarh25/som/internal/repository/memory"
	"github.com/omkarh25/som/internal/router"
	"github.com/omkarh25/som/internal/utils"
)

func main() {
	log := utils.GetLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	utils.SetLogLevel(cfg.LogLevel)

	// Initialize record store
	var store repository.Store
	if cfg.DBDriver == config.DriverMemory {
		log.Warn("Using in-memory record store; data is lost on exit")
		store = memory.NewStore()
	} else {
		db, err := database.NewSQL(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		store = repository.NewSQLStore(db)
	}

	// Initialize Redis (optional - lookup cache)
	var lookupCache *cache.LookupCache
	if cfg.CacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := database.NewRedis(ctx, cfg)
		cancel()
		if err != nil {
			log.Warnf("Failed to connect to Redis: %v", err)
			log.Warn("Application will continue without Redis (lookup cache disabled)")
		} else {
			defer redisClient.Close()
			lookupCache = cache.NewLookupCache(redisClient, cfg.CacheTTL, log)
		}
	}

	app := router.NewApp(cfg)
	router.Setup(app, store, lookupCache, cfg)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	port := fmt.Sprintf(":%s", cfg.AppPort)
	log.WithField("driver", cfg.DBDriver).Infof("Server starting on %s", port)
	if err := app.Listen(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Info("Server exited")
}
