package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/flickmark/flickmark-be/internal/api"
	"github.com/flickmark/flickmark-be/internal/auth"
	"github.com/flickmark/flickmark-be/internal/config"
	"github.com/flickmark/flickmark-be/internal/database"
	"github.com/flickmark/flickmark-be/internal/logger"
	"github.com/flickmark/flickmark-be/internal/metrics"
	"github.com/flickmark/flickmark-be/internal/monitoring"
	"github.com/flickmark/flickmark-be/internal/repository"
	"github.com/flickmark/flickmark-be/internal/services"
	"github.com/flickmark/flickmark-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.AppEnv)
	metrics.Init()

	// Set up the document store. The client is created once here and injected
	// everywhere; it is closed on shutdown.
	ctx := context.Background()
	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	// Set up repositories and services
	userRepo := repository.NewMongoUserRepository(db)
	catalogRepo := repository.NewMongoCatalogRepository(db)

	hub := websocket.NewHub()
	go hub.Run()

	userService := services.NewUserService(userRepo)
	bookmarkService := services.NewBookmarkService(userRepo, hub)
	catalogService := services.NewCatalogService(catalogRepo, userRepo)

	authMgr := auth.New(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	// Set up and run the background trending refresher
	refresher := monitoring.NewTrendingRefresher(catalogRepo, hub, cfg.TrendingRefreshCron, cfg.TrendingTopN)
	go refresher.Run()

	// Set up router
	router := api.NewRouter(cfg, authMgr, userService, bookmarkService, catalogService, hub)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.AppEnv).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
	}

	log.Info().Msg("Server exiting")
}
