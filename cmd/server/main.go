package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/criticalsnake/tracks-backend-go/internal/api"
	"github.com/criticalsnake/tracks-backend-go/internal/config"
	"github.com/criticalsnake/tracks-backend-go/internal/database"
	"github.com/criticalsnake/tracks-backend-go/internal/logging"
	"github.com/criticalsnake/tracks-backend-go/internal/middleware"
	"github.com/criticalsnake/tracks-backend-go/internal/repository"
	"github.com/criticalsnake/tracks-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	logFile := logging.Init(cfg.LogFile)
	defer logFile.Close()

	pipeline, err := config.LoadPipelineConfig(cfg.PipelineConfig)
	if err != nil {
		log.Fatal("Failed to load pipeline config:", err)
	}
	opts, err := pipeline.Options()
	if err != nil {
		log.Fatal("Invalid pipeline config:", err)
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	go limiter.Run(ctx)

	trackService := service.NewTrackService(repository.NewSnapshotRepository(db), opts)
	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: api.SetupRouter(cfg, trackService, limiter),
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
