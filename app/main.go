package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/secboard/secboard/app/api"
	"github.com/secboard/secboard/app/cfg"
	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/rss"
	"github.com/secboard/secboard/app/rules"
	"github.com/secboard/secboard/app/tasks"
)

func main() {
	// Optional .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown
		return
	}

	logLevel := slog.LevelInfo
	if c.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting SecBoard", "version", c.Version)

	db, err := database.NewConnection(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations applied", "version", version, "dirty", dirty)

	ruleSet, err := rules.Load(c.RulesFile)
	if err != nil {
		slog.Error("Failed to load rules", "file", c.RulesFile, "error", err)
		os.Exit(1)
	}

	logRepo := database.NewIngestionLogRepository(db)
	detectionRepo := database.NewDetectionRepository(db)
	findingRepo := database.NewFindingRepository(db)
	advisoryRepo := database.NewAdvisoryRepository(db)
	scorecardRepo := database.NewScorecardRepository(db)
	feedRepo := database.NewFeedRepository(db)
	itemRepo := database.NewItemRepository(db)

	httpClient := &http.Client{
		Timeout: time.Duration(c.FeedFetchTimeout) * time.Second,
	}

	slog.Info("Starting background scheduler", "workers", c.WorkerCount, "interval", c.SchedulerInterval)
	scheduler := tasks.NewScheduler(feedRepo, itemRepo, httpClient,
		rss.NewParser(), rss.NewClassifier(ruleSet), rss.NewContentExtractor())
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(logRepo, detectionRepo, findingRepo, advisoryRepo,
		scorecardRepo, feedRepo, itemRepo, ruleSet, scheduler)
	server := api.NewServer(handler, c.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
