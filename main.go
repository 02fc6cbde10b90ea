package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-ledger/internal/config"
	"github.com/mauv0809/swiss-ledger/internal/database"
	server "github.com/mauv0809/swiss-ledger/internal/http"
	"github.com/mauv0809/swiss-ledger/internal/metrics"
	"github.com/mauv0809/swiss-ledger/internal/notifier/slack"
	"github.com/mauv0809/swiss-ledger/internal/processor"
	"github.com/mauv0809/swiss-ledger/internal/pubsub"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	config.ConfigureLogger(cfg.Log)

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	ledger := tournament.New(db, metricsSvc)
	if !cfg.Slack.Enabled() {
		log.Warn("Slack is not configured, notifications will only be logged")
	}
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	// Without a GCP project, announcements are delivered in-process.
	var ps pubsub.PubSubClient
	if cfg.ProjectID != "" {
		ps, err = pubsub.New(cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer ps.Close()
	} else {
		log.Warn("No GCP project configured, events are delivered in-process")
	}
	processor := processor.New(ledger, notifier, ps)

	s := server.NewServer(
		ledger,
		metricsHandler,
		cfg,
		notifier,
		processor,
		ps,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
