package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/pitchside/internal/bridge"
	"github.com/mauv0809/pitchside/internal/command"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/database"
	server "github.com/mauv0809/pitchside/internal/http"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/notifier"
	"github.com/mauv0809/pitchside/internal/notifier/slack"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/mauv0809/pitchside/internal/settings"
	"github.com/mauv0809/pitchside/internal/store"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	// Persistence is optional: without a database the engine runs
	// local-only and state lives until the process exits.
	var matchStore store.Store
	if cfg.DBName == "" {
		log.Warn("DB_NAME not set, running without persistence")
	} else {
		db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		dbInitDuration := time.Since(startTime)
		log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
		if err != nil {
			log.Warn("Database unavailable, running without persistence", "error", err)
		} else {
			defer func() {
				log.Info("Closing database connection")
				dbTeardown()
			}()
			matchStore = store.New(db)
		}
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	initial := match.DefaultState(preset.Default())
	saved := settings.Default()
	if matchStore != nil {
		var found bool
		var err error
		initial, found, err = matchStore.LoadState()
		if err != nil {
			log.Fatalf("Failed to load match state: %s", err)
		}
		log.Info("Loaded match state", "found", found, "preset", initial.GamePreset.Name)

		saved, err = matchStore.LoadSettings()
		if err != nil {
			log.Fatalf("Failed to load settings: %s", err)
		}
	}
	holder := settings.NewHolder(saved)

	engine := match.New(clockwork.NewRealClock(), initial, metricsSvc)
	if matchStore != nil {
		engine.SetPersister(matchStore)
	}
	defer engine.Close()

	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		slackNotifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
		engine.SetNotifier(notifier.EngineHook{Notifier: slackNotifier, DryRun: cfg.DryRun})
	} else {
		log.Info("Slack not configured, final result notifications disabled")
	}

	dispatcher := command.New(engine, holder.Get, metricsSvc)

	s := server.NewServer(
		engine,
		matchStore,
		dispatcher,
		holder,
		metricsSvc,
		metricsHandler,
		cfg,
	)
	defer s.Hub.Close()

	channel, err := bridge.New(cfg.NATS.URL, cfg.NATS.Subject)
	if err != nil {
		log.Warn("Broadcast channel unavailable, running without cross-context sync", "error", err)
		channel = nil
	} else {
		defer channel.Close()
		if err := channel.Subscribe(dispatcher.HandleEnvelope); err != nil {
			log.Fatalf("Failed to subscribe to broadcast channel: %s", err)
		}
	}

	// Every accepted mutation reaches the display surfaces through the hub
	// and, when available, the broadcast channel.
	engine.OnChange(func(state match.MatchState) {
		s.Hub.Broadcast(state)
		if channel != nil {
			if err := channel.Publish(bridge.Envelope{Type: bridge.MessageStateUpdate, State: &state}); err == nil {
				metricsSvc.IncBroadcastsPublished()
			}
		}
	})

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

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
