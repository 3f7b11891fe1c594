package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aellis6/base-reports/internal/agents"
	"github.com/aellis6/base-reports/internal/api"
	"github.com/aellis6/base-reports/internal/config"
	"github.com/aellis6/base-reports/internal/history"
	"github.com/aellis6/base-reports/internal/incidents"
	"github.com/aellis6/base-reports/internal/metrics"
	"github.com/aellis6/base-reports/internal/session"
	"github.com/aellis6/base-reports/internal/ticker"
	"github.com/aellis6/base-reports/internal/websocket"
	"github.com/aellis6/base-reports/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Msg("starting base-reports server")

	// Create WebSocket hub
	hub := websocket.NewHub(log.Logger)
	go hub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Heartbeats let clients surface a dead connection
	heartbeat := ticker.NewTicker(hub, 30*time.Second, log.Logger)
	go heartbeat.Start(ctx)

	wsHandler := websocket.NewHandler(hub, cfg, log.Logger)

	// Session state, agent name resolution, incident snapshot
	sess := session.NewStore()
	resolver := agents.NewResolver()
	incidentStore := incidents.NewStore()

	// Historical trend source is optional; without a DSN the trend
	// endpoints report unavailable.
	var histSource *history.Source
	if cfg.HistoryDSN != "" {
		histSource, err = history.New(ctx, cfg.HistoryDSN, cfg.HistoryQueryTimeout, cfg.HistoryCacheTTL, log.Logger)
		if err != nil {
			log.Warn().Err(err).Msg("history archive unavailable, trend charts disabled")
			histSource = nil
		}
	}

	uploadHandler := api.NewUploadHandler(sess, resolver, hub, cfg.MaxUploadBytes, log.Logger)
	filterHandler := api.NewFilterHandler(sess, hub, log.Logger)
	reportHandler := api.NewReportHandler(sess, log.Logger)
	incidentHandler := api.NewIncidentHandler(sess, incidentStore, log.Logger)
	historyHandler := api.NewHistoryHandler(histSource, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", healthHandler)
	r.Get("/internal/stats", metrics.Get().Handler)
	r.Get("/ws", wsHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", uploadHandler.HandleUpload)
		r.Post("/agentmap", uploadHandler.HandleAgentMap)

		r.Get("/dataset", filterHandler.HandleDataset)
		r.Post("/filters", filterHandler.HandleApply)
		r.Post("/filters/reset", filterHandler.HandleReset)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", reportHandler.HandleSummary)
			r.Get("/weekly", reportHandler.HandleWeekly)
			r.Get("/hold-buckets", reportHandler.HandleHoldBuckets)
			r.Get("/top", reportHandler.HandleTop)
			r.Get("/by-day", reportHandler.HandleByDay)
			r.Get("/by-shift", reportHandler.HandleByShift)
			r.Get("/categories", reportHandler.HandleCategories)
			r.Get("/transfers", reportHandler.HandleTransfers)
			r.Post("/custom", reportHandler.HandleCustom)
		})

		r.Post("/incidents", incidentHandler.HandleSave)
		r.Get("/incidents/summary", incidentHandler.HandleSummary)
		r.Get("/poa", incidentHandler.HandleGetPOA)
		r.Put("/poa", incidentHandler.HandlePutPOA)

		r.Route("/history", func(r chi.Router) {
			r.Get("/weekly-hold", historyHandler.HandleWeeklyHold)
			r.Get("/weekly-top-hold", historyHandler.HandleWeeklyTopHold)
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"base-reports"}`)
}
