// B-Care - Bank Customer-Care Assistant Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/bcare-id/bcare/internal/api"
	"github.com/bcare-id/bcare/internal/chat"
	"github.com/bcare-id/bcare/internal/config"
	"github.com/bcare-id/bcare/internal/lm"
	"github.com/bcare-id/bcare/internal/middleware"
	"github.com/bcare-id/bcare/internal/relay"
	"github.com/bcare-id/bcare/internal/sla"
	"github.com/bcare-id/bcare/internal/store"
	"github.com/bcare-id/bcare/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "model", cfg.LM.Model)

	// Initialize dependencies.
	sessions := store.NewMemory()
	states := store.NewClarifyStore()

	model := lm.New(cfg.LM.BaseURL, cfg.LM.APIKey, cfg.LM.Model, float32(cfg.LM.Temperature))
	chatSvc := chat.NewService(sessions, model)

	slaIndex, err := sla.Load(cfg.SLACSVPath)
	if err != nil {
		slog.Error("Failed to load SLA sheet", "error", err, "path", cfg.SLACSVPath)
		os.Exit(1)
	}

	// Initialize handlers.
	handler := api.NewHandler(chatSvc, sessions, states, model, slaIndex, cfg.LM.Model)
	hub := relay.NewHub()
	wsHandler := relay.NewWebSocketHandler(hub, cfg.CORSOrigin)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{cfg.CORSOrigin}))

	// API routes.
	handler.Routes(r)

	// WebSocket relay endpoint.
	r.Get("/ws", wsHandler.ServeHTTP)

	// Serve embedded demo client.
	r.Handle("/*", web.Handler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // model turns can outlive any sane write deadline
		IdleTimeout:  120 * time.Second,
	}

	// Start session janitor.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store.StartJanitor(ctx, sessions, cfg.SessionTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
