package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/mailer"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}

	pool, err := repository.NewPool(context.Background(), cfg.Database.URL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	messageRepo := repository.NewPgMessageRepository(pool)
	notifier := mailer.New(&cfg.Email)
	contactService := service.NewContactService(messageRepo, notifier)
	moderationService := service.NewModerationService(messageRepo)

	h := handler.New(cfg.CORS.AllowedOrigin)
	contactHandler := handler.NewContactHandler(contactService)
	adminHandler := handler.NewAdminHandler(moderationService)

	adminOnly := handler.RequireAdmin(cfg.Admin.Secret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /contact", contactHandler.Submit)
	mux.Handle("GET /admin/messages", adminOnly(http.HandlerFunc(adminHandler.List)))
	mux.Handle("PATCH /admin/messages/{id}", adminOnly(http.HandlerFunc(adminHandler.Update)))

	api := h.CORS(handler.RequestLogger(metrics.Middleware(mux)))

	// /metrics is served outside the API middleware chain.
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			promhttp.Handler().ServeHTTP(w, r)
			return
		}
		api.ServeHTTP(w, r)
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.App.Host, cfg.App.Port),
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "app", cfg.App.Name)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
