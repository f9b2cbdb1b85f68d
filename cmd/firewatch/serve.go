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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jcurry/wa-firewatch/internal/alert"
	"github.com/jcurry/wa-firewatch/internal/api"
	"github.com/jcurry/wa-firewatch/internal/config"
	"github.com/jcurry/wa-firewatch/internal/logging"
	"github.com/jcurry/wa-firewatch/internal/observability"
	"github.com/jcurry/wa-firewatch/internal/refresh"
	"github.com/jcurry/wa-firewatch/internal/repository"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	publisher := alert.New(cfg)
	defer publisher.Close()
	if cfg.AlertsEnabled() {
		slog.Info("alert publishing enabled", "topic", cfg.Alerts.KafkaTopic, "brokers", cfg.Alerts.KafkaBrokers)
	}

	mgr := refresh.NewManager(cfg, db, publisher, metrics)
	if err := mgr.Start(ctx); err != nil {
		logging.Fatalf("Initial dataset load failed: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5, 10)) // 5 req/s sustained, burst covers a dashboard page load

	handler := api.NewHandler(db, mgr, metrics, cfg.Auth.JWTSecret)
	router.Use(handler.MetricsMiddleware())
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	mgr.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
