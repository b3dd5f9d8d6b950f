package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/treasurywatch/debt-tracker/internal/cache"
	"github.com/treasurywatch/debt-tracker/internal/config"
	"github.com/treasurywatch/debt-tracker/internal/handler"
	"github.com/treasurywatch/debt-tracker/internal/integrations/treasury"
	"github.com/treasurywatch/debt-tracker/internal/middleware"
	"github.com/treasurywatch/debt-tracker/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize layers
	client := treasury.NewClient(cfg, logger)
	seriesCache := cache.NewSeriesCache(cfg.CacheTTL)
	svc := service.NewService(client, seriesCache, logger, cfg)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.HandleFunc("/health", h.Health).Methods("GET")
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/debt/series", h.GetSeries).Methods("GET")
	api.HandleFunc("/debt/metrics", h.GetMetrics).Methods("GET")
	api.HandleFunc("/debt/table", h.GetDisplayTable).Methods("GET")
	api.HandleFunc("/cache/invalidate", h.InvalidateCache).Methods("POST")

	// Drop cached series at midnight UTC so the first request of a new day
	// fetches fresh data even if a client still sends a stale epoch.
	scheduler := cron.New(cron.WithLocation(time.UTC))
	if _, err := scheduler.AddFunc("0 0 * * *", svc.Invalidate); err != nil {
		logger.Fatalf("Failed to schedule daily cache rollover: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
