package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"cryptonews/internal/app"
	"cryptonews/internal/config"
	"cryptonews/internal/logger"
	"cryptonews/internal/metrics"
	"cryptonews/internal/news"
)

func main() {
	// Missing .env is fine, env vars may be set directly.
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	logger.Info("starting news fetch run")
	articles, err := app.Run(cfg)
	if err != nil {
		metrics.Global.SetError(err.Error())
		logger.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}

	if err := news.WriteResults(cfg.OutputPath, articles); err != nil {
		logger.Error("failed to write results", "error", err)
		os.Exit(1)
	}

	logger.Info("saved high-quality articles", "count", len(articles), "path", cfg.OutputPath)
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server error", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
