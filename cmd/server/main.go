package main

import (
	"net/http"
	"time"

	"github.com/evyataryagoni/issflyover/internal/client"
	"github.com/evyataryagoni/issflyover/internal/config"
	"github.com/evyataryagoni/issflyover/internal/handler"
	"github.com/evyataryagoni/issflyover/internal/logger"
	"github.com/evyataryagoni/issflyover/internal/metrics"
	"github.com/evyataryagoni/issflyover/internal/router"
	"github.com/evyataryagoni/issflyover/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	appConfig := config.Load()

	// Initialize components
	appLogger := setupLogger(appConfig)
	metricsCollector := setupMetrics(appLogger)

	// Build application layers
	apiClient := client.NewClient(client.Config{
		IPEchoURL:  appConfig.IPEchoURL,
		GeoIPURL:   appConfig.GeoIPURL,
		ISSPassURL: appConfig.ISSPassURL,
		Timeout:    time.Duration(appConfig.RequestTimeout) * time.Second,
	}, metricsCollector, appLogger)
	passService := service.NewPassService(apiClient, metricsCollector, appLogger)

	passHandler := handler.NewPassHandler(apiClient, passService)
	appRouter := router.SetupRouter(passHandler, metricsCollector, prometheus.DefaultGatherer, appLogger)

	// Start server
	startServer(appConfig, appRouter, appLogger)
}

// setupLogger initializes the structured logger and validates the config
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().Msg("Starting ISS flyover server...")

	if err := appConfig.Validate(); err != nil {
		appLogger.Fatal().Err(err).Msg("Configuration rejected")
	}

	appLogger.Info().
		Str("port", appConfig.Port).
		Str("ip_echo_url", appConfig.IPEchoURL).
		Str("geoip_url", appConfig.GeoIPURL).
		Str("iss_pass_url", appConfig.ISSPassURL).
		Int("request_timeout", appConfig.RequestTimeout).
		Msg("Configuration loaded")

	return appLogger
}

// setupMetrics registers the Prometheus collectors on the default registry
func setupMetrics(log *logger.Logger) *metrics.Metrics {
	metricsCollector := metrics.New(prometheus.DefaultRegisterer)
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// startServer starts the HTTP server and blocks
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	serverAddr := ":" + appConfig.Port

	log.Info().
		Str("port", appConfig.Port).
		Str("api_endpoint", "http://localhost:"+appConfig.Port+"/v1/next-passes").
		Str("health_check", "http://localhost:"+appConfig.Port+"/health").
		Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
		Msg("Server is running")

	log.Fatal().Err(http.ListenAndServe(serverAddr, appRouter)).Msg("Server failed")
}
