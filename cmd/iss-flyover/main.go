package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/evyataryagoni/issflyover/internal/client"
	"github.com/evyataryagoni/issflyover/internal/config"
	"github.com/evyataryagoni/issflyover/internal/logger"
	"github.com/evyataryagoni/issflyover/internal/models"
	"github.com/evyataryagoni/issflyover/internal/report"
	"github.com/evyataryagoni/issflyover/internal/service"
)

// exampleCoords is a fixed location in Vancouver used for the standalone pass lookup
var exampleCoords = &models.Coordinates{Latitude: "49.27670", Longitude: "-123.13000"}

// Runs the demonstration sequence: my IP and its location, passes over
// the example coordinates, then passes over my own location.
// Results go to stdout, logs to stderr.
func main() {
	appConfig := config.Load()

	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
		Output: os.Stderr,
	})

	if err := appConfig.Validate(); err != nil {
		appLogger.Fatal().Err(err).Msg("Configuration rejected")
	}

	apiClient := client.NewClient(client.Config{
		IPEchoURL:  appConfig.IPEchoURL,
		GeoIPURL:   appConfig.GeoIPURL,
		ISSPassURL: appConfig.ISSPassURL,
		Timeout:    time.Duration(appConfig.RequestTimeout) * time.Second,
	}, nil, appLogger)
	passService := service.NewPassService(apiClient, nil, appLogger)

	run(context.Background(), os.Stdout, apiClient, passService)
}

// run executes each demo step in order; a failed step prints a diagnostic
// and the next step still runs
func run(ctx context.Context, out io.Writer, fetcher client.Fetcher, passService *service.PassService) {
	showMyLocation(ctx, out, fetcher)
	showExampleFlyOvers(ctx, out, fetcher)
	showNextPasses(ctx, out, passService)
}

func showMyLocation(ctx context.Context, out io.Writer, fetcher client.Fetcher) {
	ip, err := fetcher.FetchMyIP(ctx)
	if err != nil {
		report.Failure(out, err)
		return
	}
	report.Success(out, "IP", ip)

	coords, err := fetcher.FetchCoordsByIP(ctx, ip)
	if err != nil {
		report.Failure(out, err)
		return
	}
	report.Success(out, "location", *coords)
}

func showExampleFlyOvers(ctx context.Context, out io.Writer, fetcher client.Fetcher) {
	passes, err := fetcher.FetchISSFlyOverTimes(ctx, exampleCoords)
	if err != nil {
		report.Failure(out, err)
		return
	}
	report.Success(out, "flyover times", passes)
}

func showNextPasses(ctx context.Context, out io.Writer, passService *service.PassService) {
	passes, err := passService.NextISSTimesForMyLocation(ctx)
	if err != nil {
		report.Failure(out, err)
		return
	}
	report.PrintPassTimes(out, passes, time.Local)
}
