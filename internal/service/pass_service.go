package service

import (
	"context"

	"github.com/evyataryagoni/issflyover/internal/client"
	"github.com/evyataryagoni/issflyover/internal/logger"
	"github.com/evyataryagoni/issflyover/internal/metrics"
	"github.com/evyataryagoni/issflyover/internal/models"
)

// PassService chains the three upstream lookups into one operation
// This is the service layer - it sits between handlers/CLI and the API client
//
// Responsibilities:
//   - Run IP -> coordinates -> pass times in order
//   - Stop at the first failure and return it untouched
//   - Track results
type PassService struct {
	fetcher client.Fetcher
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewPassService creates a new pass service
//
// Parameters:
//   - fetcher: any implementation of the Fetcher interface
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewPassService(fetcher client.Fetcher, m *metrics.Metrics, log *logger.Logger) *PassService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &PassService{
		fetcher: fetcher,
		metrics: m,
		logger:  log.WithComponent("PassService"),
	}
}

// NextISSTimesForMyLocation returns the upcoming ISS passes over the caller's location
//
// Flow:
//  1. Fetch the public IP
//  2. Resolve it to coordinates
//  3. Fetch pass times for those coordinates
//
// Only one request is in flight at a time. The first error is returned as is
// and no partial result is produced. On success the pass times are returned
// exactly as the pass-time lookup produced them.
func (s *PassService) NextISSTimesForMyLocation(ctx context.Context) ([]models.PassTime, error) {
	ip, err := s.fetcher.FetchMyIP(ctx)
	if err != nil {
		return nil, s.fail("ip", err)
	}

	coords, err := s.fetcher.FetchCoordsByIP(ctx, ip)
	if err != nil {
		return nil, s.fail("geolocation", err)
	}

	passes, err := s.fetcher.FetchISSFlyOverTimes(ctx, coords)
	if err != nil {
		return nil, s.fail("pass_times", err)
	}

	s.logger.Info().
		Str("ip", ip).
		Str("latitude", coords.Latitude.String()).
		Str("longitude", coords.Longitude.String()).
		Int("passes", len(passes)).
		Msg("ISS pass lookup successful")
	if s.metrics != nil {
		s.metrics.PassLookupsTotal.WithLabelValues("success").Inc()
	}

	return passes, nil
}

// fail logs and counts a failed stage, returning err unchanged
func (s *PassService) fail(stage string, err error) error {
	s.logger.Error().Err(err).Str("stage", stage).Msg("ISS pass lookup failed")
	if s.metrics != nil {
		s.metrics.PassLookupsTotal.WithLabelValues(stage + "_error").Inc()
	}
	return err
}
