package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/evyataryagoni/issflyover/internal/logger"
	"github.com/evyataryagoni/issflyover/internal/metrics"
	"github.com/evyataryagoni/issflyover/internal/models"
)

// Service names used for logging and metric labels
const (
	ServiceIPEcho  = "ip_echo"
	ServiceGeoIP   = "geoip"
	ServiceISSPass = "iss_pass"
)

// ErrMissingField is returned when an upstream body parses but lacks a required field
var ErrMissingField = errors.New("missing field in upstream response")

// StatusError is returned when an upstream service answers with a non-200 status
type StatusError struct {
	What       string // what was being fetched ("IP", "geolocation", "ISS pass times")
	StatusCode int
	Body       string // raw response body
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Status Code %d when fetching %s. Response: %s", e.StatusCode, e.What, e.Body)
}

// Fetcher defines the three leaf lookups the pass service chains together
// Allows swapping the real HTTP client for a mock in tests
type Fetcher interface {
	// FetchMyIP returns the caller's public IP address
	FetchMyIP(ctx context.Context) (string, error)

	// FetchCoordsByIP resolves an IP address to coordinates
	FetchCoordsByIP(ctx context.Context, ip string) (*models.Coordinates, error)

	// FetchISSFlyOverTimes returns the upcoming ISS passes over coords
	FetchISSFlyOverTimes(ctx context.Context, coords *models.Coordinates) ([]models.PassTime, error)
}

// Config holds the upstream endpoints and transport settings
type Config struct {
	IPEchoURL  string
	GeoIPURL   string
	ISSPassURL string

	// Timeout for each request, 0 means no client-side timeout
	Timeout time.Duration

	// HTTPClient overrides the default client (tests, custom transports)
	HTTPClient *http.Client
}

// Client calls the public IP-echo, geo-IP and ISS pass-prediction APIs
// Every method issues exactly one GET and never retries
type Client struct {
	httpClient *http.Client
	ipEchoURL  string
	geoIPURL   string
	issPassURL string
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// NewClient creates a new upstream API client
//
// Parameters:
//   - cfg: endpoints and transport settings
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewClient(cfg Config, m *metrics.Metrics, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewDefault()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		ipEchoURL:  cfg.IPEchoURL,
		geoIPURL:   cfg.GeoIPURL,
		issPassURL: cfg.ISSPassURL,
		metrics:    m,
		logger:     log.WithComponent("Client"),
	}
}

// FetchMyIP makes a single request to retrieve the caller's public IP address
func (c *Client) FetchMyIP(ctx context.Context) (string, error) {
	var body models.IPResponse
	if err := c.getJSON(ctx, ServiceIPEcho, "IP", c.ipEchoURL, &body); err != nil {
		return "", err
	}

	if body.IP == "" {
		return "", fmt.Errorf("%w: ip", ErrMissingField)
	}

	return body.IP, nil
}

// FetchCoordsByIP looks up the latitude and longitude of an IP address
// The IP is passed through as given, the geo-IP service decides what it means
func (c *Client) FetchCoordsByIP(ctx context.Context, ip string) (*models.Coordinates, error) {
	endpoint, err := url.JoinPath(c.geoIPURL, ip)
	if err != nil {
		return nil, fmt.Errorf("failed to build geolocation URL: %w", err)
	}

	var coords models.Coordinates
	if err := c.getJSON(ctx, ServiceGeoIP, "geolocation", endpoint, &coords); err != nil {
		return nil, err
	}

	if coords.Latitude == "" {
		return nil, fmt.Errorf("%w: latitude", ErrMissingField)
	}
	if coords.Longitude == "" {
		return nil, fmt.Errorf("%w: longitude", ErrMissingField)
	}

	return &coords, nil
}

// FetchISSFlyOverTimes returns the upcoming ISS passes for the given coordinates
func (c *Client) FetchISSFlyOverTimes(ctx context.Context, coords *models.Coordinates) ([]models.PassTime, error) {
	if coords == nil {
		return nil, fmt.Errorf("%w: coordinates", ErrMissingField)
	}

	u, err := url.Parse(c.issPassURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build ISS pass URL: %w", err)
	}
	q := u.Query()
	q.Set("lat", coords.Latitude.String())
	q.Set("lon", coords.Longitude.String())
	u.RawQuery = q.Encode()

	var body models.PassTimesResponse
	if err := c.getJSON(ctx, ServiceISSPass, "ISS pass times", u.String(), &body); err != nil {
		return nil, err
	}

	if body.Response == nil {
		return nil, fmt.Errorf("%w: response", ErrMissingField)
	}

	return body.Response, nil
}

// getJSON issues one GET and decodes a 200 response into out
//
// Failure modes:
//   - transport error: returned exactly as http.Client gives it
//   - non-200 status: *StatusError carrying the code and raw body
//   - bad JSON: wrapped decode error
func (c *Client) getJSON(ctx context.Context, service, what, endpoint string, out any) error {
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.UpstreamRequestDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.record(service, "request_error")
		return fmt.Errorf("failed to build %s request: %w", what, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("service", service).Str("url", endpoint).Msg("Calling upstream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("service", service).Msg("Upstream transport error")
		c.record(service, "transport_error")
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(service, "transport_error")
		return err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("service", service).
			Int("status", resp.StatusCode).
			Msg("Upstream returned non-200 status")
		c.record(service, "status_error")
		return &StatusError{What: what, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.record(service, "decode_error")
		return fmt.Errorf("failed to decode %s response: %w", what, err)
	}

	c.record(service, "success")
	return nil
}

// record increments the upstream counter when metrics are enabled
func (c *Client) record(service, result string) {
	if c.metrics != nil {
		c.metrics.UpstreamRequestsTotal.WithLabelValues(service, result).Inc()
	}
}
