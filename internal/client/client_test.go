package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/evyataryagoni/issflyover/internal/logger"
	"github.com/evyataryagoni/issflyover/internal/metrics"
	"github.com/evyataryagoni/issflyover/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points every endpoint at the given server
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return NewClient(Config{
		IPEchoURL:  srv.URL + "/?format=json",
		GeoIPURL:   srv.URL + "/json/",
		ISSPassURL: srv.URL + "/iss-pass.json",
		HTTPClient: srv.Client(),
	}, nil, logger.NewNop())
}

// respond returns a handler that writes a fixed status and body
func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestFetchMyIP_Success(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"ip": "1.2.3.4"}`))
	defer srv.Close()

	ip, err := newTestClient(t, srv).FetchMyIP(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", ip)
}

func TestFetchMyIP_SendsFormatQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"ip": "1.2.3.4"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).FetchMyIP(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "format=json", gotQuery)
}

func TestFetchMyIP_Non200(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusInternalServerError, "upstream down"))
	defer srv.Close()

	ip, err := newTestClient(t, srv).FetchMyIP(context.Background())

	require.Error(t, err)
	assert.Empty(t, ip)
	assert.Equal(t, "Status Code 500 when fetching IP. Response: upstream down", err.Error())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Body)
}

func TestFetchMyIP_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"ip": `))
	defer srv.Close()

	_, err := newTestClient(t, srv).FetchMyIP(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode IP response")
}

func TestFetchMyIP_MissingField(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"address": "1.2.3.4"}`))
	defer srv.Close()

	_, err := newTestClient(t, srv).FetchMyIP(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestFetchMyIP_TransportError(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"ip": "1.2.3.4"}`))
	c := newTestClient(t, srv)
	srv.Close()

	_, err := c.FetchMyIP(context.Background())

	require.Error(t, err)
	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr), "expected the transport's *url.Error, got %T", err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestFetchCoordsByIP_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"ip":"1.2.3.4","country_code":"CA","city":"Vancouver","latitude":49.2767,"longitude":-123.13}`))
	}))
	defer srv.Close()

	coords, err := newTestClient(t, srv).FetchCoordsByIP(context.Background(), "1.2.3.4")

	require.NoError(t, err)
	assert.Equal(t, "/json/1.2.3.4", gotPath)
	assert.Equal(t, "49.2767", coords.Latitude.String())
	assert.Equal(t, "-123.13", coords.Longitude.String())
}

func TestFetchCoordsByIP_StringCoordinates(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"latitude":"49.27670","longitude":"-123.13000"}`))
	defer srv.Close()

	coords, err := newTestClient(t, srv).FetchCoordsByIP(context.Background(), "1.2.3.4")

	require.NoError(t, err)
	assert.Equal(t, "49.27670", coords.Latitude.String())
	assert.Equal(t, "-123.13000", coords.Longitude.String())
}

func TestFetchCoordsByIP_NotFound(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusNotFound, "404 page not found"))
	defer srv.Close()

	coords, err := newTestClient(t, srv).FetchCoordsByIP(context.Background(), "1.2.3.4")

	require.Error(t, err)
	assert.Nil(t, coords)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "when fetching geolocation")
}

func TestFetchCoordsByIP_MissingLongitude(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"latitude": 49.2767}`))
	defer srv.Close()

	_, err := newTestClient(t, srv).FetchCoordsByIP(context.Background(), "1.2.3.4")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "longitude")
}

func TestFetchISSFlyOverTimes_Success(t *testing.T) {
	var gotLat, gotLon string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLat = r.URL.Query().Get("lat")
		gotLon = r.URL.Query().Get("lon")
		w.Write([]byte(`{"message":"success","response":[{"risetime": 1000, "duration": 300}]}`))
	}))
	defer srv.Close()

	coords := &models.Coordinates{Latitude: "49.27670", Longitude: "-123.13000"}
	passes, err := newTestClient(t, srv).FetchISSFlyOverTimes(context.Background(), coords)

	require.NoError(t, err)
	require.Len(t, passes, 1)
	assert.Equal(t, int64(1000), passes[0].RiseTime)
	assert.Equal(t, int64(300), passes[0].Duration)
	assert.Equal(t, "49.27670", gotLat)
	assert.Equal(t, "-123.13000", gotLon)
}

func TestFetchISSFlyOverTimes_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"response": []}`))
	defer srv.Close()

	passes, err := newTestClient(t, srv).FetchISSFlyOverTimes(context.Background(),
		&models.Coordinates{Latitude: "0", Longitude: "0"})

	require.NoError(t, err)
	assert.Empty(t, passes)
}

func TestFetchISSFlyOverTimes_Non200(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusBadRequest, `{"message":"failure","reason":"Latitude must be number between -90.0 and 90.0"}`))
	defer srv.Close()

	_, err := newTestClient(t, srv).FetchISSFlyOverTimes(context.Background(),
		&models.Coordinates{Latitude: "120", Longitude: "0"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status Code 400 when fetching ISS pass times")
	assert.Contains(t, err.Error(), "Latitude must be number")
}

func TestFetchISSFlyOverTimes_MissingResponse(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"message":"success"}`))
	defer srv.Close()

	_, err := newTestClient(t, srv).FetchISSFlyOverTimes(context.Background(),
		&models.Coordinates{Latitude: "0", Longitude: "0"})

	assert.ErrorIs(t, err, ErrMissingField)
}

func TestFetchISSFlyOverTimes_NilCoords(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"response": []}`))
	defer srv.Close()

	_, err := newTestClient(t, srv).FetchISSFlyOverTimes(context.Background(), nil)

	assert.ErrorIs(t, err, ErrMissingField)
}

func TestClient_RecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"ip": "1.2.3.4"}`))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c := NewClient(Config{
		IPEchoURL:  srv.URL,
		HTTPClient: srv.Client(),
	}, metrics.New(reg), logger.NewNop())

	_, err := c.FetchMyIP(context.Background())
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	var successes float64
	for _, family := range families {
		if family.GetName() != "upstream_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			successes += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), successes)
}
