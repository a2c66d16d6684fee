package client

import (
	"context"

	"github.com/evyataryagoni/issflyover/internal/models"
)

// MockFetcher is a test double for the Fetcher interface
// It allows tests to control behavior and verify interactions
type MockFetcher struct {
	// Canned results
	IP     string
	Coords *models.Coordinates
	Passes []models.PassTime

	// Track method calls for verification in tests
	FetchMyIPCalls            int
	FetchCoordsByIPCalls      []string
	FetchISSFlyOverTimesCalls []*models.Coordinates

	// Control behavior for error scenarios
	FetchMyIPError            error
	FetchCoordsByIPError      error
	FetchISSFlyOverTimesError error
}

// NewMockFetcher creates a mock pre-populated with a Vancouver location
// and two passes
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		IP: "162.245.144.188",
		Coords: &models.Coordinates{
			Latitude:  "49.27670",
			Longitude: "-123.13000",
		},
		Passes: []models.PassTime{
			{RiseTime: 1700000000, Duration: 465},
			{RiseTime: 1700005800, Duration: 632},
		},
		FetchCoordsByIPCalls:      []string{},
		FetchISSFlyOverTimesCalls: []*models.Coordinates{},
	}
}

// FetchMyIP implements the Fetcher interface
func (m *MockFetcher) FetchMyIP(ctx context.Context) (string, error) {
	m.FetchMyIPCalls++

	if m.FetchMyIPError != nil {
		return "", m.FetchMyIPError
	}
	return m.IP, nil
}

// FetchCoordsByIP implements the Fetcher interface
func (m *MockFetcher) FetchCoordsByIP(ctx context.Context, ip string) (*models.Coordinates, error) {
	m.FetchCoordsByIPCalls = append(m.FetchCoordsByIPCalls, ip)

	if m.FetchCoordsByIPError != nil {
		return nil, m.FetchCoordsByIPError
	}
	return m.Coords, nil
}

// FetchISSFlyOverTimes implements the Fetcher interface
func (m *MockFetcher) FetchISSFlyOverTimes(ctx context.Context, coords *models.Coordinates) ([]models.PassTime, error) {
	m.FetchISSFlyOverTimesCalls = append(m.FetchISSFlyOverTimesCalls, coords)

	if m.FetchISSFlyOverTimesError != nil {
		return nil, m.FetchISSFlyOverTimesError
	}
	return m.Passes, nil
}
