package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/evyataryagoni/issflyover/internal/client"
	"github.com/evyataryagoni/issflyover/internal/logger"
	"github.com/evyataryagoni/issflyover/internal/service"
)

func TestRun_AllStepsSucceed(t *testing.T) {
	fetcher := client.NewMockFetcher()
	var out bytes.Buffer

	run(context.Background(), &out, fetcher, service.NewPassService(fetcher, nil, logger.NewNop()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out.String())
	}
	if lines[0] != "It worked! Returned IP: 162.245.144.188" {
		t.Errorf("unexpected IP line: %s", lines[0])
	}
	if lines[1] != "It worked! Returned location: {49.27670 -123.13000}" {
		t.Errorf("unexpected location line: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "It worked! Returned flyover times:") {
		t.Errorf("unexpected flyover line: %s", lines[2])
	}
	if !strings.HasPrefix(lines[3], "Next pass at ") || !strings.HasSuffix(lines[3], " for 465 seconds!") {
		t.Errorf("unexpected pass line: %s", lines[3])
	}

	// The example coordinates are used for the standalone lookup
	if fetcher.FetchISSFlyOverTimesCalls[0] != exampleCoords {
		t.Error("expected the first pass lookup to use the example coordinates")
	}
}

func TestRun_IPFailure(t *testing.T) {
	fetcher := client.NewMockFetcher()
	fetcher.FetchMyIPError = errors.New("dial tcp: lookup api.ipify.org: no such host")
	var out bytes.Buffer

	run(context.Background(), &out, fetcher, service.NewPassService(fetcher, nil, logger.NewNop()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out.String())
	}
	if lines[0] != "It didn't work! dial tcp: lookup api.ipify.org: no such host" {
		t.Errorf("unexpected first line: %s", lines[0])
	}
	if lines[2] != lines[0] {
		t.Errorf("expected the composed lookup to report the same error, got: %s", lines[2])
	}

	// The example lookup still runs, the chained one never reaches geolocation
	if len(fetcher.FetchCoordsByIPCalls) != 0 {
		t.Errorf("expected 0 geolocation calls, got %d", len(fetcher.FetchCoordsByIPCalls))
	}
	if len(fetcher.FetchISSFlyOverTimesCalls) != 1 {
		t.Errorf("expected only the example pass lookup, got %d", len(fetcher.FetchISSFlyOverTimesCalls))
	}
}
