package models

import (
	"encoding/json"
	"time"
)

// IPResponse is the body returned by the IP-echo service
// Example: {"ip": "162.245.144.188"}
type IPResponse struct {
	IP string `json:"ip"`
}

// Coordinates represents the location returned by the geo-IP service
// Field names mirror the upstream response verbatim.
//
// json.Number accepts both numeric (49.2767) and quoted ("49.27670") values,
// and keeps the textual form so it can be forwarded unchanged as a query parameter
type Coordinates struct {
	Latitude  json.Number `json:"latitude"`
	Longitude json.Number `json:"longitude"`
}

// PassTime is a single predicted ISS pass over a location
type PassTime struct {
	RiseTime int64 `json:"risetime"` // Unix timestamp (seconds) when the ISS rises
	Duration int64 `json:"duration"` // Visible duration in seconds
}

// Rise returns the rise time as a time.Time in UTC
func (p PassTime) Rise() time.Time {
	return time.Unix(p.RiseTime, 0).UTC()
}

// PassTimesResponse is the body returned by the ISS pass-prediction service
// Only the "response" array is used; other fields (message, request) are ignored
type PassTimesResponse struct {
	Response []PassTime `json:"response"`
}

// ErrorResponse is the standard error response format
// This is what we return when something goes wrong
type ErrorResponse struct {
	Error string `json:"error"` // Error message
}
