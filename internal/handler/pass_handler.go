package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evyataryagoni/issflyover/internal/client"
	"github.com/evyataryagoni/issflyover/internal/models"
	"github.com/evyataryagoni/issflyover/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// PassHandler exposes the upstream lookups over HTTP
// This is the handler layer - it deals with HTTP concerns only
//
// Responsibilities:
//   - Parse path and query parameters
//   - Call the client or the pass service
//   - Format HTTP responses (JSON)
//   - Map upstream failures to 502
type PassHandler struct {
	fetcher   client.Fetcher
	service   *service.PassService
	validator *validator.Validate
}

// NewPassHandler creates a new handler
func NewPassHandler(fetcher client.Fetcher, service *service.PassService) *PassHandler {
	return &PassHandler{
		fetcher:   fetcher,
		service:   service,
		validator: validator.New(),
	}
}

// MyIP handles GET /v1/my-ip
// Returns the public IP address of this server
func (h *PassHandler) MyIP(w http.ResponseWriter, r *http.Request) {
	ip, err := h.fetcher.FetchMyIP(r.Context())
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.IPResponse{IP: ip})
}

// Coordinates handles GET /v1/coordinates/{ip}
// The IP is forwarded to the geo-IP service without validation
func (h *PassHandler) Coordinates(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")

	coords, err := h.fetcher.FetchCoordsByIP(r.Context(), ip)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, coords)
}

// ISSPasses handles GET /v1/iss-passes?lat=<lat>&lon=<lon>
func (h *PassHandler) ISSPasses(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")

	// "latitude" and "longitude" are built-in validator tags that check the numeric range
	if err := h.validator.Var(lat, "required,latitude"); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid or missing 'lat' query parameter")
		return
	}
	if err := h.validator.Var(lon, "required,longitude"); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid or missing 'lon' query parameter")
		return
	}

	coords := &models.Coordinates{Latitude: json.Number(lat), Longitude: json.Number(lon)}
	passes, err := h.fetcher.FetchISSFlyOverTimes(r.Context(), coords)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, passes)
}

// NextPasses handles GET /v1/next-passes
// Runs the full IP -> coordinates -> passes chain for this server's location
func (h *PassHandler) NextPasses(w http.ResponseWriter, r *http.Request) {
	passes, err := h.service.NextISSTimesForMyLocation(r.Context())
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, passes)
}

// respondUpstreamError reports a failed upstream call as 502 Bad Gateway
// The message is the upstream error verbatim
func (h *PassHandler) respondUpstreamError(w http.ResponseWriter, err error) {
	h.respondError(w, http.StatusBadGateway, err.Error())
}

// respondJSON writes a JSON response with the given status code
func (h *PassHandler) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent, nothing more we can do
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondError writes an error response with consistent formatting
func (h *PassHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, models.ErrorResponse{Error: message})
}
