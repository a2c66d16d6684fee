package v1

import (
	"github.com/evyataryagoni/issflyover/internal/handler"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all v1 API routes
// This function is called by the main router to setup /v1/* endpoints
func SetupRoutes(passHandler *handler.PassHandler) chi.Router {
	r := chi.NewRouter()

	// Leaf lookups
	r.Get("/my-ip", passHandler.MyIP)
	r.Get("/coordinates/{ip}", passHandler.Coordinates)
	r.Get("/iss-passes", passHandler.ISSPasses)

	// Composed lookup
	r.Get("/next-passes", passHandler.NextPasses)

	return r
}
