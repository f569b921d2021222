package v1

import (
	"github.com/evyataryagoni/travelgeo/internal/handler"
	"github.com/go-chi/chi/v5"
)

// Handlers groups the handlers served under /v1
type Handlers struct {
	Country *handler.CountryHandler
	Layout  *handler.LayoutHandler
	Alerts  *handler.AlertHandler
}

// SetupRoutes configures all v1 API routes
func SetupRoutes(h Handlers) chi.Router {
	r := chi.NewRouter()

	// Coordinate to country
	r.Get("/find-country", h.Country.FindCountry)
	r.Post("/find-countries", h.Country.FindCountries)
	r.Get("/countries/{code}", h.Country.CountryFeature)
	r.Get("/resolved", h.Country.Resolved)

	// Gallery
	r.Post("/layout", h.Layout.Layout)

	// Data-load failures for the frontend toast
	r.Get("/alerts", h.Alerts.Current)

	return r
}
