package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/models"
	"github.com/evyataryagoni/travelgeo/internal/service"
	"github.com/go-chi/chi/v5"
)

// CountryHandler handles HTTP requests for coordinate lookups
// This is the handler layer - it deals with HTTP concerns only
//
// Responsibilities:
//   - Parse HTTP requests (query parameters, JSON bodies, path params)
//   - Call service methods
//   - Format HTTP responses (JSON, GeoJSON)
//   - Map service errors to status codes
type CountryHandler struct {
	service *service.CountryService
}

// NewCountryHandler creates a new country handler with the given service
func NewCountryHandler(service *service.CountryService) *CountryHandler {
	return &CountryHandler{
		service: service,
	}
}

// FindCountry handles GET /v1/find-country?lon=<lon>&lat=<lat>
// @Summary      Find country by coordinate
// @Description  Resolve a WGS84 longitude/latitude pair to the ISO 3166-1 alpha-2 code of the country containing it
// @Tags         Countries
// @Accept       json
// @Produce      json
// @Param        lon  query      number  true  "Longitude in [-180,180]"  example(18.07)
// @Param        lat  query      number  true  "Latitude in [-90,90]"     example(59.33)
// @Success      200  {object}   models.CountryResult
// @Failure      400  {object}   models.ErrorResponse  "Invalid coordinate"
// @Failure      404  {object}   models.ErrorResponse  "No country at coordinate"
// @Failure      429  {object}   models.ErrorResponse  "Rate limit exceeded"
// @Router       /v1/find-country [get]
func (h *CountryHandler) FindCountry(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lonStr, latStr := query.Get("lon"), query.Get("lat")

	if lonStr == "" || latStr == "" {
		respondError(w, http.StatusBadRequest, "Missing 'lon' or 'lat' query parameter")
		return
	}

	lon, errLon := strconv.ParseFloat(lonStr, 64)
	lat, errLat := strconv.ParseFloat(latStr, 64)
	if errLon != nil || errLat != nil {
		respondError(w, http.StatusBadRequest, "'lon' and 'lat' must be numbers")
		return
	}

	result, err := h.service.FindCountry(r.Context(), lon, lat)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCoordinate):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCountryNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// FindCountries handles POST /v1/find-countries
// @Summary      Find countries for a batch of coordinates
// @Description  Resolve up to 500 coordinates; results keep the request order
// @Tags         Countries
// @Accept       json
// @Produce      json
// @Param        request  body      models.BatchCountryRequest  true  "Coordinates"
// @Success      200      {object}  models.BatchCountryResponse
// @Failure      400      {object}  models.ErrorResponse  "Invalid body or coordinate"
// @Failure      429      {object}  models.ErrorResponse  "Rate limit exceeded"
// @Router       /v1/find-countries [post]
func (h *CountryHandler) FindCountries(w http.ResponseWriter, r *http.Request) {
	var req models.BatchCountryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	resp, err := h.service.FindCountries(r.Context(), req.Points)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBatch) || errors.Is(err, service.ErrInvalidCoordinate) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// CountryFeature handles GET /v1/countries/{code}
// @Summary      Country border geometry
// @Description  Returns the country's border as a GeoJSON Feature (Polygon or MultiPolygon)
// @Tags         Countries
// @Produce      json
// @Param        code  path      string  true  "ISO 3166-1 alpha-2 code"  example(SE)
// @Success      200   {object}  object  "GeoJSON Feature"
// @Failure      400   {object}  models.ErrorResponse  "Invalid code"
// @Failure      404   {object}  models.ErrorResponse  "Unknown country"
// @Failure      500   {object}  models.ErrorResponse  "Country data could not be loaded"
// @Router       /v1/countries/{code} [get]
func (h *CountryHandler) CountryFeature(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	f, err := h.service.CountryFeature(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCountryNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	data, err := geometry.ToGeoJSON(f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Resolved handles GET /v1/resolved
// @Summary      Resolved coordinates
// @Description  Every coordinate resolved to a country so far, keyed by "lon,lat". Coordinates with no country are not listed.
// @Tags         Countries
// @Produce      json
// @Success      200  {object}  models.ResolvedResponse
// @Failure      429  {object}  models.ErrorResponse  "Rate limit exceeded"
// @Router       /v1/resolved [get]
func (h *CountryHandler) Resolved(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Resolved())
}
