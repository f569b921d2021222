package handler

import (
	"net/http"

	"github.com/evyataryagoni/travelgeo/internal/models"
)

// AlertSource yields the current transient message, if any.
// *notify.AlertBoard implements it.
type AlertSource interface {
	Current() (string, bool)
}

// AlertHandler exposes data-load failures to the frontend
type AlertHandler struct {
	alerts AlertSource
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alerts AlertSource) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// Current handles GET /v1/alerts
// @Summary      Current alert
// @Description  Latest data-load failure message while it is still visible; 204 when there is none
// @Tags         Alerts
// @Produce      json
// @Success      200  {object}  models.AlertResponse
// @Success      204  "No alert"
// @Router       /v1/alerts [get]
func (h *AlertHandler) Current(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.alerts.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, models.AlertResponse{Message: msg})
}
