package handler

import (
	"errors"
	"net/http"

	"github.com/evyataryagoni/travelgeo/internal/models"
	"github.com/evyataryagoni/travelgeo/internal/service"
)

// LayoutHandler serves justified gallery layouts
type LayoutHandler struct {
	service *service.GalleryService
}

// NewLayoutHandler creates a new layout handler with the given service
func NewLayoutHandler(service *service.GalleryService) *LayoutHandler {
	return &LayoutHandler{service: service}
}

// Layout handles POST /v1/layout
// @Summary      Justified gallery layout
// @Description  Splits ordered images into rows that fill the container width at close to the target height
// @Tags         Gallery
// @Accept       json
// @Produce      json
// @Param        request  body      models.LayoutRequest  true  "Images and container"
// @Success      200      {object}  layout.Result
// @Failure      400      {object}  models.ErrorResponse  "Invalid request"
// @Failure      429      {object}  models.ErrorResponse  "Rate limit exceeded"
// @Router       /v1/layout [post]
func (h *LayoutHandler) Layout(w http.ResponseWriter, r *http.Request) {
	var req models.LayoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	res, err := h.service.Layout(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLayout) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, res)
}
