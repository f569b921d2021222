package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evyataryagoni/travelgeo/internal/layout"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/service"
)

// TestLayoutHandler_Layout tests both output shapes and validation
func TestLayoutHandler_Layout(t *testing.T) {
	images := `[{"width":300,"height":200},{"width":300,"height":200},{"width":300,"height":200},{"width":300,"height":200}]`

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedRows   int
		expectedImages int
	}{
		{"flat", `{"images":` + images + `,"container_width":600,"target_height":200}`, http.StatusOK, 0, 4},
		{"by row", `{"images":` + images + `,"container_width":600,"target_height":200,"by_row":true}`, http.StatusOK, 2, 0},
		{"missing container width", `{"images":` + images + `,"target_height":200}`, http.StatusBadRequest, 0, 0},
		{"negative padding", `{"images":` + images + `,"container_width":600,"target_height":200,"padding":-2}`, http.StatusBadRequest, 0, 0},
		{"malformed", `{"images":`, http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewLayoutHandler(service.NewGalleryService(nil, logger.Nop()))

			req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Layout(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var res layout.Result
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(res.Rows) != tt.expectedRows {
				t.Errorf("expected %d rows, got %d", tt.expectedRows, len(res.Rows))
			}
			if len(res.Images) != tt.expectedImages {
				t.Errorf("expected %d images, got %d", tt.expectedImages, len(res.Images))
			}
		})
	}
}
