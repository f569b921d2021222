package service

import (
	"fmt"

	"github.com/evyataryagoni/travelgeo/internal/layout"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/metrics"
	"github.com/evyataryagoni/travelgeo/internal/models"
)

// GalleryService computes justified gallery layouts
type GalleryService struct {
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewGalleryService creates a gallery service; m and log may be nil
func NewGalleryService(m *metrics.Metrics, log *logger.Logger) *GalleryService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &GalleryService{
		metrics: m,
		logger:  log.WithComponent("GalleryService"),
	}
}

// Layout validates req and packs its images into rows
func (s *GalleryService) Layout(req *models.LayoutRequest) (layout.Result, error) {
	if req == nil {
		s.count("invalid")
		return layout.Result{}, fmt.Errorf("%w: empty request", ErrInvalidLayout)
	}
	if len(req.Images) > MaxLayoutImages {
		s.count("invalid")
		return layout.Result{}, fmt.Errorf("%w: at most %d images", ErrInvalidLayout, MaxLayoutImages)
	}
	if err := validate.Struct(req); err != nil {
		s.logger.Warn().Err(err).Msg("Invalid layout request")
		s.count("invalid")
		return layout.Result{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	images := make([]layout.Image, len(req.Images))
	for i, img := range req.Images {
		images[i] = layout.Image{Width: img.Width, Height: img.Height}
	}

	res, err := layout.Layout(images, layout.Options{
		ContainerWidth: req.ContainerWidth,
		TargetHeight:   req.TargetHeight,
		Padding:        req.Padding,
		ByRow:          req.ByRow,
	})
	if err != nil {
		s.count("invalid")
		return layout.Result{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	rows := len(res.Rows)
	if !req.ByRow {
		rows = 0
		for _, img := range res.Images {
			if img.IsLastInRow {
				rows++
			}
		}
	}

	s.logger.Debug().Int("images", len(images)).Int("rows", rows).Msg("Layout computed")
	if s.metrics != nil {
		s.metrics.LayoutRequestsTotal.WithLabelValues("success").Inc()
		s.metrics.LayoutRows.Observe(float64(rows))
	}

	return res, nil
}

func (s *GalleryService) count(result string) {
	if s.metrics != nil {
		s.metrics.LayoutRequestsTotal.WithLabelValues(result).Inc()
	}
}
