package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Errors returned by the service layer; handlers map them to status codes
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidBatch      = errors.New("invalid batch")
	ErrInvalidCode       = errors.New("invalid country code")
	ErrCountryNotFound   = errors.New("country not found")
	ErrInvalidLayout     = errors.New("invalid layout request")
)

// MaxBatchPoints caps the number of coordinates in one batch request
const MaxBatchPoints = 500

// MaxLayoutImages caps the number of images in one layout request
const MaxLayoutImages = 1000

// validate is shared by all services; validator.Validate caches struct
// metadata and is safe for concurrent use
var validate = validator.New()
