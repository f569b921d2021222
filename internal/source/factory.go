package source

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Config selects and configures the dataset backend
type Config struct {
	Type    string // "file", "http" or "mysql"
	BaseURL string // http
	DataDir string // file
	DSN     string // mysql

	// Cache is "none" or "redis"; "redis" wraps the feature source in a RedisFeatureCache
	Cache string
	Redis *redis.Client

	// HTTPClient is used by the http backend; nil means http.DefaultClient
	HTTPClient *http.Client
}

// Sources is the pair of datasets the resolver reads from
type Sources struct {
	Boxes    BoxSource
	Features FeatureSource

	closers []func() error
}

// NewSources creates the backend named by cfg.Type (factory pattern)
func NewSources(cfg Config, log *logger.Logger) (*Sources, error) {
	if log == nil {
		log = logger.NewDefault()
	}

	s := &Sources{}

	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "file", "":
		fs, err := NewFileSource(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		s.Boxes, s.Features = fs, fs

	case "http":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("http datasource requires a base URL")
		}
		hs := NewHTTPSource(cfg.BaseURL, cfg.HTTPClient)
		s.Boxes, s.Features = hs, hs

	case "mysql":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("mysql datasource requires a DSN")
		}
		ms, err := NewMySQLSource(cfg.DSN)
		if err != nil {
			return nil, err
		}
		s.Boxes, s.Features = ms, ms
		s.closers = append(s.closers, ms.Close)

	default:
		return nil, fmt.Errorf("unknown datasource type: %s (supported: 'file', 'http', 'mysql')", cfg.Type)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Cache)) {
	case "none", "":
	case "redis":
		if cfg.Redis == nil {
			s.Close()
			return nil, fmt.Errorf("redis feature cache requires a Redis client")
		}
		s.Features = NewRedisFeatureCache(cfg.Redis, s.Features, log)
	default:
		s.Close()
		return nil, fmt.Errorf("unknown geo cache: %s (supported: 'none', 'redis')", cfg.Cache)
	}

	return s, nil
}

// Close releases backend connections
func (s *Sources) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
