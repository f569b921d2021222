package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// BoundingBoxModel is the GORM model for the geo_bounding_boxes table.
// Position keeps the dataset order, which decides first-match resolution.
type BoundingBoxModel struct {
	Code     string  `gorm:"column:code;primaryKey;size:16"`
	Position int     `gorm:"column:position;index"`
	MinLon   float64 `gorm:"column:min_lon"`
	MinLat   float64 `gorm:"column:min_lat"`
	MaxLon   float64 `gorm:"column:max_lon"`
	MaxLat   float64 `gorm:"column:max_lat"`
}

// TableName overrides the pluralized default
func (BoundingBoxModel) TableName() string {
	return "geo_bounding_boxes"
}

// CountryFeatureModel is the GORM model for the geo_country_features table;
// the geometry is stored as a GeoJSON Feature document
type CountryFeatureModel struct {
	Code    string `gorm:"column:code;primaryKey;size:16"`
	GeoJSON string `gorm:"column:geojson;type:longtext"`
}

// TableName overrides the pluralized default
func (CountryFeatureModel) TableName() string {
	return "geo_country_features"
}

// MySQLSource implements BoxSource and FeatureSource on MySQL with GORM
type MySQLSource struct {
	db *gorm.DB
}

// NewMySQLSource connects to MySQL
//
// dsn format: user:password@tcp(host:port)/dbname?parseTime=true
func NewMySQLSource(dsn string) (*MySQLSource, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL with GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	return &MySQLSource{db: db}, nil
}

// LoadBoxes implements BoxSource
func (s *MySQLSource) LoadBoxes(ctx context.Context) ([]models.BoundingBoxEntry, error) {
	var rows []BoundingBoxModel

	// SELECT * FROM geo_bounding_boxes ORDER BY position
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query bounding boxes: %w", err)
	}

	entries := make([]models.BoundingBoxEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.BoundingBoxEntry{
			Code: r.Code,
			Bounds: models.Bounds{
				MinLon: r.MinLon,
				MinLat: r.MinLat,
				MaxLon: r.MaxLon,
				MaxLat: r.MaxLat,
			},
		})
	}

	return sanitizeBoxes(entries), nil
}

// LoadFeature implements FeatureSource
func (s *MySQLSource) LoadFeature(ctx context.Context, code string) (*geometry.CountryFeature, error) {
	var row CountryFeatureModel

	result := s.db.WithContext(ctx).Where("code = ?", code).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound(code)
		}
		return nil, fmt.Errorf("database query failed: %w", result.Error)
	}

	return geometry.DecodeFeature(code, []byte(row.GeoJSON))
}

// Migrate creates or updates both tables
func (s *MySQLSource) Migrate() error {
	return s.db.AutoMigrate(&BoundingBoxModel{}, &CountryFeatureModel{})
}

// Import upserts a bounding-box list (positions follow slice order) and the
// given features in one transaction
func (s *MySQLSource) Import(ctx context.Context, boxes []models.BoundingBoxEntry, features []*geometry.CountryFeature) error {
	boxRows := make([]BoundingBoxModel, 0, len(boxes))
	for i, b := range boxes {
		boxRows = append(boxRows, BoundingBoxModel{
			Code:     b.Code,
			Position: i,
			MinLon:   b.Bounds.MinLon,
			MinLat:   b.Bounds.MinLat,
			MaxLon:   b.Bounds.MaxLon,
			MaxLat:   b.Bounds.MaxLat,
		})
	}

	featureRows := make([]CountryFeatureModel, 0, len(features))
	for _, f := range features {
		data, err := geometry.ToGeoJSON(f)
		if err != nil {
			return err
		}
		featureRows = append(featureRows, CountryFeatureModel{Code: f.Code, GeoJSON: string(data)})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(boxRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&boxRows).Error; err != nil {
				return fmt.Errorf("failed to store bounding boxes: %w", err)
			}
		}
		if len(featureRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&featureRows).Error; err != nil {
				return fmt.Errorf("failed to store country features: %w", err)
			}
		}
		return nil
	})
}

// Close closes the database connection
func (s *MySQLSource) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
