package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/evyataryagoni/travelgeo/internal/config"
	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/source"
)

// This tool copies the geo dataset from GEO_DATA_DIR into MySQL
// Usage: MYSQL_DSN=... go run ./cmd/load-mysql
func main() {
	fmt.Println("🔄 Loading geo data into MySQL...")

	appConfig := config.Load()
	if appConfig.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN is not set")
	}

	files, err := source.NewFileSource(appConfig.GeoDataDir)
	if err != nil {
		log.Fatalf("Failed to open dataset: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fmt.Printf("📁 Reading %s...\n", appConfig.GeoDataDir)
	boxes, err := files.LoadBoxes(ctx)
	if err != nil {
		log.Fatalf("Failed to read bounding boxes: %v", err)
	}

	codes, err := files.Codes()
	if err != nil {
		log.Fatalf("Failed to list country files: %v", err)
	}

	features := make([]*geometry.CountryFeature, 0, len(codes))
	for _, code := range codes {
		f, err := files.LoadFeature(ctx, code)
		if err != nil {
			fmt.Printf("⚠️  Skipping %s: %v\n", code, err)
			continue
		}
		features = append(features, f)
	}

	fmt.Println("📡 Connecting to MySQL...")
	db, err := source.NewMySQLSource(appConfig.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	if err := db.Import(ctx, boxes, features); err != nil {
		log.Fatalf("Failed to import data: %v", err)
	}

	fmt.Printf("✅ Imported %d bounding boxes and %d countries\n", len(boxes), len(features))
	fmt.Println("\n💡 You can now start the server with DATASOURCE_TYPE=mysql")
}
