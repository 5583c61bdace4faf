package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// generateSampleCatalog creates sample catalog feeds for local development.
// Feed 1: shirts and trousers
// Feed 2: jackets, plus a price update for SHIRT-002
// Load both with CATALOG_SEED_FILES=data/catalog/catalog1.jsonl.gz,data/catalog/catalog2.jsonl.gz
func main() {
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	feeds := map[string][]model.ProductRequest{
		"catalog1.jsonl.gz": {
			{
				ID:         "SHIRT-001",
				Name:       "Linen Shirt",
				Price:      decimal.NewFromInt(899),
				Category:   "Shirts",
				Brand:      "Acme",
				Stock:      40,
				Attributes: model.ProductAttributes{Color: "white", Size: "M", Fit: "Regular", Sleeve: "Full", Material: "Linen"},
			},
			{
				ID:         "SHIRT-002",
				Name:       "Oxford Shirt",
				Price:      decimal.NewFromInt(1299),
				Category:   "Shirts",
				Brand:      "Northwind",
				Stock:      25,
				Attributes: model.ProductAttributes{Color: "blue", Size: "L", Pattern: "Solid", Neck: "Button-down"},
			},
			{
				ID:         "TROUSER-001",
				Name:       "Slim Chinos",
				Price:      decimal.NewFromInt(1599),
				Category:   "Trousers",
				Brand:      "Acme",
				Stock:      30,
				Attributes: model.ProductAttributes{Color: "beige", Fit: "Slim", Material: "Cotton"},
			},
			{
				ID:         "TEE-001",
				Name:       "Crew Tee",
				Price:      decimal.NewFromInt(399),
				Category:   "T-Shirts",
				Brand:      "Northwind",
				Stock:      120,
				Attributes: model.ProductAttributes{Color: "black", Sleeve: "Half", Occasion: "Casual"},
			},
		},
		"catalog2.jsonl.gz": {
			{
				ID:         "JACKET-001",
				Name:       "Denim Jacket",
				Price:      decimal.NewFromInt(2999),
				Category:   "Jackets",
				Brand:      "Northwind",
				Stock:      12,
				Attributes: model.ProductAttributes{Color: "blue", Material: "Denim", CareInstructions: "Machine wash cold"},
			},
			{
				ID:           "COAT-001",
				Name:         "Wool Overcoat",
				Price:        decimal.NewFromInt(7499),
				Category:     "Jackets",
				Brand:        "Acme",
				Stock:        5,
				Availability: "Pre-order",
				Attributes:   model.ProductAttributes{Color: "grey", Material: "Wool", Gender: "Unisex"},
			},
			{
				ID:         "SHIRT-002",
				Name:       "Oxford Shirt",
				Price:      decimal.NewFromInt(1199),
				Category:   "Shirts",
				Brand:      "Northwind",
				Stock:      25,
				Attributes: model.ProductAttributes{Color: "blue", Size: "L", Pattern: "Solid", Neck: "Button-down"},
			},
		},
	}

	for filename, products := range feeds {
		filePath := filepath.Join(dataDir, filename)

		if err := createFeedFile(filePath, products); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d products\n", filePath, len(products))
	}

	fmt.Println("\nSample catalog feeds created successfully!")
	fmt.Println("SHIRT-002 appears in both feeds; the later feed's price (1199) wins on import.")
}

func createFeedFile(filePath string, products []model.ProductRequest) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	for _, p := range products {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ID, err)
		}
	}

	return nil
}
