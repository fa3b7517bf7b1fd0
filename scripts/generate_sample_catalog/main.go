package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
)

// generate_sample_catalog writes a gzipped JSON-lines catalogue file that the
// bulk importer can load at startup (CATALOG_IMPORT_ENABLED=true).
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	type record struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		ImageURL    string  `json:"imageUrl"`
		Stock       int     `json:"stock"`
		Featured    bool    `json:"featured"`
	}

	categories := []string{"Electronics", "Clothing", "Home", "Books", "Sports"}

	records := []record{
		{Name: "Wireless Headphones", Description: "Over-ear, 30h battery", Price: 89.99, Category: "Electronics", Stock: 25, Featured: true},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", Price: 129.00, Category: "Electronics", Stock: 12},
		{Name: "Cotton T-Shirt", Description: "Plain crew neck", Price: 14.50, Category: "Clothing", Stock: 80},
		{Name: "Ceramic Mug", Description: "350ml, dishwasher safe", Price: 9.99, Category: "Home", Stock: 40},
		{Name: "Yoga Mat", Description: "6mm non-slip", Price: 24.95, Category: "Sports", Stock: 30},
	}

	for i := 0; i < 45; i++ {
		cat := categories[rand.Intn(len(categories))]
		records = append(records, record{
			Name:        fmt.Sprintf("%s Item %02d", cat, i+1),
			Description: fmt.Sprintf("Sample %s product", cat),
			Price:       float64(rand.Intn(19000)+100) / 100,
			Category:    cat,
			Stock:       rand.Intn(50),
			Featured:    i%10 == 0,
		})
	}

	path := filepath.Join(dataDir, "products.jsonl.gz")
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create file %s: %v", path, err)
	}
	defer file.Close()

	gw := gzip.NewWriter(file)
	defer gw.Close()

	enc := json.NewEncoder(gw)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			log.Fatalf("Failed to write record: %v", err)
		}
	}

	fmt.Printf("Wrote %d catalogue records to %s\n", len(records), path)
}
