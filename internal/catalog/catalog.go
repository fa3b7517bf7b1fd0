package catalog

import (
	"context"

	"storefront/internal/model"
)

// Record is one product entry in a catalogue data file. Absent IDs are
// generated on import; records with an ID overwrite the existing product.
type Record struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
	Featured    bool    `json:"featured"`
}

// Loader defines the interface for reading catalogue data files.
type Loader interface {
	// Load reads a gzipped JSON-lines catalogue file and returns its records.
	Load(ctx context.Context, source string) ([]Record, error)
}

// Importer writes catalogue records into the product store.
type Importer interface {
	// Import upserts all records from the given source. Returns the number
	// of products written.
	Import(ctx context.Context, source string) (int, error)
}

// Validate checks that a record can become a product.
func (r Record) Validate() error {
	if r.Name == "" {
		return model.NewDomainError(model.ErrCodeValidationError, "catalogue record is missing a name")
	}
	if r.Category == "" {
		return model.NewDomainError(model.ErrCodeValidationError, "catalogue record is missing a category")
	}
	if r.Price < 0 {
		return model.NewDomainError(model.ErrCodeValidationError, "catalogue record has a negative price")
	}
	if r.Stock < 0 {
		return model.NewDomainError(model.ErrCodeValidationError, "catalogue record has negative stock")
	}
	return nil
}
