package catalog

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// importer implements Importer on top of a Loader and the product repository.
type importer struct {
	loader      Loader
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewImporter creates a new catalogue importer.
func NewImporter(loader Loader, productRepo repository.ProductRepository, logger zerolog.Logger) Importer {
	return &importer{
		loader:      loader,
		productRepo: productRepo,
		logger:      logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import upserts all records from the given source. A record that fails
// validation is skipped and logged; only load or storage errors abort.
func (i *importer) Import(ctx context.Context, source string) (int, error) {
	records, err := i.loader.Load(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("failed to import catalogue: %w", err)
	}

	imported := 0
	skipped := 0
	now := time.Now()

	for _, record := range records {
		if err := record.Validate(); err != nil {
			i.logger.Warn().
				Err(err).
				Str("name", record.Name).
				Msg("skipping invalid catalogue record")
			skipped++
			continue
		}

		id := uuid.New()
		if record.ID != "" {
			parsed, err := uuid.Parse(record.ID)
			if err != nil {
				i.logger.Warn().
					Str("id", record.ID).
					Str("name", record.Name).
					Msg("skipping catalogue record with invalid ID")
				skipped++
				continue
			}
			id = parsed
		}

		product := &model.Product{
			ID:          id,
			Name:        record.Name,
			Description: record.Description,
			Price:       model.RoundCurrency(record.Price),
			Category:    record.Category,
			ImageURL:    record.ImageURL,
			Stock:       record.Stock,
			Featured:    record.Featured,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := i.productRepo.Upsert(ctx, product); err != nil {
			return imported, fmt.Errorf("failed to import catalogue record %q: %w", record.Name, err)
		}
		imported++
	}

	i.logger.Info().
		Str("source", source).
		Int("imported", imported).
		Int("skipped", skipped).
		Msg("catalogue import completed")

	return imported, nil
}
