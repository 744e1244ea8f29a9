package services

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"furuth/database"
	"furuth/models"
)

//go:embed seed/products.yaml
var defaultSeed []byte

type SeedProduct struct {
	Name        string          `yaml:"name"`
	Price       float64         `yaml:"price"`
	Image       string          `yaml:"image"`
	Description string          `yaml:"description"`
	Category    models.Category `yaml:"category"`
}

type seedFile struct {
	Products []SeedProduct `yaml:"products"`
}

// LoadSeed reads a seed catalog from path, or the built-in sample catalog
// when path is empty.
func LoadSeed(path string) ([]SeedProduct, error) {
	data := defaultSeed
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return f.Products, nil
}

// SeedIfFirstRun writes seed to an empty catalog the first time the store
// is opened and marks the store initialized. Later runs never reseed, so an
// empty catalog with a backup is still reported as a loss.
func (c *CatalogStore) SeedIfFirstRun(ctx context.Context, seed []SeedProduct) (bool, error) {
	_, initialized, err := c.storage.Get(ctx, database.InitializedKey)
	if err != nil {
		return false, fmt.Errorf("read initialized flag: %w", err)
	}
	if initialized {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seeded := false
	if len(c.products) == 0 && len(seed) > 0 {
		now := c.now()
		products := make([]models.Product, 0, len(seed))
		for _, s := range seed {
			products = append(products, models.Product{
				ID:          newProductID(now),
				Name:        s.Name,
				Price:       s.Price,
				Image:       s.Image,
				Description: s.Description,
				Category:    s.Category,
				DateAdded:   now,
			})
		}
		if err := c.saveProducts(ctx, products); err != nil {
			return false, err
		}
		seeded = true
		slog.Info("seeded sample catalog", "count", len(products))
	}

	if err := c.storage.Set(ctx, database.InitializedKey, "true"); err != nil {
		return seeded, fmt.Errorf("set initialized flag: %w", err)
	}
	return seeded, nil
}
