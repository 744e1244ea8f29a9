package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tealeg/xlsx"

	"furuth/models"
)

// ExportJSON writes the catalog as indented JSON, the same shape Import
// accepts.
func (c *CatalogStore) ExportJSON(w io.Writer) error {
	data, err := json.MarshalIndent(c.Products(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ImportJSON replaces the catalog with the products in data. Elements that
// are not objects, and entries without a name, a positive numeric price or
// an image, are skipped; a file with no usable entry is rejected and leaves
// the catalog alone.
func (c *CatalogStore) ImportJSON(ctx context.Context, data []byte) (int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, ErrInvalidImportFile
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImportFile, err)
	}

	now := c.now()
	products := make([]models.Product, 0, len(entries))
	for _, raw := range entries {
		var e map[string]any
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		p, ok := productFromEntry(e, now)
		if !ok {
			continue
		}
		products = append(products, p)
	}
	if len(products) == 0 {
		return 0, ErrNoValidProducts
	}
	if skipped := len(entries) - len(products); skipped > 0 {
		slog.Warn("skipped invalid products during import", "skipped", skipped)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.saveProducts(ctx, products); err != nil {
		return len(products), err
	}
	slog.Info("imported products", "count", len(products))
	return len(products), nil
}

func productFromEntry(e map[string]any, now time.Time) (models.Product, bool) {
	name, _ := e["name"].(string)
	image, _ := e["image"].(string)
	price, isNumber := e["price"].(float64)
	if strings.TrimSpace(name) == "" || strings.TrimSpace(image) == "" || !isNumber || price <= 0 {
		return models.Product{}, false
	}

	p := models.Product{
		Name:      name,
		Price:     price,
		Image:     image,
		DateAdded: now,
	}
	p.ID, _ = e["id"].(string)
	if p.ID == "" {
		p.ID = newProductID(now)
	}
	p.Description, _ = e["description"].(string)
	if raw, ok := e["category"].(string); ok {
		if category, ok := models.ParseCategory(raw); ok {
			p.Category = category
		}
	}
	if raw, ok := e["dateAdded"].(string); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			p.DateAdded = t
		}
	}
	if raw, ok := e["lastModified"].(string); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			p.LastModified = &t
		}
	}
	return p, true
}

var xlsxHeaders = []string{"ID", "Name", "Price (USD)", "Category", "Image", "Description", "Date Added", "Last Modified"}

// ExportXLSX writes the catalog as a single-sheet spreadsheet.
func (c *CatalogStore) ExportXLSX(w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range xlsxHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range c.Products() {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Category.DisplayName())
		row.AddCell().SetValue(p.Image)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.DateAdded.Format("2006-01-02 15:04:05"))
		modified := ""
		if p.LastModified != nil {
			modified = p.LastModified.Format("2006-01-02 15:04:05")
		}
		row.AddCell().SetValue(modified)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}
	return nil
}
