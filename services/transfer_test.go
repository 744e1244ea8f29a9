package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"furuth/database"
	"furuth/models"
)

func TestCatalogStore_ExportImportJSON(t *testing.T) {
	ctx := context.Background()
	src, _ := seededCatalog(t)

	var buf bytes.Buffer
	require.NoError(t, src.ExportJSON(&buf))
	assert.Contains(t, buf.String(), "\n  {\n    \"id\": \"prod_tee\"")

	dst := newTestCatalog(t, database.NewMemoryStorage(0))
	n, err := dst.ImportJSON(ctx, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, src.Products(), dst.Products())
}

func TestCatalogStore_ImportJSONSkipsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, database.NewMemoryStorage(0))

	n, err := c.ImportJSON(ctx, []byte(`[
		{"name": "Cap", "price": 9.5, "image": "images/cap.png", "category": "kids"},
		{"name": "No price", "image": "images/x.png"},
		{"name": "String price", "price": "12", "image": "images/y.png"},
		{"name": "", "price": 3, "image": "images/z.png"},
		{"name": "No image", "price": 4},
		{"name": "Negative", "price": -3, "image": "images/n.png"},
		{"name": "Free", "price": 0, "image": "images/f.png"},
		1,
		"Cap",
		null
	]`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	products := c.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Cap", products[0].Name)
	assert.Equal(t, models.CategoryKids, products[0].Category)
	assert.Regexp(t, `^prod_`, products[0].ID)
	assert.Equal(t, testNow, products[0].DateAdded)
}

func TestCatalogStore_ImportJSONRejects(t *testing.T) {
	ctx := context.Background()
	c, _ := seededCatalog(t)

	_, err := c.ImportJSON(ctx, []byte(`{"products": []}`))
	require.ErrorIs(t, err, ErrInvalidImportFile)

	_, err = c.ImportJSON(ctx, []byte(`[{"name": "broken"`))
	require.ErrorIs(t, err, ErrInvalidImportFile)

	_, err = c.ImportJSON(ctx, []byte(`[{"name": "No price"}]`))
	require.ErrorIs(t, err, ErrNoValidProducts)

	assert.Equal(t, sampleProducts(), c.Products(), "rejected imports leave the catalog alone")
}

func TestCatalogStore_ExportXLSX(t *testing.T) {
	c, _ := seededCatalog(t)

	var buf bytes.Buffer
	require.NoError(t, c.ExportXLSX(&buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	require.Len(t, sheet.Rows, 4)
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "prod_tee", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "Classic Tee", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "Men", sheet.Rows[1].Cells[3].String())
	assert.Equal(t, "2025-01-15 10:30:00", sheet.Rows[1].Cells[6].String())
}
