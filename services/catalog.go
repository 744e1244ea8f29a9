package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"furuth/database"
	"furuth/models"
)

// CatalogStore owns the product collection and the cart. Every mutation
// rewrites the whole collection; reads of the stored catalog always yield a
// well-formed list, healing corruption on the way.
type CatalogStore struct {
	mu       sync.Mutex
	storage  database.Storage
	now      func() time.Time
	products []models.Product
	cart     []models.CartLine
}

// NewCatalogStore loads the catalog and cart from storage.
func NewCatalogStore(ctx context.Context, storage database.Storage, opts ...Option) (*CatalogStore, error) {
	o := applyOptions(opts)
	c := &CatalogStore{storage: storage, now: o.now}

	products, err := c.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := c.loadCart(ctx)
	if err != nil {
		return nil, err
	}
	c.products = products
	c.cart = cart
	return c, nil
}

// Load re-reads the catalog from storage and makes it the in-memory state.
// An absent key yields an empty catalog. A value that is not a list of
// products is replaced with an empty list.
func (c *CatalogStore) Load(ctx context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.products = products
	return slices.Clone(products), nil
}

func (c *CatalogStore) loadProducts(ctx context.Context) ([]models.Product, error) {
	raw, ok, err := c.storage.Get(ctx, database.ProductsKey)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if !ok {
		return []models.Product{}, nil
	}

	products, err := decodeList[models.Product](raw)
	if err != nil {
		slog.Warn("corrupted products data, resetting to empty list", "error", err)
		if err := c.storage.Set(ctx, database.ProductsKey, "[]"); err != nil {
			slog.Error("failed to reset corrupted products", "error", err)
		}
		return []models.Product{}, nil
	}
	return products, nil
}

// Save replaces the stored catalog and refreshes the shadow backup. A nil
// collection is saved as an empty list. On failure the in-memory catalog
// still holds products, so nothing the admin entered is lost.
func (c *CatalogStore) Save(ctx context.Context, products []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveProducts(ctx, slices.Clone(products))
}

func (c *CatalogStore) saveProducts(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	c.products = products

	if err := writeConfirmed(ctx, c.storage, database.ProductsKey, products); err != nil {
		slog.Error("failed to save products", "count", len(products), "error", err)
		return err
	}

	backup := models.Backup{Products: products, Timestamp: c.now(), Count: len(products)}
	if err := writeConfirmed(ctx, c.storage, database.ProductsBackupKey, backup); err != nil {
		slog.Error("failed to write products backup", "error", err)
	}

	slog.Info("products saved", "count", len(products))
	return nil
}

// Backup returns the shadow copy, if a usable one exists.
func (c *CatalogStore) Backup(ctx context.Context) (models.Backup, bool, error) {
	raw, ok, err := c.storage.Get(ctx, database.ProductsBackupKey)
	if err != nil {
		return models.Backup{}, false, fmt.Errorf("load backup: %w", err)
	}
	if !ok {
		return models.Backup{}, false, nil
	}

	var backup models.Backup
	if err := json.Unmarshal([]byte(raw), &backup); err != nil || backup.Products == nil {
		slog.Warn("ignoring unreadable products backup", "error", err)
		return models.Backup{}, false, nil
	}
	return backup, true, nil
}

// LossReport describes the outcome of DetectLoss.
type LossReport struct {
	Suspected   bool      `json:"suspected"`
	BackupCount int       `json:"backupCount"`
	BackupTime  time.Time `json:"backupTime"`
	Restored    bool      `json:"restored"`
}

// ConfirmFunc asks the admin whether to restore from the backup.
type ConfirmFunc func(LossReport) bool

// DetectLoss checks once, at startup, whether the catalog looks lost: it is
// empty while the backup still holds products. Restoring needs an admin
// context and an explicit yes from confirm; it never happens on its own.
func (c *CatalogStore) DetectLoss(ctx context.Context, admin bool, confirm ConfirmFunc) (LossReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var report LossReport
	if len(c.products) > 0 {
		return report, nil
	}
	backup, ok, err := c.Backup(ctx)
	if err != nil || !ok || backup.Count <= 0 {
		return report, err
	}

	report.Suspected = true
	report.BackupCount = backup.Count
	report.BackupTime = backup.Timestamp
	slog.Warn("detected potential data loss, backup available",
		"backup_count", backup.Count,
		"backup_time", backup.Timestamp,
	)

	if !admin || confirm == nil || !confirm(report) {
		return report, nil
	}
	if err := c.saveProducts(ctx, slices.Clone(backup.Products)); err != nil {
		return report, err
	}
	report.Restored = true
	slog.Info("restored products from backup", "count", len(backup.Products))
	return report, nil
}

// RestoreFromBackup replaces the catalog with the backup copy.
func (c *CatalogStore) RestoreFromBackup(ctx context.Context) (models.Backup, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	backup, ok, err := c.Backup(ctx)
	if err != nil {
		return models.Backup{}, err
	}
	if !ok {
		return models.Backup{}, ErrNoBackup
	}
	if err := c.saveProducts(ctx, slices.Clone(backup.Products)); err != nil {
		return models.Backup{}, err
	}
	slog.Info("restored products from backup", "count", len(backup.Products))
	return backup, nil
}

// Products returns the in-memory catalog in stored order.
func (c *CatalogStore) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.products)
}

func (c *CatalogStore) Product(id string) (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *CatalogStore) indexOf(id string) int {
	return slices.IndexFunc(c.products, func(p models.Product) bool { return p.ID == id })
}

// Related returns up to n other products, in catalog order.
func (c *CatalogStore) Related(id string, n int) []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	related := make([]models.Product, 0, n)
	for _, p := range c.products {
		if len(related) == n {
			break
		}
		if p.ID != id {
			related = append(related, p)
		}
	}
	return related
}

const (
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"

	CategoryAll = "all"
)

// Query is the shopper's current search, category filter and sort order.
type Query struct {
	Search   string
	Category string
	Sort     string
}

// Query projects the catalog. Search matches name or description without
// regard to case. An empty sort means name-asc; an unknown one keeps
// catalog order.
func (c *CatalogStore) Query(q Query) []models.Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.ToLower(strings.TrimSpace(q.Category))

	c.mu.Lock()
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if category != "" && category != CategoryAll && string(p.Category) != category {
			continue
		}
		out = append(out, p)
	}
	c.mu.Unlock()

	sortProducts(out, q.Sort)
	return out
}

func sortProducts(products []models.Product, order string) {
	switch order {
	case "", SortNameAsc, SortNameDesc:
		col := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			cmp := col.CompareString(products[i].Name, products[j].Name)
			if order == SortNameDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	}
}

// AddProduct validates in and appends a new product. Validation failures
// leave the catalog untouched. A *SaveError still returns the product,
// which stays in the in-memory catalog.
func (c *CatalogStore) AddProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	fields, err := in.Validate()
	if err != nil {
		return models.Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	product := models.Product{
		ID:          newProductID(now),
		Name:        fields.Name,
		Price:       fields.Price,
		Image:       fields.Image,
		Description: fields.Description,
		Category:    fields.Category,
		DateAdded:   now,
	}
	products := append(slices.Clone(c.products), product)
	return product, c.saveProducts(ctx, products)
}

// UpdateProduct replaces the editable fields of an existing product and
// stamps LastModified. Id and DateAdded are kept.
func (c *CatalogStore) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	fields, err := in.Validate()
	if err != nil {
		return models.Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}

	now := c.now()
	product := c.products[i]
	product.Name = fields.Name
	product.Price = fields.Price
	product.Image = fields.Image
	product.Description = fields.Description
	product.Category = fields.Category
	product.LastModified = &now

	products := slices.Clone(c.products)
	products[i] = product
	return product, c.saveProducts(ctx, products)
}

// DeleteProduct removes a product. ok is false when no product has id, in
// which case nothing is written.
func (c *CatalogStore) DeleteProduct(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	products := slices.Delete(slices.Clone(c.products), i, i+1)
	return true, c.saveProducts(ctx, products)
}
