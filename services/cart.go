package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"furuth/database"
	"furuth/models"
)

func (c *CatalogStore) loadCart(ctx context.Context) ([]models.CartLine, error) {
	raw, ok, err := c.storage.Get(ctx, database.CartKey)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !ok {
		return []models.CartLine{}, nil
	}

	lines, err := decodeList[models.CartLine](raw)
	if err != nil {
		slog.Warn("corrupted cart data, resetting to empty cart", "error", err)
		if err := c.storage.Set(ctx, database.CartKey, "[]"); err != nil {
			slog.Error("failed to reset corrupted cart", "error", err)
		}
		return []models.CartLine{}, nil
	}
	kept := slices.DeleteFunc(slices.Clone(lines), func(l models.CartLine) bool { return l.Quantity < 1 })
	if dropped := len(lines) - len(kept); dropped > 0 {
		slog.Warn("dropped cart lines with no quantity", "dropped", dropped)
		if err := writeConfirmed(ctx, c.storage, database.CartKey, kept); err != nil {
			slog.Error("failed to save cleaned cart", "error", err)
		}
	}
	return kept, nil
}

func (c *CatalogStore) saveCart(ctx context.Context, lines []models.CartLine) error {
	c.cart = lines
	if err := writeConfirmed(ctx, c.storage, database.CartKey, lines); err != nil {
		slog.Error("failed to save cart", "lines", len(lines), "error", err)
		return err
	}
	return nil
}

func (c *CatalogStore) cartIndex(productID string) int {
	return slices.IndexFunc(c.cart, func(l models.CartLine) bool { return l.ID == productID })
}

// AddLine adds qty of a product to the cart. A product already in the cart
// has its quantity raised; otherwise a snapshot of the current catalog entry
// becomes a new line, freezing its price. ok is false for an unknown product.
func (c *CatalogStore) AddLine(ctx context.Context, productID string, qty int) (bool, error) {
	if qty < 1 {
		return false, &models.ValidationError{Field: "quantity", Reason: "quantity must be at least 1"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lines := slices.Clone(c.cart)
	if i := c.cartIndex(productID); i >= 0 {
		lines[i].Quantity += qty
		return true, c.saveCart(ctx, lines)
	}

	i := c.indexOf(productID)
	if i < 0 {
		return false, nil
	}
	lines = append(lines, models.CartLine{Product: c.products[i], Quantity: qty})
	return true, c.saveCart(ctx, lines)
}

// SetQuantity sets a line's quantity exactly. Zero or less removes the line.
// ok is false when the product is not in the cart.
func (c *CatalogStore) SetQuantity(ctx context.Context, productID string, qty int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.cartIndex(productID)
	if i < 0 {
		return false, nil
	}
	lines := slices.Clone(c.cart)
	if qty <= 0 {
		lines = slices.Delete(lines, i, i+1)
	} else {
		lines[i].Quantity = qty
	}
	return true, c.saveCart(ctx, lines)
}

func (c *CatalogStore) RemoveLine(ctx context.Context, productID string) (bool, error) {
	return c.SetQuantity(ctx, productID, 0)
}

// Lines returns the cart in insertion order.
func (c *CatalogStore) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.cart)
}

// ItemCount is the sum of quantities, shown on the cart badge.
func (c *CatalogStore) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.cart {
		n += l.Quantity
	}
	return n
}

func (c *CatalogStore) Totals() models.Totals {
	return ComputeTotals(c.Lines())
}

// Clear empties the cart. The in-memory cart is only emptied once the empty
// cart has been written.
func (c *CatalogStore) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := writeConfirmed(ctx, c.storage, database.CartKey, []models.CartLine{}); err != nil {
		slog.Error("failed to clear cart", "error", err)
		return err
	}
	c.cart = []models.CartLine{}
	return nil
}

// ClearLines takes the ordered lines out of the cart. Quantities are
// subtracted per product, so anything added after the order was taken
// stays in the cart. Like Clear, memory changes only once the write
// succeeds.
func (c *CatalogStore) ClearLines(ctx context.Context, ordered []models.CartLine) error {
	taken := make(map[string]int, len(ordered))
	for _, l := range ordered {
		taken[l.ID] += l.Quantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := make([]models.CartLine, 0, len(c.cart))
	for _, l := range c.cart {
		l.Quantity -= taken[l.ID]
		if l.Quantity > 0 {
			remaining = append(remaining, l)
		}
	}
	if err := writeConfirmed(ctx, c.storage, database.CartKey, remaining); err != nil {
		slog.Error("failed to clear ordered cart lines", "error", err)
		return err
	}
	c.cart = remaining
	return nil
}
