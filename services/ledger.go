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

	"furuth/database"
	"furuth/models"
)

// Cart is the part of the catalog store checkout depends on.
type Cart interface {
	Lines() []models.CartLine
	ClearLines(ctx context.Context, ordered []models.CartLine) error
}

// Receipt is a confirmed order. CartCleared is false when the order was
// saved but the cart still holds the ordered lines.
type Receipt struct {
	models.Order
	CartCleared bool
}

// OrderLedger owns the orders collection. It reads the collection from
// storage on every operation, so an order only exists once it has been
// written.
type OrderLedger struct {
	mu      sync.Mutex
	storage database.Storage
	cart    Cart
	now     func() time.Time
}

func NewOrderLedger(storage database.Storage, cart Cart, opts ...Option) *OrderLedger {
	o := applyOptions(opts)
	return &OrderLedger{storage: storage, cart: cart, now: o.now}
}

// load returns the stored orders. A corrupt value is copied aside to the
// quarantine key before the orders key is reset, since orders cannot be
// rebuilt from anywhere else.
func (l *OrderLedger) load(ctx context.Context) ([]models.Order, error) {
	raw, ok, err := l.storage.Get(ctx, database.OrdersKey)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if !ok {
		return []models.Order{}, nil
	}

	orders, err := decodeList[models.Order](raw)
	if err != nil {
		slog.Warn("corrupted orders data, quarantining and resetting",
			"quarantine_key", database.OrdersQuarantine,
			"error", err,
		)
		if err := l.storage.Set(ctx, database.OrdersQuarantine, raw); err != nil {
			slog.Error("failed to quarantine corrupted orders", "error", err)
		}
		if err := l.storage.Set(ctx, database.OrdersKey, "[]"); err != nil {
			slog.Error("failed to reset corrupted orders", "error", err)
		}
		return []models.Order{}, nil
	}
	return orders, nil
}

func (l *OrderLedger) save(ctx context.Context, orders []models.Order) error {
	if err := writeConfirmed(ctx, l.storage, database.OrdersKey, orders); err != nil {
		slog.Error("failed to save orders", "count", len(orders), "error", err)
		return err
	}
	return nil
}

// ConfirmOrder turns the current cart into a pending order. Only the lines
// that went into the order are taken out of the cart, and only after the
// order has been written; when the order cannot be saved the cart is left
// exactly as it was.
func (l *OrderLedger) ConfirmOrder(ctx context.Context, in models.CheckoutInput) (Receipt, error) {
	fields, err := in.Validate()
	if err != nil {
		return Receipt{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.cart.Lines()
	if len(lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	orders, err := l.load(ctx)
	if err != nil {
		return Receipt{}, err
	}

	now := l.now()
	totals := ComputeTotals(lines)
	order := models.Order{
		ID:       newOrderID(now),
		Items:    lines,
		Customer: fields.Customer,
		Payment: models.Payment{
			Method:        fields.Method,
			TransactionID: fields.TransactionID,
			Amount:        totals.Total,
			Currency:      fields.Currency,
		},
		Totals:      totals,
		Status:      models.StatusPending,
		OrderDate:   now,
		LastUpdated: now,
	}

	if err := l.save(ctx, append(orders, order)); err != nil {
		return Receipt{}, err
	}
	slog.Info("order placed", "order_id", order.ID, "items", len(lines), "total", totals.Total)

	receipt := Receipt{Order: order, CartCleared: true}
	if err := l.cart.ClearLines(ctx, lines); err != nil {
		slog.Error("order saved but cart could not be cleared", "order_id", order.ID, "error", err)
		receipt.CartCleared = false
	}
	return receipt, nil
}

// UpdateStatus moves an order to status. Only the transitions in the
// status table are allowed; anything else is a *models.TransitionError and
// nothing is written.
func (l *OrderLedger) UpdateStatus(ctx context.Context, id, status string) (models.Order, error) {
	next, ok := models.ParseOrderStatus(status)
	if !ok {
		return models.Order{}, &models.ValidationError{Field: "status", Reason: "invalid status"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	i := indexOrder(orders, id)
	if i < 0 {
		return models.Order{}, ErrOrderNotFound
	}

	current := orders[i].Status
	if !current.CanTransitionTo(next) {
		return models.Order{}, &models.TransitionError{From: current, To: next}
	}

	orders[i].Status = next
	orders[i].LastUpdated = l.now()
	if err := l.save(ctx, orders); err != nil {
		return models.Order{}, err
	}
	slog.Info("order status updated", "order_id", orders[i].ID, "from", current, "to", next)
	return orders[i], nil
}

// Find looks an order up by id, ignoring case. Not finding it is a normal
// outcome reported through ok.
func (l *OrderLedger) Find(ctx context.Context, id string) (models.Order, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Order{}, false, &models.ValidationError{Field: "id", Reason: "please enter an order ID"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.load(ctx)
	if err != nil {
		return models.Order{}, false, err
	}
	i := indexOrder(orders, id)
	if i < 0 {
		return models.Order{}, false, nil
	}
	return orders[i], true, nil
}

// All returns every order, newest first.
func (l *OrderLedger) All(ctx context.Context) ([]models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

func (l *OrderLedger) Stats(ctx context.Context) (models.OrderStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.load(ctx)
	if err != nil {
		return models.OrderStats{}, err
	}
	stats := models.OrderStats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusDelivered:
			stats.Delivered++
		}
	}
	return stats, nil
}

func indexOrder(orders []models.Order, id string) int {
	return slices.IndexFunc(orders, func(o models.Order) bool { return strings.EqualFold(o.ID, id) })
}
