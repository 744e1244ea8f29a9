package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furuth/database"
	"furuth/models"
)

// checkoutFixture is a catalog with a two-line cart and a ledger over the
// same faulty-capable store.
func checkoutFixture(t *testing.T) (*CatalogStore, *OrderLedger, *database.FaultyStorage) {
	t.Helper()
	ctx := context.Background()
	faulty := database.NewFaultyStorage(database.NewMemoryStorage(0))
	c := newTestCatalog(t, faulty)
	require.NoError(t, c.Save(ctx, sampleProducts()))

	_, err := c.AddLine(ctx, "prod_tee", 2)
	require.NoError(t, err)
	_, err = c.AddLine(ctx, "prod_dress", 1)
	require.NoError(t, err)

	return c, NewOrderLedger(faulty, c, clock()), faulty
}

func TestOrderLedger_ConfirmOrder(t *testing.T) {
	ctx := context.Background()
	c, ledger, _ := checkoutFixture(t)
	before := c.Lines()

	order, err := ledger.ConfirmOrder(ctx, validCheckout())
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-[0-9A-Z]+-[0-9A-F]{4}$`, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, before, order.Items)
	assert.Equal(t, ComputeTotals(before), order.Totals)
	assert.Equal(t, order.Totals.Total, order.Payment.Amount)
	assert.Equal(t, models.CurrencyBDT, order.Payment.Currency)
	assert.Equal(t, models.PaymentBkash, order.Payment.Method)
	assert.Equal(t, order.OrderDate, order.LastUpdated)

	assert.True(t, order.CartCleared)
	assert.Empty(t, c.Lines(), "cart is cleared after the order is saved")

	found, ok, err := ledger.Find(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, order.Order, found)
}

func TestOrderLedger_ConfirmOrderSaveFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	c, ledger, faulty := checkoutFixture(t)
	before := c.Lines()

	faulty.FailSet(database.OrdersKey, database.ErrQuotaExceeded)

	_, err := ledger.ConfirmOrder(ctx, validCheckout())
	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.ErrorIs(t, err, database.ErrQuotaExceeded)

	assert.Equal(t, before, c.Lines(), "cart must survive a failed checkout")
	orders, err := ledger.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	reopened := newTestCatalog(t, faulty)
	assert.Equal(t, before, reopened.Lines(), "stored cart must survive a failed checkout")
}

func TestOrderLedger_ConfirmOrderCartClearFailureStillConfirms(t *testing.T) {
	ctx := context.Background()
	c, ledger, faulty := checkoutFixture(t)
	faulty.FailSet(database.CartKey, errors.New("cart write failed"))

	order, err := ledger.ConfirmOrder(ctx, validCheckout())
	require.NoError(t, err)
	assert.False(t, order.CartCleared)
	assert.Len(t, c.Lines(), 2)

	_, ok, err := ledger.Find(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

// hookStorage runs afterSet once a write has gone through.
type hookStorage struct {
	database.Storage
	afterSet func(key string)
}

func (h *hookStorage) Set(ctx context.Context, key, value string) error {
	if err := h.Storage.Set(ctx, key, value); err != nil {
		return err
	}
	if h.afterSet != nil {
		h.afterSet(key)
	}
	return nil
}

func TestOrderLedger_ConfirmOrderKeepsLinesAddedDuringCheckout(t *testing.T) {
	ctx := context.Background()
	storage := &hookStorage{Storage: database.NewMemoryStorage(0)}
	c := newTestCatalog(t, storage)
	require.NoError(t, c.Save(ctx, sampleProducts()))
	_, err := c.AddLine(ctx, "prod_tee", 2)
	require.NoError(t, err)

	added := false
	storage.afterSet = func(key string) {
		if key != database.OrdersKey || added {
			return
		}
		added = true
		_, err := c.AddLine(ctx, "prod_bag", 1)
		require.NoError(t, err)
		_, err = c.AddLine(ctx, "prod_tee", 1)
		require.NoError(t, err)
	}

	order, err := NewOrderLedger(storage, c, clock()).ConfirmOrder(ctx, validCheckout())
	require.NoError(t, err)
	require.True(t, added)
	assert.True(t, order.CartCleared)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	want := map[string]int{"prod_tee": 1, "prod_bag": 1}
	for _, cart := range [][]models.CartLine{c.Lines(), newTestCatalog(t, storage).Lines()} {
		got := map[string]int{}
		for _, l := range cart {
			got[l.ID] = l.Quantity
		}
		assert.Equal(t, want, got, "lines added while the order was written stay in the cart")
	}
}

func TestOrderLedger_ConfirmOrderRejects(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		c, _ := seededCatalog(t)
		ledger := NewOrderLedger(database.NewMemoryStorage(0), c)
		_, err := ledger.ConfirmOrder(ctx, validCheckout())
		require.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("missing transaction id", func(t *testing.T) {
		c, ledger, _ := checkoutFixture(t)
		in := validCheckout()
		in.TransactionID = "  "
		_, err := ledger.ConfirmOrder(ctx, in)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "transactionId", verr.Field)
		assert.Len(t, c.Lines(), 2)
	})
}

func TestOrderLedger_StatusLifecycle(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := checkoutFixture(t)
	order, err := ledger.ConfirmOrder(ctx, validCheckout())
	require.NoError(t, err)

	approved, err := ledger.UpdateStatus(ctx, order.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.True(t, approved.LastUpdated.After(order.LastUpdated))
	assert.Equal(t, order.OrderDate, approved.OrderDate)

	delivered, err := ledger.UpdateStatus(ctx, order.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	assert.True(t, delivered.LastUpdated.After(approved.LastUpdated))

	for _, next := range []string{"pending", "approved", "delivered"} {
		_, err := ledger.UpdateStatus(ctx, order.ID, next)
		var terr *models.TransitionError
		require.ErrorAs(t, err, &terr, "delivered -> %s", next)
		assert.Equal(t, models.StatusDelivered, terr.From)
	}

	stored, _, err := ledger.Find(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, delivered, stored)
}

func TestOrderLedger_UpdateStatusRejects(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := checkoutFixture(t)
	order, err := ledger.ConfirmOrder(ctx, validCheckout())
	require.NoError(t, err)

	_, err = ledger.UpdateStatus(ctx, order.ID, "delivered")
	var terr *models.TransitionError
	require.ErrorAs(t, err, &terr, "approval cannot be skipped")

	_, err = ledger.UpdateStatus(ctx, order.ID, "shipped")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = ledger.UpdateStatus(ctx, "ORD-DOES-NOT-EXIST", "approved")
	require.ErrorIs(t, err, ErrOrderNotFound)

	stored, _, err := ledger.Find(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Order, stored, "rejected transitions write nothing")
}

func TestOrderLedger_FindNotFound(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := checkoutFixture(t)

	_, ok, err := ledger.Find(ctx, "ORD-DOES-NOT-EXIST")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ledger.Find(ctx, "  ")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestOrderLedger_FindIgnoresCase(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := checkoutFixture(t)
	order, err := ledger.ConfirmOrder(ctx, validCheckout())
	require.NoError(t, err)

	found, ok, err := ledger.Find(ctx, " "+strings.ToLower(order.ID)+" ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, order.ID, found.ID)
}

func TestOrderLedger_AllAndStats(t *testing.T) {
	ctx := context.Background()
	c, ledger, _ := checkoutFixture(t)

	first, err := ledger.ConfirmOrder(ctx, validCheckout())
	require.NoError(t, err)
	_, err = c.AddLine(ctx, "prod_bag", 1)
	require.NoError(t, err)
	second, err := ledger.ConfirmOrder(ctx, validCheckout())
	require.NoError(t, err)
	_, err = ledger.UpdateStatus(ctx, first.ID, "approved")
	require.NoError(t, err)

	orders, err := ledger.All(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID, "newest first")
	assert.Equal(t, first.ID, orders[1].ID)

	stats, err := ledger.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStats{Total: 2, Pending: 1, Approved: 1}, stats)
}

func TestOrderLedger_CorruptOrdersAreQuarantined(t *testing.T) {
	ctx := context.Background()
	storage := database.NewMemoryStorage(0)
	require.NoError(t, storage.Set(ctx, database.OrdersKey, `{"not":"a list"}`))

	ledger := NewOrderLedger(storage, newTestCatalog(t, storage))
	orders, err := ledger.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	quarantined, ok, err := storage.Get(ctx, database.OrdersQuarantine)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"not":"a list"}`, quarantined)

	stored, _, err := storage.Get(ctx, database.OrdersKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", stored)
}

func TestOrderWireFormat(t *testing.T) {
	ctx := context.Background()
	_, ledger, _ := checkoutFixture(t)
	ledger.now = func() time.Time { return testNow }

	order, err := ledger.ConfirmOrder(ctx, validCheckout())
	require.NoError(t, err)
	order.ID = "ORD-TEST-0001"

	data, err := json.MarshalIndent(order.Order, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "order_wire_format", data)
}
