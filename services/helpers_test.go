package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"furuth/database"
	"furuth/models"
)

var testNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

// clock returns a WithClock option whose time moves forward one minute per
// call, starting at testNow.
func clock() Option {
	calls := 0
	return WithClock(func() time.Time {
		t := testNow.Add(time.Duration(calls) * time.Minute)
		calls++
		return t
	})
}

func newTestCatalog(t *testing.T, storage database.Storage) *CatalogStore {
	t.Helper()
	c, err := NewCatalogStore(context.Background(), storage, clock())
	require.NoError(t, err)
	return c
}

func sampleProducts() []models.Product {
	return []models.Product{
		{
			ID:          "prod_tee",
			Name:        "Classic Tee",
			Price:       29.99,
			Image:       "images/tee.jpg",
			Description: "Cotton tee",
			Category:    models.CategoryMen,
			DateAdded:   testNow,
		},
		{
			ID:          "prod_dress",
			Name:        "Summer Dress",
			Price:       49.99,
			Image:       "images/dress.png",
			Description: "Light summer dress",
			Category:    models.CategoryWomen,
			DateAdded:   testNow,
		},
		{
			ID:          "prod_bag",
			Name:        "backpack",
			Price:       25.99,
			Image:       "images/bag.webp",
			Description: "Rainbow school bag",
			Category:    models.CategoryKids,
			DateAdded:   testNow,
		},
	}
}

// seededCatalog returns a catalog holding sampleProducts over a fresh
// memory store.
func seededCatalog(t *testing.T) (*CatalogStore, *database.MemoryStorage) {
	t.Helper()
	storage := database.NewMemoryStorage(0)
	c := newTestCatalog(t, storage)
	require.NoError(t, c.Save(context.Background(), sampleProducts()))
	return c, storage
}

func validCheckout() models.CheckoutInput {
	return models.CheckoutInput{
		CustomerName:  "Rahim Uddin",
		Phone:         "01700000000",
		Address:       "House 12, Road 5, Dhaka",
		PaymentMethod: "bkash",
		TransactionID: "TX123",
		Currency:      "BDT",
	}
}
