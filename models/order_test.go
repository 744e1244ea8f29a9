package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	all := []OrderStatus{StatusPending, StatusApproved, StatusDelivered}
	allowed := map[[2]OrderStatus]bool{
		{StatusPending, StatusApproved}:   true,
		{StatusApproved, StatusDelivered}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]OrderStatus{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.True(t, StatusDelivered.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	s, ok := ParseOrderStatus(" Approved ")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, s)

	_, ok = ParseOrderStatus("canceled")
	assert.False(t, ok)
}

func TestTransitionErrorMessage(t *testing.T) {
	err := &TransitionError{From: StatusDelivered, To: StatusPending}
	assert.EqualError(t, err, "cannot change status from delivered to pending")
}

func TestCheckoutInputValidate(t *testing.T) {
	in := CheckoutInput{
		CustomerName:  " Rahim ",
		Phone:         "01700000000",
		Address:       "Dhaka",
		PaymentMethod: "bKash",
		TransactionID: " TX123 ",
	}

	f, err := in.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Rahim", f.Customer.Name)
	assert.Equal(t, PaymentBkash, f.Method)
	assert.Equal(t, "TX123", f.TransactionID)
	assert.Equal(t, CurrencyUSD, f.Currency, "currency defaults to USD")

	in.Currency = "bdt"
	f, err = in.Validate()
	require.NoError(t, err)
	assert.Equal(t, CurrencyBDT, f.Currency)

	tests := []struct {
		name  string
		edit  func(*CheckoutInput)
		field string
	}{
		{"no name", func(in *CheckoutInput) { in.CustomerName = "" }, "name"},
		{"no phone", func(in *CheckoutInput) { in.Phone = " " }, "phone"},
		{"no address", func(in *CheckoutInput) { in.Address = "" }, "address"},
		{"no transaction", func(in *CheckoutInput) { in.TransactionID = "" }, "transactionId"},
		{"unknown method", func(in *CheckoutInput) { in.PaymentMethod = "card" }, "method"},
		{"unknown currency", func(in *CheckoutInput) { in.Currency = "EUR" }, "currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := in
			tt.edit(&bad)
			_, err := bad.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParsePreferences(t *testing.T) {
	c, ok := ParseCurrency("bdt")
	assert.True(t, ok)
	assert.Equal(t, CurrencyBDT, c)
	_, ok = ParseCurrency("EUR")
	assert.False(t, ok)

	th, ok := ParseTheme("Dark")
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, th)
	_, ok = ParseTheme("sepia")
	assert.False(t, ok)
}
