package models

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusDelivered OrderStatus = "delivered"
)

// validTransitions maps a status to the statuses an admin may move it to.
// Approval cannot be skipped and delivered is terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusApproved},
	StatusApproved:  {StatusDelivered},
	StatusDelivered: {},
}

// ParseOrderStatus accepts a known status name, case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	_, ok := validTransitions[status]
	return status, ok
}

// CanTransitionTo reports whether the table allows moving from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// TransitionError is returned for a status change the table does not allow.
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

type PaymentMethod string

const (
	PaymentBkash PaymentMethod = "bkash"
	PaymentNagad PaymentMethod = "nagad"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentBkash, PaymentNagad:
		return m, true
	default:
		return "", false
	}
}

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Payment records the manual mobile-money transfer the customer claims to
// have made. Amount is in USD; Currency is the display currency the shopper
// had selected when checking out.
type Payment struct {
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transactionId"`
	Amount        float64       `json:"amount"`
	Currency      Currency      `json:"currency"`
}

// Totals are USD amounts.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Order is immutable after checkout except for Status and LastUpdated.
type Order struct {
	ID          string      `json:"id"`
	Items       []CartLine  `json:"items"`
	Customer    Customer    `json:"customer"`
	Payment     Payment     `json:"payment"`
	Totals      Totals      `json:"totals"`
	Status      OrderStatus `json:"status"`
	OrderDate   time.Time   `json:"orderDate"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

type OrderStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Delivered int `json:"delivered"`
}

// CheckoutInput is what the customer submits on the payment form.
type CheckoutInput struct {
	CustomerName  string
	Phone         string
	Address       string
	PaymentMethod string
	TransactionID string
	Currency      string
}

// CheckoutFields is a validated CheckoutInput.
type CheckoutFields struct {
	Customer      Customer
	Method        PaymentMethod
	TransactionID string
	Currency      Currency
}

func (in CheckoutInput) Validate() (CheckoutFields, error) {
	f := CheckoutFields{
		Customer: Customer{
			Name:    strings.TrimSpace(in.CustomerName),
			Phone:   strings.TrimSpace(in.Phone),
			Address: strings.TrimSpace(in.Address),
		},
		TransactionID: strings.TrimSpace(in.TransactionID),
	}

	switch {
	case f.Customer.Name == "":
		return CheckoutFields{}, invalid("name", "customer name is required")
	case f.Customer.Phone == "":
		return CheckoutFields{}, invalid("phone", "phone number is required")
	case f.Customer.Address == "":
		return CheckoutFields{}, invalid("address", "delivery address is required")
	case f.TransactionID == "":
		return CheckoutFields{}, invalid("transactionId", "transaction ID is required")
	}

	method, ok := ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return CheckoutFields{}, invalid("method", "payment method must be bkash or nagad")
	}
	f.Method = method

	currency := CurrencyUSD
	if strings.TrimSpace(in.Currency) != "" {
		if currency, ok = ParseCurrency(in.Currency); !ok {
			return CheckoutFields{}, invalid("currency", "currency must be USD or BDT")
		}
	}
	f.Currency = currency
	return f, nil
}
