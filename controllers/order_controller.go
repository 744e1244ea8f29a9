package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"furuth/models"
)

type orderView struct {
	models.Order
	Display gin.H `json:"display"`
}

func (h *Handler) orderView(o models.Order) orderView {
	return orderView{
		Order: o,
		Display: gin.H{
			"total":  h.Money.Dual(o.Totals.Total, o.Payment.Currency),
			"status": statusLabel(o.Status),
		},
	}
}

func statusLabel(s models.OrderStatus) string {
	switch s {
	case models.StatusPending:
		return "Pending Approval"
	case models.StatusApproved:
		return "Approved"
	case models.StatusDelivered:
		return "Delivered"
	default:
		return string(s)
	}
}

// Checkout confirms the current cart as a pending order paid by a manual
// bKash or Nagad transfer.
func (h *Handler) Checkout(c *gin.Context) {
	var body struct {
		Name          string `json:"name" binding:"required"`
		Phone         string `json:"phone" binding:"required"`
		Address       string `json:"address" binding:"required"`
		PaymentMethod string `json:"paymentMethod" binding:"required"`
		TransactionID string `json:"transactionId" binding:"required"`
		Currency      string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if body.Currency == "" {
		body.Currency = string(h.currency(ctx))
	}

	receipt, err := h.Ledger.ConfirmOrder(ctx, models.CheckoutInput{
		CustomerName:  body.Name,
		Phone:         body.Phone,
		Address:       body.Address,
		PaymentMethod: body.PaymentMethod,
		TransactionID: body.TransactionID,
		Currency:      body.Currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order placed, it will be confirmed once the payment is verified",
		"data":        h.orderView(receipt.Order),
		"cartCleared": receipt.CartCleared,
	})
}

func (h *Handler) GetOrders(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := h.Ledger.All(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, h.orderView(o))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": views})
}

// SearchOrder looks an order up by ?id=. Not finding it is an ordinary
// answer, not an error.
func (h *Handler) SearchOrder(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, ok, err := h.Ledger.Find(ctx, c.Query("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"found":   false,
			"message": "Order not found. Please check your order ID and try again.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "data": h.orderView(order)})
}
