package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetOrdersAdmin(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := h.Ledger.All(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := h.Ledger.Stats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, h.orderView(o))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": views, "stats": stats})
}

func (h *Handler) GetOrderByIDAdmin(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, ok, err := h.Ledger.Find(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.orderView(order)})
}

// UpdateOrderStatus applies an admin's approve or deliver action.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Ledger.UpdateStatus(ctx, c.Param("id"), body.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "data": h.orderView(order)})
}

// GetRecovery reports whether the catalog looks lost while a backup still
// holds products. It never restores.
func (h *Handler) GetRecovery(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	report, err := h.Catalog.DetectLoss(ctx, false, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (h *Handler) RestoreProducts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	backup, err := h.Catalog.RestoreFromBackup(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Products restored from backup",
		"count":     backup.Count,
		"timestamp": backup.Timestamp,
	})
}
