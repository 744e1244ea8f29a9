package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"furuth/models"
)

type cartLineView struct {
	models.CartLine
	LineTotal string `json:"lineTotal"`
}

func (h *Handler) cartResponse(c *gin.Context, status int, message string) {
	ctx, cancel := requestContext(c)
	defer cancel()

	currency := h.currency(ctx)
	lines := h.Catalog.Lines()
	views := make([]cartLineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, cartLineView{CartLine: l, LineTotal: h.Money.Format(l.LineTotal(), currency)})
	}

	c.JSON(status, gin.H{
		"message": message,
		"data": gin.H{
			"lines":     views,
			"itemCount": h.Catalog.ItemCount(),
			"totals":    h.totalsView(h.Catalog.Totals(), currency),
		},
	})
}

func (h *Handler) GetCart(c *gin.Context) {
	h.cartResponse(c, http.StatusOK, "Fetch success")
}

func (h *Handler) AddToCart(c *gin.Context) {
	var body struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ok, err := h.Catalog.AddLine(ctx, body.ProductID, body.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	h.cartResponse(c, http.StatusOK, "Added to cart")
}

// UpdateCart sets a line's quantity; zero removes the line.
func (h *Handler) UpdateCart(c *gin.Context) {
	var body struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ok, err := h.Catalog.SetQuantity(ctx, c.Param("productId"), *body.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
		return
	}
	h.cartResponse(c, http.StatusOK, "Cart updated")
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ok, err := h.Catalog.RemoveLine(ctx, c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
		return
	}
	h.cartResponse(c, http.StatusOK, "Removed from cart")
}

func (h *Handler) ClearCart(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Catalog.Clear(ctx); err != nil {
		respondError(c, err)
		return
	}
	h.cartResponse(c, http.StatusOK, "Cart cleared")
}
