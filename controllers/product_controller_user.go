package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"furuth/services"
)

const relatedLimit = 4

// GetProductsPublic lists the catalog filtered by ?search=, ?category= and
// ordered by ?sort=.
func (h *Handler) GetProductsPublic(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products := h.Catalog.Query(services.Query{
		Search:   c.Query("search"),
		Category: c.DefaultQuery("category", services.CategoryAll),
		Sort:     c.DefaultQuery("sort", services.SortNameAsc),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Fetch success",
		"data":    h.productViews(products, h.currency(ctx)),
	})
}

func (h *Handler) GetProductByID(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	id := c.Param("id")
	product, ok := h.Catalog.Product(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	currency := h.currency(ctx)
	c.JSON(http.StatusOK, gin.H{
		"data":    h.productView(product, currency),
		"related": h.productViews(h.Catalog.Related(id, relatedLimit), currency),
	})
}
