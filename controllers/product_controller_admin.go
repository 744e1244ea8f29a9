package controllers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"furuth/models"
)

type productBody struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	// Currency is the currency Price was entered in; BDT prices are
	// converted to USD before storing.
	Currency string `json:"currency" binding:"omitempty,oneof=USD BDT usd bdt"`
}

func (h *Handler) bindProduct(c *gin.Context) (models.ProductInput, bool) {
	var body productBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return models.ProductInput{}, false
	}

	price := body.Price
	if currency, ok := models.ParseCurrency(body.Currency); ok {
		price = h.Money.ToUSD(price, currency)
	}
	return models.ProductInput{
		Name:        body.Name,
		Price:       price,
		Image:       body.Image,
		Description: body.Description,
		Category:    body.Category,
	}, true
}

func (h *Handler) GetProductsAdmin(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"message": "Fetch success",
		"data":    h.productViews(h.Catalog.Products(), h.currency(ctx)),
	})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	input, ok := h.bindProduct(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.Catalog.AddProduct(ctx, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "data": product})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	input, ok := h.bindProduct(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.Catalog.UpdateProduct(ctx, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "data": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ok, err := h.Catalog.DeleteProduct(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *Handler) ExportProducts(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=furuth-products.json")
	c.Header("Content-Type", "application/json")
	if err := h.Catalog.ExportJSON(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export products"})
	}
}

func (h *Handler) ExportProductsExcel(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=furuth-products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	if err := h.Catalog.ExportXLSX(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

// ImportProducts replaces the catalog with an uploaded JSON export. The
// file may come as the "file" form field or as the raw request body.
func (h *Handler) ImportProducts(c *gin.Context) {
	data, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error reading file: %v", err)})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	n, err := h.Catalog.ImportJSON(ctx, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully imported %d products", n),
		"count":   n,
	})
}

func readUpload(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return io.ReadAll(c.Request.Body)
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
