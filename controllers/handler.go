package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"furuth/models"
	"furuth/services"
)

const requestTimeout = 5 * time.Second

// Handler carries the stores every endpoint works against.
type Handler struct {
	Catalog    *services.CatalogStore
	Ledger     *services.OrderLedger
	Prefs      *services.Preferences
	Admin      *services.AdminAuth
	Money      services.Money
	JWTSecret  []byte
	SessionTTL time.Duration
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *models.ValidationError
		transitionErr *models.TransitionError
		saveErr       *services.SaveError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason, "field": validationErr.Field})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.As(err, &saveErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Changes could not be saved, please try again",
			"reason":    saveErr.Error(),
			"persisted": false,
		})
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, services.ErrNoBackup):
		c.JSON(http.StatusNotFound, gin.H{"error": "No backup available"})
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrNoValidProducts),
		errors.Is(err, services.ErrInvalidImportFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// currency is the shopper's display currency. A storage error falls back to
// USD rather than failing the request.
func (h *Handler) currency(ctx context.Context) models.Currency {
	currency, _ := h.Prefs.Currency(ctx)
	return currency
}

type productView struct {
	models.Product
	CategoryName string             `json:"categoryName"`
	Display      services.DualPrice `json:"display"`
}

func (h *Handler) productViews(products []models.Product, currency models.Currency) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, h.productView(p, currency))
	}
	return views
}

func (h *Handler) productView(p models.Product, currency models.Currency) productView {
	return productView{
		Product:      p,
		CategoryName: p.Category.DisplayName(),
		Display:      h.Money.Dual(p.Price, currency),
	}
}

type totalsView struct {
	models.Totals
	Display gin.H `json:"display"`
}

func (h *Handler) totalsView(t models.Totals, currency models.Currency) totalsView {
	return totalsView{
		Totals: t,
		Display: gin.H{
			"subtotal": h.Money.Format(t.Subtotal, currency),
			"tax":      h.Money.Format(t.Tax, currency),
			"shipping": h.Money.Format(t.Shipping, currency),
			"total":    h.Money.Format(t.Total, currency),
		},
	}
}
