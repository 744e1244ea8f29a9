package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetPreferences(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	currency, err := h.Prefs.Currency(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	theme, err := h.Prefs.Theme(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"currency":     currency,
		"theme":        theme,
		"exchangeRate": h.Money.Rate(),
	}})
}

// UpdatePreferences changes whichever of currency and theme is present.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var body struct {
		Currency string `json:"currency"`
		Theme    string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if body.Currency != "" {
		if _, err := h.Prefs.SetCurrency(ctx, body.Currency); err != nil {
			respondError(c, err)
			return
		}
	}
	if body.Theme != "" {
		if _, err := h.Prefs.SetTheme(ctx, body.Theme); err != nil {
			respondError(c, err)
			return
		}
	}
	h.GetPreferences(c)
}
