package controllers

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"furuth/models"
)

// Login checks the admin credentials, opens the admin session and returns
// a token that expires with the session TTL.
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	admin, err := h.Admin.Login(ctx, input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	expiresAt := time.Now().Add(h.SessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": admin.Username,
		"role":     models.RoleAdmin,
		"exp":      expiresAt.Unix(),
	})
	tokenString, err := token.SignedString(h.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"username":  admin.Username,
			"role":      models.RoleAdmin,
			"token":     tokenString,
			"expiresAt": expiresAt,
		},
	})
}

// Logout ends the admin session. Tokens issued before stay signed but are
// refused until the admin logs in again.
func (h *Handler) Logout(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Admin.Logout(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
