package routes

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"furuth/controllers"
	"furuth/middleware"
)

// CORS applies the allowed origins. An empty list or "*" allows any origin.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}

func RegisterRoutes(r *gin.Engine, h *controllers.Handler) {

	api := r.Group("/api")
	{
		api.GET("/products", h.GetProductsPublic)
		api.GET("/products/:id", h.GetProductByID)

		api.GET("/cart", h.GetCart)
		api.POST("/cart", h.AddToCart)
		api.PUT("/cart/:productId", h.UpdateCart)
		api.DELETE("/cart", h.ClearCart)
		api.DELETE("/cart/:productId", h.RemoveFromCart)

		api.POST("/checkout", h.Checkout)
		api.GET("/orders", h.GetOrders)
		api.GET("/orders/search", h.SearchOrder)

		api.GET("/preferences", h.GetPreferences)
		api.PUT("/preferences", h.UpdatePreferences)

		api.POST("/admin/login", h.Login)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(h.JWTSecret), middleware.AdminMiddleware(h.Admin))
		{
			admin.POST("/logout", h.Logout)

			admin.GET("/products", h.GetProductsAdmin)
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.GET("/products/export", h.ExportProducts)
			admin.GET("/products/export.xlsx", h.ExportProductsExcel)
			admin.POST("/products/import", h.ImportProducts)

			admin.GET("/orders", h.GetOrdersAdmin)
			admin.GET("/orders/:id", h.GetOrderByIDAdmin)
			admin.PUT("/orders/:id/status", h.UpdateOrderStatus)

			admin.GET("/recovery", h.GetRecovery)
			admin.POST("/recovery/restore", h.RestoreProducts)
		}
	}
}
