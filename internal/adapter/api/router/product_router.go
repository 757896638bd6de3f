package router

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/adapter/api/handler"
	"peermarket/internal/adapter/api/middleware"
)

// SetupProductRouter sets up listing routes. Browsing is public; mutations
// require authentication.
func SetupProductRouter(e *echo.Echo, productHandler *handler.ProductHandler, authMiddleware *middleware.AuthMiddleware) {
	products := e.Group("/v1/products")

	products.GET("", productHandler.ListProducts)        // GET /v1/products - browse with filters
	products.GET("/:id", productHandler.GetProduct)      // GET /v1/products/:id - listing detail

	authed := e.Group("/v1/products")
	authed.Use(authMiddleware.Authenticate)

	authed.POST("", productHandler.CreateProduct)        // POST /v1/products - create listing
	authed.PATCH("/:id", productHandler.UpdateProduct)   // PATCH /v1/products/:id - edit own listing
	authed.DELETE("/:id", productHandler.DeleteProduct)  // DELETE /v1/products/:id - soft delete own listing

	my := e.Group("/v1/my/products")
	my.Use(authMiddleware.Authenticate)
	my.GET("", productHandler.ListMyProducts)            // GET /v1/my/products - own listings, any status

	sellers := e.Group("/v1/sellers")
	sellers.GET("/:id/products", productHandler.ListSellerProducts) // GET /v1/sellers/:id/products - public seller page, active only
}
