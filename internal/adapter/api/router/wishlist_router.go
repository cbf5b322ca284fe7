package router

import (
	"bizbid/internal/adapter/api/handler"
	"bizbid/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupWishlistRouter(e *echo.Echo, wishlistHandler *handler.WishlistHandler, authMiddleware *middleware.AuthMiddleware) {
	wishlist := e.Group("/v1/wishlist")
	wishlist.Use(authMiddleware.Authenticate)
	wishlist.GET("", wishlistHandler.GetWishlist)
	wishlist.POST("/:listingId", wishlistHandler.AddToWishlist)
	wishlist.DELETE("/:listingId", wishlistHandler.RemoveFromWishlist)
}
