package router

import (
	"bizbid/internal/adapter/api/handler"
	"bizbid/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupListingRouter(e *echo.Echo, listingHandler *handler.ListingHandler, authMiddleware *middleware.AuthMiddleware) {
	// Public browse surface; a token widens visibility for reviewers and
	// owners.
	listings := e.Group("/v1/listings")
	listings.Use(authMiddleware.OptionalAuthenticate)
	listings.GET("", listingHandler.ListListings)
	listings.GET("/:id", listingHandler.GetListing)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(authMiddleware.Authenticate)
	myListings.GET("", listingHandler.ListMyListings)
	myListings.POST("", listingHandler.CreateListing)
	myListings.PUT("/:id", listingHandler.UpdateListing)
	myListings.DELETE("/:id", listingHandler.DeleteListing)
	myListings.PUT("/:id/auction", listingHandler.SetAuction)
	myListings.POST("/:id/documents", listingHandler.UploadDocument)
}
