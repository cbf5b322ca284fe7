package router

import (
	"bizbid/internal/adapter/api/handler"
	"bizbid/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupBidRouter(e *echo.Echo, bidHandler *handler.BidHandler, authMiddleware *middleware.AuthMiddleware) {
	bids := e.Group("/v1/bids")
	bids.Use(authMiddleware.Authenticate)
	bids.POST("", bidHandler.SubmitBid)
	bids.PUT("/:id", bidHandler.AmendBid)
	bids.DELETE("/:id", bidHandler.CancelBid)

	myBids := e.Group("/v1/my-bids")
	myBids.Use(authMiddleware.Authenticate)
	myBids.GET("", bidHandler.ListMyBids)
	myBids.GET("/won", bidHandler.ListMyWonBids)

	listingBids := e.Group("/v1/listings/:listingId/bids")
	listingBids.Use(authMiddleware.Authenticate)
	listingBids.GET("", bidHandler.ListBidsForListing)
}
