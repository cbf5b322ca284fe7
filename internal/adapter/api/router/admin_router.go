package router

import (
	"bizbid/internal/adapter/api/handler"
	"bizbid/internal/adapter/api/middleware"
	"bizbid/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(e *echo.Echo, adminHandler *handler.AdminHandler, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.Require(entity.RoleAdmin, entity.RoleCA))

	admin.GET("/listings/pending", adminHandler.ListPendingListings)
	admin.POST("/listings/:id/verify", adminHandler.VerifyListing)
	admin.POST("/listings/:id/reject", adminHandler.RejectListing)
	admin.POST("/listings/:id/close-auction", adminHandler.CloseAuction)

	admin.POST("/bids/:id/accept", adminHandler.AcceptBid)
	admin.POST("/bids/:id/reject", adminHandler.RejectBid)
}
