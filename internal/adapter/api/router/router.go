package router

import (
	"bizbid/internal/adapter/api/handler"
	"bizbid/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Listing  *handler.ListingHandler
	Bid      *handler.BidHandler
	Admin    *handler.AdminHandler
	Wishlist *handler.WishlistHandler
	Payment  *handler.PaymentHandler
	Health   *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupListingRouter(e, h.Listing, authMiddleware)
	SetupBidRouter(e, h.Bid, authMiddleware)
	SetupAdminRouter(e, h.Admin, authMiddleware, roleMiddleware)
	SetupWishlistRouter(e, h.Wishlist, authMiddleware)
	SetupPaymentRouter(e, h.Payment, authMiddleware)
}
