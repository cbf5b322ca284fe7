package handler

import (
	"bizbid/internal/usecase"
	"bizbid/pkg/response"
	"bizbid/pkg/utils"

	"github.com/labstack/echo/v4"
)

// AdminHandler exposes the reviewer surface: verification and bid
// arbitration.
type AdminHandler struct {
	verificationUseCase *usecase.VerificationUseCase
	auctionUseCase      *usecase.AuctionUseCase
}

func NewAdminHandler(verificationUseCase *usecase.VerificationUseCase, auctionUseCase *usecase.AuctionUseCase) *AdminHandler {
	return &AdminHandler{
		verificationUseCase: verificationUseCase,
		auctionUseCase:      auctionUseCase,
	}
}

func (h *AdminHandler) VerifyListing(c echo.Context) error {
	actorID := c.Get("uid").(string)

	listing, err := h.verificationUseCase.Verify(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *AdminHandler) RejectListing(c echo.Context) error {
	actorID := c.Get("uid").(string)

	if err := h.verificationUseCase.Reject(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing rejected and removed",
	})
}

func (h *AdminHandler) ListPendingListings(c echo.Context) error {
	actorID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	items, total, err := h.verificationUseCase.ListPending(c.Request().Context(), actorID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) AcceptBid(c echo.Context) error {
	actorID := c.Get("uid").(string)

	bid, err := h.auctionUseCase.AcceptBid(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bid)
}

func (h *AdminHandler) RejectBid(c echo.Context) error {
	actorID := c.Get("uid").(string)

	bid, err := h.auctionUseCase.RejectBid(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bid)
}

func (h *AdminHandler) CloseAuction(c echo.Context) error {
	actorID := c.Get("uid").(string)

	winner, err := h.auctionUseCase.CloseAuction(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return response.Error(c, err)
	}

	if winner == nil {
		return response.Success(c, map[string]string{
			"message": "Auction closed without bids",
		})
	}
	return response.Success(c, winner)
}
