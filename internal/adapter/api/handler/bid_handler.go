package handler

import (
	"bizbid/internal/usecase"
	"bizbid/pkg/errors"
	"bizbid/pkg/response"

	"github.com/labstack/echo/v4"
)

type BidHandler struct {
	bidUseCase *usecase.BidUseCase
}

func NewBidHandler(bidUseCase *usecase.BidUseCase) *BidHandler {
	return &BidHandler{
		bidUseCase: bidUseCase,
	}
}

type submitBidRequest struct {
	ListingID string  `json:"listing_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

type amendBidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *BidHandler) SubmitBid(c echo.Context) error {
	var req submitBidRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	bidderID := c.Get("uid").(string)

	bid, err := h.bidUseCase.SubmitBid(c.Request().Context(), bidderID, usecase.SubmitBidInput{
		ListingID: req.ListingID,
		Amount:    req.Amount,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, bid)
}

func (h *BidHandler) AmendBid(c echo.Context) error {
	var req amendBidRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	bidderID := c.Get("uid").(string)

	bid, err := h.bidUseCase.AmendBid(c.Request().Context(), c.Param("id"), bidderID, req.Amount)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bid)
}

func (h *BidHandler) CancelBid(c echo.Context) error {
	bidderID := c.Get("uid").(string)

	if err := h.bidUseCase.CancelBid(c.Request().Context(), c.Param("id"), bidderID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Bid cancelled successfully",
	})
}

func (h *BidHandler) ListBidsForListing(c echo.Context) error {
	listingID := c.Param("listingId")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	bids, err := h.bidUseCase.ListBidsFor(c.Request().Context(), listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bids)
}

func (h *BidHandler) ListMyBids(c echo.Context) error {
	bidderID := c.Get("uid").(string)

	bids, err := h.bidUseCase.ListBidsByBidder(c.Request().Context(), bidderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bids)
}

func (h *BidHandler) ListMyWonBids(c echo.Context) error {
	bidderID := c.Get("uid").(string)

	bids, err := h.bidUseCase.ListWonBids(c.Request().Context(), bidderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bids)
}
