package handler

import (
	"bizbid/internal/usecase"
	"bizbid/pkg/errors"
	"bizbid/pkg/response"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

type addWishlistRequest struct {
	Notes string `json:"notes"`
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	buyerID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	var req addWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	entry, err := h.wishlistUseCase.AddToWishlist(c.Request().Context(), buyerID, listingID, req.Notes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, entry)
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	buyerID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	if err := h.wishlistUseCase.RemoveFromWishlist(c.Request().Context(), buyerID, listingID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing removed from wishlist successfully",
	})
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	buyerID := c.Get("uid").(string)

	views, err := h.wishlistUseCase.ViewWishlist(c.Request().Context(), buyerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, views)
}
