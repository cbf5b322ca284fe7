package handler

import (
	"bizbid/internal/usecase"
	"bizbid/pkg/errors"
	"bizbid/pkg/response"
	"bizbid/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req usecase.CreateListingInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), sellerID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req usecase.UpdateListingInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), c.Param("id"), sellerID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) SetAuction(c echo.Context) error {
	var req usecase.SetAuctionInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.SetAuctionWindow(c.Request().Context(), c.Param("id"), sellerID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) UploadDocument(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read file", err))
	}
	defer file.Close()

	docType := c.FormValue("type")
	if docType == "" {
		docType = "other"
	}

	listing, err := h.listingUseCase.UploadDocument(
		c.Request().Context(),
		c.Param("id"),
		sellerID,
		file,
		fileHeader.Header.Get("Content-Type"),
		docType,
		fileHeader.Filename,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	requesterID, _ := c.Get("uid").(string)

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"), requesterID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	requesterID, _ := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	items, total, err := h.listingUseCase.ListListings(c.Request().Context(), requesterID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	items, total, err := h.listingUseCase.ListMyListings(c.Request().Context(), sellerID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), c.Param("id"), sellerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing deleted successfully",
	})
}
