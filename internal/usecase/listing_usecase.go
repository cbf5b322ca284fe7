package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/internal/domain/service"
	"bizbid/pkg/errors"
	"bizbid/pkg/logger"
)

// ListingUseCase owns the seller-facing listing lifecycle. Verification and
// the highest-bid snapshot are written elsewhere; this layer never touches
// them.
type ListingUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	uploader    FileUploader
	mailer      service.Mailer
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	uploader FileUploader,
	mailer service.Mailer,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		uploader:    uploader,
		mailer:      mailer,
	}
}

type CreateListingInput struct {
	CompanyName        string `json:"company_name" validate:"required"`
	CIN                string `json:"cin" validate:"required"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	RegisteredAddress  string `json:"registered_address"`
	Description        string `json:"description"`
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(seller, entity.RoleSeller); err != nil {
		return nil, err
	}

	listing := &entity.Listing{
		SellerID:           sellerID,
		CompanyName:        input.CompanyName,
		CIN:                input.CIN,
		RegistrationNumber: input.RegistrationNumber,
		RegisteredAddress:  input.RegisteredAddress,
		Description:        input.Description,
		Documents:          []entity.ListingDocument{},
		Verified:           false,
	}
	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	// Confirmation mail is fire-and-forget; listing creation never fails on
	// a mail outage.
	go func() {
		subject := "Listing submitted for verification"
		body := fmt.Sprintf("Your listing for %s has been received and is awaiting verification.", listing.CompanyName)
		if err := uc.mailer.Send(seller.Email, subject, body); err != nil {
			logger.Warn("Listing confirmation email failed", logger.Fields{
				"listingId": listing.ID,
				"error":     err.Error(),
			})
		}
	}()

	logger.Info("Listing created", logger.Fields{
		"listingId": listing.ID,
		"sellerId":  sellerID,
	})
	return listing, nil
}

type UpdateListingInput struct {
	CompanyName       string `json:"company_name"`
	RegisteredAddress string `json:"registered_address"`
	Description       string `json:"description"`
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, listingID, sellerID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You can only update your own listings", nil)
	}

	if input.CompanyName != "" {
		listing.CompanyName = input.CompanyName
	}
	if input.RegisteredAddress != "" {
		listing.RegisteredAddress = input.RegisteredAddress
	}
	if input.Description != "" {
		listing.Description = input.Description
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

type SetAuctionInput struct {
	StartingBid float64   `json:"starting_bid" validate:"required,gt=0"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
}

func (uc *ListingUseCase) SetAuctionWindow(ctx context.Context, listingID, sellerID string, input SetAuctionInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You can only configure your own listings", nil)
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, errors.BadRequest("Auction end time must be after start time", nil)
	}
	if listing.HighestBid > 0 {
		return nil, errors.InvalidState("Cannot change the auction window after bidding has started", nil)
	}

	listing.Auction = &entity.AuctionWindow{
		StartingBid: input.StartingBid,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
	}
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	logger.Info("Auction window set", logger.Fields{
		"listingId":   listingID,
		"startingBid": input.StartingBid,
	})
	return listing, nil
}

func (uc *ListingUseCase) UploadDocument(ctx context.Context, listingID, sellerID string, file io.Reader, contentType, docType, name string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You can only upload documents to your own listings", nil)
	}

	url, err := uc.uploader.UploadFile(ctx, file, contentType, "listing-documents")
	if err != nil {
		return nil, err
	}

	listing.Documents = append(listing.Documents, entity.ListingDocument{
		ID:         uuid.New().String(),
		Type:       docType,
		Name:       name,
		URL:        url,
		UploadedAt: time.Now(),
	})
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	logger.Info("Listing document uploaded", logger.Fields{
		"listingId": listingID,
		"type":      docType,
	})
	return listing, nil
}

// GetListing enforces the visibility rule: an unverified listing is reported
// as not found to anyone but its seller and reviewers.
func (uc *ListingUseCase) GetListing(ctx context.Context, listingID, requesterID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	var requester *entity.User
	if requesterID != "" {
		requester, err = uc.userRepo.GetByID(ctx, requesterID)
		if err != nil && !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
	}
	if !listing.VisibleTo(requester) {
		return nil, errors.NotFound("Listing", nil)
	}
	return listing, nil
}

// ListListings returns verified listings for buyers and sellers; reviewers
// see everything.
func (uc *ListingUseCase) ListListings(ctx context.Context, requesterID string, limit, offset int) ([]*entity.Listing, int64, error) {
	if requesterID != "" {
		requester, err := uc.userRepo.GetByID(ctx, requesterID)
		if err == nil && requester.IsReviewer() {
			return uc.listingRepo.ListAll(ctx, limit, offset)
		}
	}
	return uc.listingRepo.ListVerified(ctx, limit, offset)
}

func (uc *ListingUseCase) ListMyListings(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListBySellerID(ctx, sellerID, limit, offset)
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, listingID, sellerID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID {
		return errors.Forbidden("You can only delete your own listings", nil)
	}
	if listing.HighestBid > 0 {
		return errors.InvalidState("Cannot delete a listing with active bids", nil)
	}
	return uc.listingRepo.Delete(ctx, listingID)
}
