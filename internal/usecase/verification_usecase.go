package usecase

import (
	"context"
	"time"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/pkg/errors"
	"bizbid/pkg/logger"
)

// VerificationUseCase is the admin/CA gate that flips a listing from
// pending to buyer-visible, or removes it.
type VerificationUseCase struct {
	listingRepo  repository.ListingRepository
	bidRepo      repository.BidRepository
	wishlistRepo repository.WishlistRepository
	userRepo     repository.UserRepository
}

func NewVerificationUseCase(
	listingRepo repository.ListingRepository,
	bidRepo repository.BidRepository,
	wishlistRepo repository.WishlistRepository,
	userRepo repository.UserRepository,
) *VerificationUseCase {
	return &VerificationUseCase{
		listingRepo:  listingRepo,
		bidRepo:      bidRepo,
		wishlistRepo: wishlistRepo,
		userRepo:     userRepo,
	}
}

func (uc *VerificationUseCase) Verify(ctx context.Context, listingID, actorID string) (*entity.Listing, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleAdmin, entity.RoleCA); err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Verified {
		return nil, errors.InvalidState("Listing is already verified", nil)
	}

	now := time.Now()
	listing.Verified = true
	listing.VerifiedBy = actorID
	listing.VerifiedAt = &now

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	logger.Info("Listing verified", logger.Fields{
		"listingId": listingID,
		"actorId":   actorID,
	})
	return listing, nil
}

// Reject hard-deletes the listing and cascade-deletes its bids and wishlist
// entries so nothing dangles.
func (uc *VerificationUseCase) Reject(ctx context.Context, listingID, actorID string) error {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if err := requireRole(actor, entity.RoleAdmin, entity.RoleCA); err != nil {
		return err
	}

	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		return err
	}

	if err := uc.listingRepo.Delete(ctx, listingID); err != nil {
		return err
	}

	bidsDeleted, err := uc.bidRepo.DeleteByListing(ctx, listingID)
	if err != nil {
		return err
	}
	wishlistDeleted, err := uc.wishlistRepo.DeleteByListing(ctx, listingID)
	if err != nil {
		return err
	}

	logger.Warn("Listing rejected and removed", logger.Fields{
		"listingId":       listingID,
		"actorId":         actorID,
		"bidsDeleted":     bidsDeleted,
		"wishlistDeleted": wishlistDeleted,
	})
	return nil
}

func (uc *VerificationUseCase) ListPending(ctx context.Context, actorID string, limit, offset int) ([]*entity.Listing, int64, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	if err := requireRole(actor, entity.RoleAdmin, entity.RoleCA); err != nil {
		return nil, 0, err
	}

	return uc.listingRepo.ListPending(ctx, limit, offset)
}
