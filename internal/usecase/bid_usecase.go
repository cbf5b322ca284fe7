package usecase

import (
	"context"
	"time"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/pkg/errors"
	"bizbid/pkg/logger"
)

// BidUseCase is the bid ledger: it validates and persists bid submissions,
// amendments and cancellations under the monotonic-auction policy.
type BidUseCase struct {
	bidRepo     repository.BidRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewBidUseCase(
	bidRepo repository.BidRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) *BidUseCase {
	return &BidUseCase{
		bidRepo:     bidRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

type SubmitBidInput struct {
	ListingID string  `json:"listing_id"`
	Amount    float64 `json:"amount"`
}

func (uc *BidUseCase) SubmitBid(ctx context.Context, bidderID string, input SubmitBidInput) (*entity.Bid, error) {
	bidder, err := uc.userRepo.GetByID(ctx, bidderID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(bidder, entity.RoleBuyer); err != nil {
		return nil, err
	}

	if input.Amount <= 0 {
		return nil, errors.BadRequest("Bid amount must be greater than zero", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	if listing.SellerID == bidderID {
		return nil, errors.Forbidden("You cannot bid on your own listing", nil)
	}
	if !listing.Verified {
		return nil, errors.InvalidState("Listing is not verified for bidding", nil)
	}

	now := time.Now()
	if listing.Auction != nil {
		if !listing.Auction.Started(now) {
			return nil, errors.InvalidState("Auction has not started yet", nil)
		}
		if listing.Auction.Ended(now) {
			return nil, errors.InvalidState("Auction has ended", nil)
		}
	}

	bid := &entity.Bid{
		ListingID: input.ListingID,
		BidderID:  bidderID,
		Amount:    input.Amount,
	}

	// The strict-increase check and the snapshot update happen inside the
	// repository transaction.
	if err := uc.bidRepo.PlaceBid(ctx, bid); err != nil {
		return nil, err
	}

	logger.Info("Bid placed", logger.Fields{
		"bidId":     bid.ID,
		"listingId": bid.ListingID,
		"amount":    bid.Amount,
	})
	return bid, nil
}

func (uc *BidUseCase) AmendBid(ctx context.Context, bidID, bidderID string, newAmount float64) (*entity.Bid, error) {
	if newAmount <= 0 {
		return nil, errors.BadRequest("Bid amount must be greater than zero", nil)
	}

	bid, err := uc.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.BidderID != bidderID {
		return nil, errors.Forbidden("You can only amend your own bids", nil)
	}
	if !bid.Status.Open() {
		return nil, errors.InvalidState("Bid can no longer be amended", nil)
	}

	return uc.bidRepo.AmendBid(ctx, bidID, newAmount)
}

func (uc *BidUseCase) CancelBid(ctx context.Context, bidID, bidderID string) error {
	bid, err := uc.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		return err
	}
	if bid.BidderID != bidderID {
		return errors.Forbidden("You can only cancel your own bids", nil)
	}
	if !bid.Status.Open() {
		return errors.InvalidState("Bid can no longer be cancelled", nil)
	}

	if err := uc.bidRepo.Delete(ctx, bidID); err != nil {
		return err
	}

	// The highest-bid snapshot is intentionally not rolled back; the next
	// valid bid must still exceed it.
	logger.Info("Bid cancelled", logger.Fields{
		"bidId":     bidID,
		"listingId": bid.ListingID,
	})
	return nil
}

func (uc *BidUseCase) ListBidsFor(ctx context.Context, listingID string) ([]*entity.Bid, error) {
	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return uc.bidRepo.ListByListing(ctx, listingID)
}

func (uc *BidUseCase) ListBidsByBidder(ctx context.Context, bidderID string) ([]*entity.Bid, error) {
	return uc.bidRepo.ListByBidder(ctx, bidderID)
}

func (uc *BidUseCase) ListWonBids(ctx context.Context, bidderID string) ([]*entity.Bid, error) {
	return uc.bidRepo.ListWonByBidder(ctx, bidderID)
}
