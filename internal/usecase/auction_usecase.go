package usecase

import (
	"context"
	"time"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/pkg/errors"
	"bizbid/pkg/logger"
)

// AuctionUseCase is the arbitration engine: it resolves competing bids into
// exactly one winner per listing, exactly once.
type AuctionUseCase struct {
	bidRepo     repository.BidRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewAuctionUseCase(
	bidRepo repository.BidRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) *AuctionUseCase {
	return &AuctionUseCase{
		bidRepo:     bidRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

// AcceptBid resolves the bid's listing in its favor. The winner moves to
// won and every other open bid on the listing moves to lost in the same
// repository transaction. Accepting the resolved winner again is a no-op;
// accepting a different bid on a resolved listing fails.
func (uc *AuctionUseCase) AcceptBid(ctx context.Context, bidID, actorID string) (*entity.Bid, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleAdmin, entity.RoleCA); err != nil {
		return nil, err
	}

	bid, err := uc.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	winner, err := uc.bidRepo.ResolveListing(ctx, bid.ListingID, bidID)
	if err != nil {
		return nil, err
	}

	logger.Info("Bid accepted", logger.Fields{
		"bidId":     winner.ID,
		"listingId": winner.ListingID,
		"actorId":   actorID,
	})
	return winner, nil
}

func (uc *AuctionUseCase) RejectBid(ctx context.Context, bidID, actorID string) (*entity.Bid, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleAdmin, entity.RoleCA); err != nil {
		return nil, err
	}

	bid, err := uc.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if !bid.Status.Open() {
		return nil, errors.InvalidState("Bid is already resolved", nil)
	}

	if err := bid.Transition(entity.BidStatusRejected, time.Now()); err != nil {
		return nil, errors.InvalidState("Bid cannot be rejected", err)
	}
	if err := uc.bidRepo.Update(ctx, bid); err != nil {
		return nil, err
	}

	logger.Info("Bid rejected", logger.Fields{
		"bidId":     bid.ID,
		"listingId": bid.ListingID,
		"actorId":   actorID,
	})
	return bid, nil
}

// CloseAuction is the lazy auction-window close: once the window has ended
// it accepts the highest open bid. There is no background timer; admins
// trigger this after the end time.
func (uc *AuctionUseCase) CloseAuction(ctx context.Context, listingID, actorID string) (*entity.Bid, error) {
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
	if listing.Auction == nil {
		return nil, errors.InvalidState("Listing has no auction window", nil)
	}
	if !listing.Auction.Ended(time.Now()) {
		return nil, errors.InvalidState("Auction is still open", nil)
	}

	bids, err := uc.bidRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	var highest *entity.Bid
	for _, bid := range bids {
		if !bid.Status.Open() {
			continue
		}
		if highest == nil || bid.Amount > highest.Amount {
			highest = bid
		}
	}
	if highest == nil {
		logger.Info("Auction closed without bids", logger.Fields{"listingId": listingID})
		return nil, nil
	}

	winner, err := uc.bidRepo.ResolveListing(ctx, listingID, highest.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Auction closed", logger.Fields{
		"listingId": listingID,
		"winnerBid": winner.ID,
		"amount":    winner.Amount,
	})
	return winner, nil
}
