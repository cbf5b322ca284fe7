package usecase

import (
	"context"
	"fmt"
	"time"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/pkg/errors"
	"bizbid/pkg/logger"
)

// WishlistUseCase projects a buyer's saved listings merged with live
// auction state. Derived fields are computed at read time, never stored.
type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	listingRepo  repository.ListingRepository
	bidRepo      repository.BidRepository
	userRepo     repository.UserRepository
}

func NewWishlistUseCase(
	wishlistRepo repository.WishlistRepository,
	listingRepo repository.ListingRepository,
	bidRepo repository.BidRepository,
	userRepo repository.UserRepository,
) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		listingRepo:  listingRepo,
		bidRepo:      bidRepo,
		userRepo:     userRepo,
	}
}

const (
	WatchStatusLive   = "Live"
	WatchStatusOutbid = "Outbid"
	WatchStatusEnded  = "Ended"
)

type WishlistView struct {
	ID          string `json:"id"`
	ListingID   string `json:"listing_id"`
	SellerID    string `json:"seller_id"`
	CompanyName string `json:"company_name"`
	Notes       string `json:"notes,omitempty"`

	CurrentHighestBid float64 `json:"currentHighestBid"`
	BidsCount         int64   `json:"bidsCount"`
	MyBidAmount       float64 `json:"myBidAmount"`
	TimeLeft          string  `json:"timeLeft"`
	Status            string  `json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

func (uc *WishlistUseCase) AddToWishlist(ctx context.Context, buyerID, listingID, notes string) (*entity.WishlistEntry, error) {
	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(buyer, entity.RoleBuyer); err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID == buyerID {
		return nil, errors.BadRequest("Cannot add your own listing to wishlist", nil)
	}

	entry := &entity.WishlistEntry{
		BuyerID:   buyerID,
		ListingID: listingID,
		SellerID:  listing.SellerID,
		Notes:     notes,
	}
	if err := uc.wishlistRepo.Add(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("Listing added to wishlist", logger.Fields{
		"buyerId":   buyerID,
		"listingId": listingID,
	})
	return entry, nil
}

// RemoveFromWishlist is an idempotent no-op when the entry is absent.
func (uc *WishlistUseCase) RemoveFromWishlist(ctx context.Context, buyerID, listingID string) error {
	return uc.wishlistRepo.Remove(ctx, buyerID, listingID)
}

func (uc *WishlistUseCase) ViewWishlist(ctx context.Context, buyerID string) ([]WishlistView, error) {
	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(buyer, entity.RoleBuyer); err != nil {
		return nil, err
	}

	entries, err := uc.wishlistRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]WishlistView, 0, len(entries))
	for _, entry := range entries {
		listing, err := uc.listingRepo.GetByID(ctx, entry.ListingID)
		if err != nil {
			// Cascade delete should prevent dangling entries; skip if one
			// slipped through.
			logger.Warn("Wishlist entry references missing listing", logger.Fields{
				"buyerId":   buyerID,
				"listingId": entry.ListingID,
			})
			continue
		}

		bidsCount, err := uc.bidRepo.CountByListing(ctx, entry.ListingID)
		if err != nil {
			return nil, err
		}

		var myBidAmount float64
		myBid, err := uc.bidRepo.LatestByBidder(ctx, entry.ListingID, buyerID)
		if err != nil {
			return nil, err
		}
		if myBid != nil {
			myBidAmount = myBid.Amount
		}

		timeLeft := deriveTimeLeft(listing.Auction, now)
		views = append(views, WishlistView{
			ID:                entry.ID,
			ListingID:         entry.ListingID,
			SellerID:          entry.SellerID,
			CompanyName:       listing.CompanyName,
			Notes:             entry.Notes,
			CurrentHighestBid: listing.HighestBid,
			BidsCount:         bidsCount,
			MyBidAmount:       myBidAmount,
			TimeLeft:          timeLeft,
			Status:            deriveWatchStatus(timeLeft, myBidAmount, listing.HighestBid),
			CreatedAt:         entry.CreatedAt,
		})
	}

	return views, nil
}

// deriveTimeLeft renders the remaining auction time as "{hours}h {minutes}m
// left", "Ended" once past, or "N/A" for fixed-price listings.
func deriveTimeLeft(auction *entity.AuctionWindow, now time.Time) string {
	if auction == nil {
		return "N/A"
	}
	if auction.Ended(now) {
		return "Ended"
	}
	remaining := auction.EndTime.Sub(now)
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	return fmt.Sprintf("%dh %dm left", hours, minutes)
}

func deriveWatchStatus(timeLeft string, myBidAmount, currentHighestBid float64) string {
	if timeLeft == "Ended" {
		return WatchStatusEnded
	}
	if myBidAmount > 0 && myBidAmount < currentHighestBid {
		return WatchStatusOutbid
	}
	return WatchStatusLive
}
