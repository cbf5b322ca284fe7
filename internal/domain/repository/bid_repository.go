package repository

import (
	"context"

	"bizbid/internal/domain/entity"
)

type BidRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Bid, error)
	Update(ctx context.Context, bid *entity.Bid) error
	Delete(ctx context.Context, id string) error

	// ListByListing returns all bids on a listing, newest first.
	ListByListing(ctx context.Context, listingID string) ([]*entity.Bid, error)
	// ListByBidder returns all bids placed by a bidder, newest first.
	ListByBidder(ctx context.Context, bidderID string) ([]*entity.Bid, error)
	// ListWonByBidder returns the bidder's bids with isWon set, newest first.
	ListWonByBidder(ctx context.Context, bidderID string) ([]*entity.Bid, error)
	CountByListing(ctx context.Context, listingID string) (int64, error)
	// LatestByBidder returns the bidder's most recent bid on a listing, or
	// nil when the bidder has none.
	LatestByBidder(ctx context.Context, listingID, bidderID string) (*entity.Bid, error)
	// DeleteByListing removes every bid on a listing and returns the count.
	DeleteByListing(ctx context.Context, listingID string) (int64, error)

	// PlaceBid persists the bid and advances the listing's highest-bid
	// snapshot in a single transaction. Fails with a Conflict error when the
	// amount does not strictly exceed the current snapshot.
	PlaceBid(ctx context.Context, bid *entity.Bid) error
	// AmendBid raises an open bid's amount and the listing snapshot in a
	// single transaction, under the same strict-increase rule.
	AmendBid(ctx context.Context, bidID string, newAmount float64) (*entity.Bid, error)
	// ResolveListing marks the winner won and every other open bid on the
	// listing lost, atomically. Re-resolving with the same winner is a
	// no-op returning the winner; with a different winner it fails with an
	// InvalidState error.
	ResolveListing(ctx context.Context, listingID, winnerBidID string) (*entity.Bid, error)
}
