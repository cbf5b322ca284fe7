package repository

import (
	"context"

	"bizbid/internal/domain/entity"
)

type WishlistRepository interface {
	// Add stores the entry; fails with a Conflict error when the buyer
	// already saved the listing.
	Add(ctx context.Context, entry *entity.WishlistEntry) error

	// Remove deletes the entry; no-op when absent.
	Remove(ctx context.Context, buyerID, listingID string) error

	Contains(ctx context.Context, buyerID, listingID string) (bool, error)

	// ListByBuyer returns the buyer's entries, newest first.
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.WishlistEntry, error)

	// DeleteByListing removes every entry referencing a listing and returns
	// the count.
	DeleteByListing(ctx context.Context, listingID string) (int64, error)
}
