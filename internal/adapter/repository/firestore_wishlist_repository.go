package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/pkg/errors"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

// Doc IDs are buyerId_listingId, which makes (buyer, listing) uniqueness a
// document-existence check.
func wishlistDocID(buyerID, listingID string) string {
	return fmt.Sprintf("%s_%s", buyerID, listingID)
}

func (r *firestoreWishlistRepository) Add(ctx context.Context, entry *entity.WishlistEntry) error {
	entry.ID = wishlistDocID(entry.BuyerID, entry.ListingID)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	exists, err := r.Contains(ctx, entry.BuyerID, entry.ListingID)
	if err != nil {
		return err
	}
	if exists {
		return errors.Conflict("Listing already in wishlist")
	}

	_, err = r.client.Collection("wishlists").Doc(entry.ID).Set(ctx, entry)
	if err != nil {
		return errors.Internal("Failed to add to wishlist", err)
	}
	return nil
}

func (r *firestoreWishlistRepository) Remove(ctx context.Context, buyerID, listingID string) error {
	_, err := r.client.Collection("wishlists").Doc(wishlistDocID(buyerID, listingID)).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return errors.Internal("Failed to remove from wishlist", err)
	}
	return nil
}

func (r *firestoreWishlistRepository) Contains(ctx context.Context, buyerID, listingID string) (bool, error) {
	doc, err := r.client.Collection("wishlists").Doc(wishlistDocID(buyerID, listingID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check wishlist", err)
	}
	return doc.Exists(), nil
}

func (r *firestoreWishlistRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.WishlistEntry, error) {
	docs, err := r.client.Collection("wishlists").Query.
		Where("buyerId", "==", buyerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to get wishlist", err)
	}

	entries := make([]*entity.WishlistEntry, 0, len(docs))
	for _, doc := range docs {
		var entry entity.WishlistEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, errors.Internal("Failed to parse wishlist entry", err)
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

func (r *firestoreWishlistRepository) DeleteByListing(ctx context.Context, listingID string) (int64, error) {
	docs, err := r.client.Collection("wishlists").Query.
		Where("listingId", "==", listingID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to list wishlist entries for deletion", err)
	}

	var deleted int64
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return deleted, errors.Internal("Failed to delete wishlist entry", err)
		}
		deleted++
	}
	return deleted, nil
}
