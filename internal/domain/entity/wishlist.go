package entity

import (
	"time"
)

// WishlistEntry bookmarks a listing for a buyer. SellerID is denormalized
// at add time. Unique per (buyer, listing).
type WishlistEntry struct {
	ID        string    `json:"id" firestore:"id"`
	BuyerID   string    `json:"buyer_id" firestore:"buyerId"`
	ListingID string    `json:"listing_id" firestore:"listingId"`
	SellerID  string    `json:"seller_id" firestore:"sellerId"`
	Notes     string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
