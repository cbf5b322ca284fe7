package entity

import (
	"time"
)

type ListingDocument struct {
	ID         string    `json:"id" firestore:"id"`
	Type       string    `json:"type" firestore:"type"`
	Name       string    `json:"name" firestore:"name"`
	URL        string    `json:"url" firestore:"url"`
	UploadedAt time.Time `json:"uploaded_at" firestore:"uploadedAt"`
}

// AuctionWindow is optional on a listing; a listing without one is a
// fixed-price listing.
type AuctionWindow struct {
	StartingBid float64   `json:"starting_bid" firestore:"startingBid"`
	StartTime   time.Time `json:"start_time" firestore:"startTime"`
	EndTime     time.Time `json:"end_time" firestore:"endTime"`
}

// Ended reports whether the auction window has closed.
func (w *AuctionWindow) Ended(now time.Time) bool {
	return now.After(w.EndTime)
}

// Started reports whether bidding has opened.
func (w *AuctionWindow) Started(now time.Time) bool {
	return !now.Before(w.StartTime)
}

type Listing struct {
	ID                 string            `json:"id" firestore:"id"`
	SellerID           string            `json:"seller_id" firestore:"sellerId"`
	CompanyName        string            `json:"company_name" firestore:"companyName"`
	CIN                string            `json:"cin" firestore:"cin"`
	RegistrationNumber string            `json:"registration_number" firestore:"registrationNumber"`
	RegisteredAddress  string            `json:"registered_address,omitempty" firestore:"registeredAddress,omitempty"`
	Description        string            `json:"description,omitempty" firestore:"description,omitempty"`
	Documents          []ListingDocument `json:"documents" firestore:"documents"`

	Verified   bool       `json:"verified" firestore:"verified"`
	VerifiedBy string     `json:"verified_by,omitempty" firestore:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty" firestore:"verifiedAt,omitempty"`

	// Highest-bid snapshot, maintained only by the bid ledger and the
	// arbitration engine, never by listing CRUD.
	HighestBid    float64 `json:"highestBid" firestore:"highestBid"`
	HighestBidder string  `json:"highestBidder,omitempty" firestore:"highestBidder,omitempty"`

	Auction *AuctionWindow `json:"auction,omitempty" firestore:"auction,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// VisibleTo implements the buyer-visibility rule: verified listings are
// public, unverified ones are visible only to the owning seller and to
// admin/ca reviewers.
func (l *Listing) VisibleTo(requester *User) bool {
	if l.Verified {
		return true
	}
	if requester == nil {
		return false
	}
	return requester.ID == l.SellerID || requester.IsReviewer()
}
