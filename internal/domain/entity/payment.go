package entity

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment records a settlement attempt for a won bid. Immutable once
// status is success.
type Payment struct {
	ID        string        `json:"id" firestore:"id"`
	ListingID string        `json:"listing_id" firestore:"listingId"`
	PayerID   string        `json:"payer_id" firestore:"payerId"`
	BidID     string        `json:"bid_id" firestore:"bidId"`
	Amount    float64       `json:"amount" firestore:"amount"`
	Status    PaymentStatus `json:"status" firestore:"status"`

	// Gateway references: OrderRef is ours, PaymentRef is assigned by the
	// gateway on settlement.
	OrderRef   string `json:"order_ref" firestore:"orderRef"`
	PaymentRef string `json:"payment_ref,omitempty" firestore:"paymentRef,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
