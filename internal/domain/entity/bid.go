package entity

import (
	"fmt"
	"time"
)

// BidStatus is the canonical bid state set. Storage and API always use the
// lowercase form.
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusActive   BidStatus = "active"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
	BidStatusWon      BidStatus = "won"
	BidStatusLost     BidStatus = "lost"
	BidStatusPaid     BidStatus = "paid"
)

// bidTransitions is the allowed transition graph, checked on every status
// write. rejected, lost and paid are terminal.
var bidTransitions = map[BidStatus][]BidStatus{
	BidStatusPending:  {BidStatusActive, BidStatusAccepted, BidStatusRejected, BidStatusWon, BidStatusLost},
	BidStatusActive:   {BidStatusAccepted, BidStatusRejected, BidStatusWon, BidStatusLost},
	BidStatusAccepted: {BidStatusPaid, BidStatusLost},
	BidStatusWon:      {BidStatusPaid, BidStatusLost},
	BidStatusRejected: {},
	BidStatusLost:     {},
	BidStatusPaid:     {},
}

func (s BidStatus) Valid() bool {
	_, ok := bidTransitions[s]
	return ok
}

func (s BidStatus) CanTransitionTo(next BidStatus) bool {
	for _, allowed := range bidTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s BidStatus) Terminal() bool {
	return len(bidTransitions[s]) == 0
}

// Open reports whether the bid still competes for the listing.
func (s BidStatus) Open() bool {
	return s == BidStatusPending || s == BidStatusActive
}

// Winning reports whether the bid has been resolved as the listing's winner.
func (s BidStatus) Winning() bool {
	return s == BidStatusAccepted || s == BidStatusWon || s == BidStatusPaid
}

type Bid struct {
	ID        string     `json:"id" firestore:"id"`
	ListingID string     `json:"listing_id" firestore:"listingId"`
	BidderID  string     `json:"bidder_id" firestore:"bidderId"`
	Amount    float64    `json:"amount" firestore:"amount"`
	Status    BidStatus  `json:"status" firestore:"status"`
	IsWon     bool       `json:"isWon" firestore:"isWon"`
	WonAt     *time.Time `json:"wonAt,omitempty" firestore:"wonAt,omitempty"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
}

// DeriveWonFields computes the derived isWon/wonAt pair for a status. wonAt
// is stamped with now when entering a winning status and prior is unset,
// kept when already stamped, and cleared when leaving a winning status.
func DeriveWonFields(status BidStatus, prior *time.Time, now time.Time) (bool, *time.Time) {
	if !status.Winning() {
		return false, nil
	}
	if prior != nil {
		return true, prior
	}
	t := now
	return true, &t
}

// Transition moves the bid to next, validating against the transition graph
// and recomputing the derived fields.
func (b *Bid) Transition(next BidStatus, now time.Time) error {
	if !next.Valid() {
		return fmt.Errorf("unknown bid status %q", next)
	}
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("illegal bid transition %s -> %s", b.Status, next)
	}
	b.Status = next
	b.IsWon, b.WonAt = DeriveWonFields(next, b.WonAt, now)
	b.UpdatedAt = now
	return nil
}
