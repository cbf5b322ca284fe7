package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/pkg/errors"
)

type firestoreBidRepository struct {
	client *firestore.Client
}

func NewFirestoreBidRepository(client *firestore.Client) repository.BidRepository {
	return &firestoreBidRepository{
		client: client,
	}
}

func (r *firestoreBidRepository) GetByID(ctx context.Context, id string) (*entity.Bid, error) {
	doc, err := r.client.Collection("bids").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Bid", err)
		}
		return nil, errors.Internal("Failed to get bid", err)
	}

	var bid entity.Bid
	if err := doc.DataTo(&bid); err != nil {
		return nil, errors.Internal("Failed to parse bid data", err)
	}

	return &bid, nil
}

func (r *firestoreBidRepository) Update(ctx context.Context, bid *entity.Bid) error {
	bid.UpdatedAt = time.Now()

	_, err := r.client.Collection("bids").Doc(bid.ID).Set(ctx, bid)
	if err != nil {
		return errors.Internal("Failed to update bid", err)
	}

	return nil
}

func (r *firestoreBidRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("bids").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete bid", err)
	}

	return nil
}

func (r *firestoreBidRepository) ListByListing(ctx context.Context, listingID string) ([]*entity.Bid, error) {
	query := r.client.Collection("bids").Query.
		Where("listingId", "==", listingID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreBidRepository) ListByBidder(ctx context.Context, bidderID string) ([]*entity.Bid, error) {
	query := r.client.Collection("bids").Query.
		Where("bidderId", "==", bidderID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreBidRepository) ListWonByBidder(ctx context.Context, bidderID string) ([]*entity.Bid, error) {
	query := r.client.Collection("bids").Query.
		Where("bidderId", "==", bidderID).
		Where("isWon", "==", true).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreBidRepository) CountByListing(ctx context.Context, listingID string) (int64, error) {
	docs, err := r.client.Collection("bids").Query.
		Where("listingId", "==", listingID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count bids", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreBidRepository) LatestByBidder(ctx context.Context, listingID, bidderID string) (*entity.Bid, error) {
	docs, err := r.client.Collection("bids").Query.
		Where("listingId", "==", listingID).
		Where("bidderId", "==", bidderID).
		OrderBy("createdAt", firestore.Desc).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to get latest bid", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var bid entity.Bid
	if err := docs[0].DataTo(&bid); err != nil {
		return nil, errors.Internal("Failed to parse bid data", err)
	}
	return &bid, nil
}

func (r *firestoreBidRepository) DeleteByListing(ctx context.Context, listingID string) (int64, error) {
	docs, err := r.client.Collection("bids").Query.
		Where("listingId", "==", listingID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to list bids for deletion", err)
	}

	var deleted int64
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return deleted, errors.Internal("Failed to delete bid", err)
		}
		deleted++
	}
	return deleted, nil
}

// PlaceBid creates the bid and moves the listing's highest-bid snapshot in
// one transaction so concurrent submissions on the same listing serialize.
// A listing whose auction has already been resolved accepts no further bids.
func (r *firestoreBidRepository) PlaceBid(ctx context.Context, bid *entity.Bid) error {
	if bid.ID == "" {
		bid.ID = r.client.Collection("bids").NewDoc().ID
	}

	listingRef := r.client.Collection("listings").Doc(bid.ListingID)
	bidRef := r.client.Collection("bids").Doc(bid.ID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(listingRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}

		existing, err := tx.Documents(r.client.Collection("bids").Query.
			Where("listingId", "==", bid.ListingID)).GetAll()
		if err != nil {
			return errors.Internal("Failed to read listing bids", err)
		}
		for _, doc := range existing {
			var other entity.Bid
			if err := doc.DataTo(&other); err != nil {
				return errors.Internal("Failed to parse bid data", err)
			}
			if other.Status.Winning() {
				return errors.InvalidState("Listing already has an accepted bid", nil)
			}
		}

		if err := checkBidRaise(&listing, bid.Amount); err != nil {
			return err
		}

		now := time.Now()
		bid.Status = entity.BidStatusPending
		bid.IsWon, bid.WonAt = entity.DeriveWonFields(bid.Status, nil, now)
		bid.CreatedAt = now
		bid.UpdatedAt = now

		if err := tx.Set(bidRef, bid); err != nil {
			return errors.Internal("Failed to create bid", err)
		}
		return tx.Update(listingRef, []firestore.Update{
			{Path: "highestBid", Value: bid.Amount},
			{Path: "highestBidder", Value: bid.BidderID},
			{Path: "updatedAt", Value: now},
		})
	})
}

// AmendBid raises an open bid and the snapshot under the same transaction
// and strict-increase rule as PlaceBid.
func (r *firestoreBidRepository) AmendBid(ctx context.Context, bidID string, newAmount float64) (*entity.Bid, error) {
	bidRef := r.client.Collection("bids").Doc(bidID)

	var amended entity.Bid
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		bidDoc, err := tx.Get(bidRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Bid", err)
			}
			return errors.Internal("Failed to get bid", err)
		}

		var bid entity.Bid
		if err := bidDoc.DataTo(&bid); err != nil {
			return errors.Internal("Failed to parse bid data", err)
		}

		if !bid.Status.Open() {
			return errors.InvalidState("Bid can no longer be amended", nil)
		}

		listingRef := r.client.Collection("listings").Doc(bid.ListingID)
		listingDoc, err := tx.Get(listingRef)
		if err != nil {
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := listingDoc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}

		if err := checkBidRaise(&listing, newAmount); err != nil {
			return err
		}

		now := time.Now()
		bid.Amount = newAmount
		bid.UpdatedAt = now
		amended = bid

		if err := tx.Set(bidRef, &bid); err != nil {
			return errors.Internal("Failed to update bid", err)
		}
		return tx.Update(listingRef, []firestore.Update{
			{Path: "highestBid", Value: newAmount},
			{Path: "highestBidder", Value: bid.BidderID},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		return nil, err
	}
	return &amended, nil
}

// ResolveListing settles the auction: exactly one winner, every other open
// bid lost, in a single transaction. Two concurrent accepts on the same
// listing cannot both succeed.
func (r *firestoreBidRepository) ResolveListing(ctx context.Context, listingID, winnerBidID string) (*entity.Bid, error) {
	var winner entity.Bid

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(r.client.Collection("bids").Query.
			Where("listingId", "==", listingID)).GetAll()
		if err != nil {
			return errors.Internal("Failed to read listing bids", err)
		}

		bids := make([]*entity.Bid, 0, len(docs))
		refs := make([]*firestore.DocumentRef, 0, len(docs))
		var winnerIdx = -1
		for i, doc := range docs {
			var bid entity.Bid
			if err := doc.DataTo(&bid); err != nil {
				return errors.Internal("Failed to parse bid data", err)
			}
			bids = append(bids, &bid)
			refs = append(refs, doc.Ref)
			if bid.ID == winnerBidID {
				winnerIdx = i
			}
		}

		if winnerIdx < 0 {
			return errors.NotFound("Bid", nil)
		}

		for _, bid := range bids {
			if !bid.Status.Winning() {
				continue
			}
			if bid.ID == winnerBidID {
				// Re-accepting the resolved winner is a no-op.
				winner = *bid
				return nil
			}
			return errors.InvalidState("Listing already has an accepted bid", nil)
		}

		now := time.Now()
		for i, bid := range bids {
			if i == winnerIdx {
				if err := bid.Transition(entity.BidStatusWon, now); err != nil {
					return errors.InvalidState(fmt.Sprintf("Bid cannot be accepted from status %s", bid.Status), err)
				}
				winner = *bid
			} else if bid.Status.Open() {
				if err := bid.Transition(entity.BidStatusLost, now); err != nil {
					return errors.Internal("Failed to mark competing bid lost", err)
				}
			} else {
				continue
			}
			if err := tx.Set(refs[i], bid); err != nil {
				return errors.Internal("Failed to write bid", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &winner, nil
}

// checkBidRaise enforces the monotonic-auction policy against the snapshot;
// the first bid on an auction listing must also meet the starting bid.
func checkBidRaise(listing *entity.Listing, amount float64) error {
	if amount <= listing.HighestBid {
		return errors.Conflict(fmt.Sprintf("Bid must exceed the current highest bid of %.2f", listing.HighestBid))
	}
	if listing.Auction != nil && listing.HighestBid == 0 && amount < listing.Auction.StartingBid {
		return errors.Conflict(fmt.Sprintf("Bid must meet the starting bid of %.2f", listing.Auction.StartingBid))
	}
	return nil
}

func (r *firestoreBidRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Bid, error) {
	iter := query.Documents(ctx)
	var bids []*entity.Bid

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate bids", err)
		}
		var bid entity.Bid
		if err := doc.DataTo(&bid); err != nil {
			return nil, errors.Internal("Failed to parse bid data", err)
		}
		bids = append(bids, &bid)
	}

	return bids, nil
}
