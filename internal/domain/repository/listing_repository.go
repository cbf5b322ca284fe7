package repository

import (
	"context"

	"bizbid/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error

	// ListVerified returns buyer-visible listings, newest first.
	ListVerified(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error)
	// ListAll returns every listing regardless of verification, newest first.
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error)
	// ListPending returns unverified listings, newest first.
	ListPending(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Listing, int64, error)
}
