package repository

import (
	"context"

	"bizbid/internal/domain/entity"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	GetByOrderRef(ctx context.Context, orderRef string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	ListByPayer(ctx context.Context, payerID string) ([]*entity.Payment, error)
}
