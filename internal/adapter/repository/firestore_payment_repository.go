package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/pkg/errors"
)

type firestorePaymentRepository struct {
	client *firestore.Client
}

func NewFirestorePaymentRepository(client *firestore.Client) repository.PaymentRepository {
	return &firestorePaymentRepository{client: client}
}

func (r *firestorePaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = r.client.Collection("payments").NewDoc().ID
	}

	now := time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	_, err := r.client.Collection("payments").Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to create payment", err)
	}
	return nil
}

func (r *firestorePaymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	doc, err := r.client.Collection("payments").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Payment", err)
		}
		return nil, errors.Internal("Failed to get payment", err)
	}

	var payment entity.Payment
	if err := doc.DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}
	return &payment, nil
}

func (r *firestorePaymentRepository) GetByOrderRef(ctx context.Context, orderRef string) (*entity.Payment, error) {
	docs, err := r.client.Collection("payments").Query.
		Where("orderRef", "==", orderRef).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query payment", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Payment", nil)
	}

	var payment entity.Payment
	if err := docs[0].DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}
	return &payment, nil
}

func (r *firestorePaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	payment.UpdatedAt = time.Now()

	_, err := r.client.Collection("payments").Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to update payment", err)
	}
	return nil
}

func (r *firestorePaymentRepository) ListByPayer(ctx context.Context, payerID string) ([]*entity.Payment, error) {
	docs, err := r.client.Collection("payments").Query.
		Where("payerId", "==", payerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list payments", err)
	}

	payments := make([]*entity.Payment, 0, len(docs))
	for _, doc := range docs {
		var payment entity.Payment
		if err := doc.DataTo(&payment); err != nil {
			return nil, errors.Internal("Failed to parse payment data", err)
		}
		payments = append(payments, &payment)
	}
	return payments, nil
}
