package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/internal/domain/service"
	"bizbid/pkg/errors"
	"bizbid/pkg/logger"
)

// PaymentUseCase settles won bids through the payment gateway. A bid only
// reaches paid through a signature-verified webhook.
type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	bidRepo     repository.BidRepository
	userRepo    repository.UserRepository
	gateway     service.PaymentGateway
}

func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	bidRepo repository.BidRepository,
	userRepo repository.UserRepository,
	gateway service.PaymentGateway,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		bidRepo:     bidRepo,
		userRepo:    userRepo,
		gateway:     gateway,
	}
}

type InitiatePaymentInput struct {
	BidID string `json:"bid_id" validate:"required"`
}

type InitiatePaymentResult struct {
	Payment *entity.Payment       `json:"payment"`
	Order   *service.GatewayOrder `json:"order"`
}

func (uc *PaymentUseCase) InitiatePayment(ctx context.Context, payerID string, input InitiatePaymentInput) (*InitiatePaymentResult, error) {
	payer, err := uc.userRepo.GetByID(ctx, payerID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(payer, entity.RoleBuyer); err != nil {
		return nil, err
	}

	bid, err := uc.bidRepo.GetByID(ctx, input.BidID)
	if err != nil {
		return nil, err
	}
	if bid.BidderID != payerID {
		return nil, errors.Forbidden("You can only pay for your own bids", nil)
	}
	switch bid.Status {
	case entity.BidStatusAccepted, entity.BidStatusWon:
	case entity.BidStatusPaid:
		return nil, errors.InvalidState("Bid is already paid", nil)
	default:
		return nil, errors.InvalidState("Bid has not won the listing", nil)
	}

	orderRef := fmt.Sprintf("order_%s", uuid.New().String())
	order, err := uc.gateway.CreateOrder(ctx, orderRef, bid.Amount, map[string]string{
		"bidId":     bid.ID,
		"listingId": bid.ListingID,
		"payerId":   payerID,
	})
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		ListingID: bid.ListingID,
		PayerID:   payerID,
		BidID:     bid.ID,
		Amount:    bid.Amount,
		Status:    entity.PaymentStatusPending,
		OrderRef:  order.OrderRef,
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("Payment initiated", logger.Fields{
		"paymentId": payment.ID,
		"bidId":     bid.ID,
		"orderRef":  order.OrderRef,
		"amount":    bid.Amount,
	})
	return &InitiatePaymentResult{Payment: payment, Order: order}, nil
}

type PaymentWebhookInput struct {
	OrderRef   string `json:"order_ref" validate:"required"`
	PaymentRef string `json:"payment_ref" validate:"required"`
	Signature  string `json:"signature" validate:"required"`
	Event      string `json:"event"`
}

// HandleWebhook applies a gateway settlement callback. The signature is
// verified before any state changes; replays of an already-settled order
// are acknowledged without effect.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, input PaymentWebhookInput) (*entity.Payment, error) {
	if err := uc.gateway.VerifySignature(input.OrderRef, input.PaymentRef, input.Signature); err != nil {
		logger.Warn("Webhook signature rejected", logger.Fields{
			"orderRef": input.OrderRef,
		})
		return nil, err
	}

	payment, err := uc.paymentRepo.GetByOrderRef(ctx, input.OrderRef)
	if err != nil {
		return nil, err
	}
	if payment.Status == entity.PaymentStatusSuccess {
		return payment, nil
	}

	if input.Event == "payment.failed" {
		payment.Status = entity.PaymentStatusFailed
		payment.PaymentRef = input.PaymentRef
		if err := uc.paymentRepo.Update(ctx, payment); err != nil {
			return nil, err
		}
		logger.Warn("Payment failed", logger.Fields{
			"paymentId": payment.ID,
			"orderRef":  payment.OrderRef,
		})
		return payment, nil
	}

	// The bid moves to paid before the payment record is settled. If the
	// bid write fails the payment stays pending and a webhook replay can
	// finish the settlement.
	bid, err := uc.bidRepo.GetByID(ctx, payment.BidID)
	if err != nil {
		return nil, err
	}
	if bid.Status != entity.BidStatusPaid {
		if err := bid.Transition(entity.BidStatusPaid, time.Now()); err != nil {
			return nil, errors.InvalidState("Bid cannot be marked paid", err)
		}
		if err := uc.bidRepo.Update(ctx, bid); err != nil {
			return nil, err
		}
	}

	payment.Status = entity.PaymentStatusSuccess
	payment.PaymentRef = input.PaymentRef
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("Payment settled", logger.Fields{
		"paymentId":  payment.ID,
		"bidId":      bid.ID,
		"paymentRef": payment.PaymentRef,
	})
	return payment, nil
}

func (uc *PaymentUseCase) ListMyPayments(ctx context.Context, payerID string) ([]*entity.Payment, error) {
	return uc.paymentRepo.ListByPayer(ctx, payerID)
}
