package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizbid/internal/domain/entity"
	apperrors "bizbid/pkg/errors"
)

func (f *fixture) wonBid(t *testing.T) *entity.Bid {
	t.Helper()
	listing := f.seedListing(true, nil)
	bid, err := f.bidUC.SubmitBid(context.Background(), buyerID, SubmitBidInput{ListingID: listing.ID, Amount: 100000})
	require.NoError(t, err)
	winner, err := f.auctionUC.AcceptBid(context.Background(), bid.ID, adminID)
	require.NoError(t, err)
	return winner
}

func TestInitiatePayment(t *testing.T) {
	f := newFixture()
	winner := f.wonBid(t)

	result, err := f.paymentUC.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{BidID: winner.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, result.Payment.Status)
	assert.Equal(t, winner.Amount, result.Payment.Amount)
	assert.NotEmpty(t, result.Payment.OrderRef)
	assert.Equal(t, result.Order.OrderRef, result.Payment.OrderRef)
}

func TestInitiatePaymentGuards(t *testing.T) {
	f := newFixture()
	listing := f.seedListing(true, nil)

	open, err := f.bidUC.SubmitBid(context.Background(), buyerID, SubmitBidInput{ListingID: listing.ID, Amount: 100000})
	require.NoError(t, err)

	// An unresolved bid cannot be paid.
	_, err = f.paymentUC.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{BidID: open.ID})
	assert.True(t, apperrors.Is(err, "INVALID_STATE"))

	winner := f.wonBid(t)

	// Only the bid's owner may pay.
	_, err = f.paymentUC.InitiatePayment(context.Background(), buyer2ID, InitiatePaymentInput{BidID: winner.ID})
	assert.True(t, apperrors.Is(err, "FORBIDDEN"))
}

func TestWebhookSettlesBid(t *testing.T) {
	f := newFixture()
	winner := f.wonBid(t)

	result, err := f.paymentUC.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{BidID: winner.ID})
	require.NoError(t, err)
	orderRef := result.Payment.OrderRef

	payment, err := f.paymentUC.HandleWebhook(context.Background(), PaymentWebhookInput{
		OrderRef:   orderRef,
		PaymentRef: "pay_123",
		Signature:  "sig:" + orderRef + ":pay_123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, "pay_123", payment.PaymentRef)

	bid, err := f.bids.GetByID(context.Background(), winner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BidStatusPaid, bid.Status)
	assert.True(t, bid.IsWon)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	f := newFixture()
	winner := f.wonBid(t)

	result, err := f.paymentUC.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{BidID: winner.ID})
	require.NoError(t, err)
	orderRef := result.Payment.OrderRef

	_, err = f.paymentUC.HandleWebhook(context.Background(), PaymentWebhookInput{
		OrderRef:   orderRef,
		PaymentRef: "pay_123",
		Signature:  "forged",
	})
	assert.True(t, apperrors.Is(err, "UPSTREAM_FAILURE"))

	// Nothing moved.
	payment, err := f.payments.GetByOrderRef(context.Background(), orderRef)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, payment.Status)

	bid, err := f.bids.GetByID(context.Background(), winner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BidStatusWon, bid.Status)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	f := newFixture()
	winner := f.wonBid(t)

	result, err := f.paymentUC.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{BidID: winner.ID})
	require.NoError(t, err)
	orderRef := result.Payment.OrderRef

	input := PaymentWebhookInput{
		OrderRef:   orderRef,
		PaymentRef: "pay_123",
		Signature:  "sig:" + orderRef + ":pay_123",
	}
	_, err = f.paymentUC.HandleWebhook(context.Background(), input)
	require.NoError(t, err)

	payment, err := f.paymentUC.HandleWebhook(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, payment.Status)
}

func TestWebhookBidWriteFailureLeavesPaymentPending(t *testing.T) {
	f := newFixture()
	winner := f.wonBid(t)

	result, err := f.paymentUC.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{BidID: winner.ID})
	require.NoError(t, err)
	orderRef := result.Payment.OrderRef

	input := PaymentWebhookInput{
		OrderRef:   orderRef,
		PaymentRef: "pay_123",
		Signature:  "sig:" + orderRef + ":pay_123",
	}

	f.bids.failUpdate = true
	_, err = f.paymentUC.HandleWebhook(context.Background(), input)
	require.Error(t, err)

	// The payment must not read settled while the bid write failed.
	payment, err := f.payments.GetByOrderRef(context.Background(), orderRef)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, payment.Status)

	// A replay after the store recovers completes the settlement.
	f.bids.failUpdate = false
	payment, err = f.paymentUC.HandleWebhook(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, payment.Status)

	bid, err := f.bids.GetByID(context.Background(), winner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BidStatusPaid, bid.Status)
}

func TestWebhookFailedEvent(t *testing.T) {
	f := newFixture()
	winner := f.wonBid(t)

	result, err := f.paymentUC.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{BidID: winner.ID})
	require.NoError(t, err)
	orderRef := result.Payment.OrderRef

	payment, err := f.paymentUC.HandleWebhook(context.Background(), PaymentWebhookInput{
		OrderRef:   orderRef,
		PaymentRef: "pay_123",
		Signature:  "sig:" + orderRef + ":pay_123",
		Event:      "payment.failed",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, payment.Status)

	// The bid stays won and payable.
	bid, err := f.bids.GetByID(context.Background(), winner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BidStatusWon, bid.Status)
}

func TestWebhookUnknownOrder(t *testing.T) {
	f := newFixture()

	_, err := f.paymentUC.HandleWebhook(context.Background(), PaymentWebhookInput{
		OrderRef:   "order_unknown",
		PaymentRef: "pay_1",
		Signature:  "sig:order_unknown:pay_1",
	})
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))
}
