package handler

import (
	"bizbid/internal/usecase"
	"bizbid/pkg/response"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

func (h *PaymentHandler) InitiatePayment(c echo.Context) error {
	var req usecase.InitiatePaymentInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	payerID := c.Get("uid").(string)

	result, err := h.paymentUseCase.InitiatePayment(c.Request().Context(), payerID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

// HandleWebhook is unauthenticated; the gateway signature is the only
// credential.
func (h *PaymentHandler) HandleWebhook(c echo.Context) error {
	var req usecase.PaymentWebhookInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	payment, err := h.paymentUseCase.HandleWebhook(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) ListMyPayments(c echo.Context) error {
	payerID := c.Get("uid").(string)

	payments, err := h.paymentUseCase.ListMyPayments(c.Request().Context(), payerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payments)
}
