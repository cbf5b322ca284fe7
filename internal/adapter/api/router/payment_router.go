package router

import (
	"bizbid/internal/adapter/api/handler"
	"bizbid/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupPaymentRouter(e *echo.Echo, paymentHandler *handler.PaymentHandler, authMiddleware *middleware.AuthMiddleware) {
	payments := e.Group("/v1/payments")
	payments.Use(authMiddleware.Authenticate)
	payments.POST("", paymentHandler.InitiatePayment)
	payments.GET("", paymentHandler.ListMyPayments)

	// Gateway callback, authenticated by signature only.
	e.POST("/v1/payments/webhook", paymentHandler.HandleWebhook)
}
