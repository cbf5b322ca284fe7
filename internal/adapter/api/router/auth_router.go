package router

import (
	"bizbid/internal/adapter/api/handler"
	"bizbid/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/resend-otp", authHandler.ResendOTP)
	auth.POST("/login", authHandler.Login)

	me := e.Group("/v1/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", authHandler.GetMe)
	me.PATCH("", authHandler.UpdateProfile)
}
