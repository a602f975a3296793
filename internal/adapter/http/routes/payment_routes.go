package routes

import (
	"projectease/internal/adapter/http/handlers"
	"projectease/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, auth *middleware.JWTAuth, h *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		// Called by the gateway; authenticated by the body signature.
		payments.POST("/webhook", h.Webhook)

		payments.POST("/intents", auth.Authenticate(true), h.CreatePaymentIntent)
		payments.POST("/verify", auth.Authenticate(true), h.VerifyPayment)
		payments.GET("/:payment_id", auth.Authenticate(true), h.GetPaymentStatus)
	}
}
