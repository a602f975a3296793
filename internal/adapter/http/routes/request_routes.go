package routes

import (
	"projectease/internal/adapter/http/handlers"
	"projectease/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathRequests = "/requests"
)

func addRequestRoutes(rg *gin.RouterGroup, auth *middleware.JWTAuth, h *handlers.RequestHandler) {
	requests := rg.Group(PathRequests)
	{
		// Guests submit without a token.
		requests.POST("", auth.Authenticate(false), h.CreateRequest)

		requests.GET("/my", auth.Authenticate(true), h.ListOwn)
		requests.GET("", auth.Authenticate(true), middleware.RequireAdmin(), h.ListAll)
		requests.GET("/:id", auth.Authenticate(true), h.GetRequest)
		requests.PUT("/:id", auth.Authenticate(true), middleware.RequireAdmin(), h.UpdateRequest)
		requests.PUT("/:id/payment-option", auth.Authenticate(true), h.UpdatePaymentOption)
	}
}
