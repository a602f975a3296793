package handlers

import (
	"errors"
	"io"
	"net/http"

	request "projectease/internal/adapter/http/dto/request"
	response "projectease/internal/adapter/http/dto/response"
	"projectease/internal/adapter/http/middleware"
	"projectease/internal/usecase"
	"projectease/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	WebhookSignatureHeader = "X-Webhook-Signature"
	maxWebhookBodyBytes    = 65536
)

// PaymentHandler handles payment intents, confirmations and gateway webhooks.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
	log     *zap.Logger
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{usecase: uc, log: log}
}

// CreatePaymentIntent godoc
// @Summary   Open a gateway order for the advance, remaining or full amount
// @Tags      payments
// @Accept    json
// @Produce   json
// @Security  Bearer
// @Param     request  body      request.CreatePaymentIntentRequest  true  "Intent"
// @Success   201      {object}  response.PaymentIntentResponse
// @Failure   409      {object}  pkg.HTTPError
// @Failure   422      {object}  pkg.HTTPError
// @Router    /payments/intents [post]
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var payload request.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	kind, err := payload.ResolveKind()
	if err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	intent, err := h.usecase.CreatePaymentIntent(c.Request.Context(), middleware.ActorFromContext(c), payload.RequestID, kind)
	if err != nil {
		h.fail(c, "create payment intent failed", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromPaymentIntent(intent))
}

// VerifyPayment godoc
// @Summary   Confirm a payment returned by the checkout
// @Tags      payments
// @Accept    json
// @Produce   json
// @Security  Bearer
// @Param     request  body      request.VerifyPaymentRequest  true  "Checkout result"
// @Success   200      {object}  response.PaymentConfirmationResponse
// @Failure   400      {object}  pkg.HTTPError
// @Failure   404      {object}  pkg.HTTPError
// @Router    /payments/verify [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var payload request.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	conf, err := h.usecase.ConfirmInteractive(c.Request.Context(), middleware.ActorFromContext(c), payload.OrderID, payload.PaymentID, payload.Signature)
	if err != nil {
		h.fail(c, "verify payment failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromConfirmation(conf))
}

// Webhook godoc
// @Summary      Gateway payment notification
// @Description  Body is signed with HMAC-SHA256 (hex) in X-Webhook-Signature. Verified events always answer 200.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Signature  header    string  true  "Signature"
// @Success      200                  {object}  response.WebhookResponse
// @Failure      400                  {object}  pkg.HTTPError
// @Router       /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			appErr := pkg.NewDomainErrorSimple("PAYLOAD_TOO_LARGE", "Webhook body too large", http.StatusRequestEntityTooLarge)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.HandleWebhook(c.Request.Context(), raw, c.GetHeader(WebhookSignatureHeader))
	if err != nil {
		h.fail(c, "webhook failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromWebhookResult(res))
}

// GetPaymentStatus godoc
// @Summary   Look up one payment attempt (owner or admin)
// @Tags      payments
// @Produce   json
// @Security  Bearer
// @Param     payment_id  path      string  true  "Payment ID"
// @Success   200         {object}  response.PaymentStatusResponse
// @Failure   403         {object}  pkg.HTTPError
// @Failure   404         {object}  pkg.HTTPError
// @Router    /payments/{payment_id} [get]
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	view, err := h.usecase.GetPaymentStatus(c.Request.Context(), middleware.ActorFromContext(c), c.Param("payment_id"))
	if err != nil {
		h.fail(c, "get payment status failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentView(view))
}

func (h *PaymentHandler) fail(c *gin.Context, msg string, err error) {
	appErr := mapError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error(msg, zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
