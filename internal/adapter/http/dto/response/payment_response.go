package response

import (
	"time"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase"
)

// PaymentAttemptResponse omits the gateway signature.
type PaymentAttemptResponse struct {
	PaymentID        string     `json:"payment_id"`
	OrderID          string     `json:"order_id"`
	Amount           int64      `json:"amount"`
	Currency         string     `json:"currency"`
	PaymentType      string     `json:"payment_type"`
	Status           string     `json:"status"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
}

func FromPaymentAttempt(p entities.PaymentAttempt) PaymentAttemptResponse {
	return PaymentAttemptResponse{
		PaymentID:        p.PaymentID,
		OrderID:          p.GatewayOrderID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		PaymentType:      string(p.Kind),
		Status:           string(p.Status),
		GatewayPaymentID: p.GatewayPaymentID,
		FailureReason:    p.FailureReason,
		CreatedAt:        p.CreatedAt,
		PaidAt:           p.PaidAt,
	}
}

type PaymentIntentResponse struct {
	RequestID   string `json:"request_id"`
	PaymentID   string `json:"payment_id"`
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url,omitempty"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	PaymentType string `json:"payment_type"`
}

func FromPaymentIntent(i usecase.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		RequestID:   i.RequestID,
		PaymentID:   i.PaymentID,
		OrderID:     i.GatewayOrderID,
		CheckoutURL: i.CheckoutURL,
		Amount:      i.Amount,
		Currency:    i.Currency,
		PaymentType: string(i.Kind),
	}
}

type PaymentConfirmationResponse struct {
	Success        bool                   `json:"success"`
	AlreadyApplied bool                   `json:"already_applied"`
	Payment        PaymentAttemptResponse `json:"payment"`
	Request        RequestResponse        `json:"request"`
}

func FromConfirmation(c usecase.Confirmation) PaymentConfirmationResponse {
	return PaymentConfirmationResponse{
		Success:        true,
		AlreadyApplied: c.AlreadyApplied,
		Payment:        FromPaymentAttempt(c.Attempt),
		Request:        FromRequest(c.Request),
	}
}

type PaymentStatusResponse struct {
	RequestID     string                 `json:"request_id"`
	PaymentStatus string                 `json:"payment_status"`
	TotalPaid     int64                  `json:"total_paid"`
	Outstanding   int64                  `json:"outstanding"`
	Payment       PaymentAttemptResponse `json:"payment"`
}

func FromPaymentView(v usecase.PaymentView) PaymentStatusResponse {
	return PaymentStatusResponse{
		RequestID:     v.Request.ID,
		PaymentStatus: string(v.Request.PaymentStatus),
		TotalPaid:     v.Request.TotalPaid(),
		Outstanding:   v.Request.Outstanding(),
		Payment:       FromPaymentAttempt(v.Attempt),
	}
}

type WebhookResponse struct {
	Status  string `json:"status"`
	Event   string `json:"event,omitempty"`
	Outcome string `json:"outcome"`
}

func FromWebhookResult(r usecase.WebhookResult) WebhookResponse {
	return WebhookResponse{Status: "ok", Event: r.Event, Outcome: r.Outcome}
}
