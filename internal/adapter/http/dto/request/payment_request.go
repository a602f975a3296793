package request

import (
	"errors"
	"strings"

	"projectease/internal/domain/entities"
)

var ErrInvalidPaymentType = errors.New("invalid payment type")

type CreatePaymentIntentRequest struct {
	RequestID   string `json:"request_id" binding:"required"`
	PaymentType string `json:"payment_type" binding:"required"`
}

func (r CreatePaymentIntentRequest) ResolveKind() (entities.PaymentKind, error) {
	k := entities.PaymentKind(strings.TrimSpace(r.PaymentType))
	if !k.Valid() {
		return "", ErrInvalidPaymentType
	}
	return k, nil
}

// VerifyPaymentRequest is what the checkout returns to the client after a
// successful charge.
type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
