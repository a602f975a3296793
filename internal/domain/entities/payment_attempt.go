package entities

import "time"

// AttemptStatus is the outcome of a single payment attempt.
//
// pending -> completed | failed | expired. Completed never moves again.
type AttemptStatus string

const (
	AttemptStatusPending   AttemptStatus = "pending"
	AttemptStatusCompleted AttemptStatus = "completed"
	AttemptStatusFailed    AttemptStatus = "failed"
	AttemptStatusExpired   AttemptStatus = "expired"
)

// PaymentKind mirrors the schedule step an attempt collects.
type PaymentKind string

const (
	PaymentKindAdvance   PaymentKind = "advance"
	PaymentKindRemaining PaymentKind = "remaining"
	PaymentKindFull      PaymentKind = "full"
)

func (k PaymentKind) Valid() bool {
	switch k {
	case PaymentKindAdvance, PaymentKindRemaining, PaymentKindFull:
		return true
	}
	return false
}

// PaymentAttempt is one gateway order created to collect Amount against a
// request. It lives embedded in the request's ledger.
//
// PaymentID is ours and stable; GatewayOrderID is what the gateway sends back
// in confirmations and webhooks.
type PaymentAttempt struct {
	PaymentID      string        `json:"payment_id"`
	GatewayOrderID string        `json:"gateway_order_id"`
	Amount         int64         `json:"amount"`
	Currency       string        `json:"currency"`
	Kind           PaymentKind   `json:"kind"`
	Status         AttemptStatus `json:"status"`

	GatewayPaymentID string `json:"gateway_payment_id,omitempty"`
	GatewaySignature string `json:"gateway_signature,omitempty"`
	FailureReason    string `json:"failure_reason,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

func (p PaymentAttempt) clone() PaymentAttempt {
	out := p
	out.PaidAt = cloneTime(p.PaidAt)
	out.ClosedAt = cloneTime(p.ClosedAt)
	return out
}
