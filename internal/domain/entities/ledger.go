package entities

import (
	"fmt"
	"strings"
	"time"
)

// LedgerResult tells the caller whether a ledger command changed anything.
type LedgerResult int

const (
	LedgerApplied LedgerResult = iota + 1
	LedgerAlreadyApplied
)

// TotalPaid sums the completed attempts. Pending, failed and expired
// attempts never count.
func (r Request) TotalPaid() int64 {
	var total int64
	for _, p := range r.Payments {
		if p.Status == AttemptStatusCompleted {
			total += p.Amount
		}
	}
	return total
}

// PendingAmount sums the attempts still waiting for a capture or failure.
func (r Request) PendingAmount() int64 {
	var total int64
	for _, p := range r.Payments {
		if p.Status == AttemptStatusPending {
			total += p.Amount
		}
	}
	return total
}

// Outstanding is what is still owed against the effective price.
func (r Request) Outstanding() int64 {
	owed := r.EffectivePrice() - r.TotalPaid()
	if owed < 0 {
		return 0
	}
	return owed
}

// DerivePaymentStatus maps paid vs total to the aggregate payment status.
func DerivePaymentStatus(totalPaid, totalAmount int64) PaymentStatus {
	switch {
	case totalAmount > 0 && totalPaid >= totalAmount:
		return PaymentStatusCompleted
	case totalPaid > 0 && totalPaid < totalAmount:
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}

// DerivedPaymentStatus is DerivePaymentStatus over this ledger and TotalAmount.
func (r Request) DerivedPaymentStatus() PaymentStatus {
	return DerivePaymentStatus(r.TotalPaid(), r.TotalAmount)
}

// HasPendingAttempts reports whether any attempt still waits for an outcome.
func (r Request) HasPendingAttempts() bool {
	for _, p := range r.Payments {
		if p.Status == AttemptStatusPending {
			return true
		}
	}
	return false
}

// AppendAttempt adds a new pending attempt to the ledger.
func (r *Request) AppendAttempt(a PaymentAttempt) error {
	if strings.TrimSpace(a.PaymentID) == "" || strings.TrimSpace(a.GatewayOrderID) == "" {
		return fmt.Errorf("%w: payment id and gateway order id are required", ErrValidation)
	}
	if a.Amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPrice, a.Amount)
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("%w: unknown payment kind %q", ErrValidation, a.Kind)
	}
	for _, p := range r.Payments {
		if p.GatewayOrderID == a.GatewayOrderID {
			return fmt.Errorf("%w: gateway order %s", ErrDuplicateAttempt, a.GatewayOrderID)
		}
		if p.PaymentID == a.PaymentID {
			return fmt.Errorf("%w: payment %s", ErrDuplicateAttempt, a.PaymentID)
		}
	}

	a.Status = AttemptStatusPending
	a.GatewayPaymentID, a.GatewaySignature, a.FailureReason = "", "", ""
	a.PaidAt, a.ClosedAt = nil, nil
	r.Payments = append(r.Payments, a)
	return nil
}

func (r Request) FindByGatewayOrderID(orderID string) (PaymentAttempt, error) {
	i := r.attemptIndex(func(p PaymentAttempt) bool { return p.GatewayOrderID == orderID })
	if i < 0 {
		return PaymentAttempt{}, fmt.Errorf("%w: gateway order %s", ErrNotFound, orderID)
	}
	return r.Payments[i], nil
}

func (r Request) FindByPaymentID(paymentID string) (PaymentAttempt, error) {
	i := r.attemptIndex(func(p PaymentAttempt) bool { return p.PaymentID == paymentID })
	if i < 0 {
		return PaymentAttempt{}, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
	}
	return r.Payments[i], nil
}

// MarkCompleted records a captured payment for the attempt of orderID.
//
// Calling it again for an attempt that is already completed is a no-op that
// returns LedgerAlreadyApplied, so interactive and webhook confirmations of
// the same charge count once.
func (r *Request) MarkCompleted(orderID, gatewayPaymentID, signature string, at time.Time) (LedgerResult, error) {
	i := r.attemptIndex(func(p PaymentAttempt) bool { return p.GatewayOrderID == orderID })
	if i < 0 {
		return 0, fmt.Errorf("%w: gateway order %s", ErrNotFound, orderID)
	}

	p := &r.Payments[i]
	switch p.Status {
	case AttemptStatusCompleted:
		return LedgerAlreadyApplied, nil
	case AttemptStatusPending:
	default:
		return 0, fmt.Errorf("%w: attempt %s is %s", ErrInvalidTransition, p.PaymentID, p.Status)
	}

	paidAt := at
	p.Status = AttemptStatusCompleted
	p.GatewayPaymentID = gatewayPaymentID
	p.GatewaySignature = signature
	p.PaidAt = &paidAt
	p.ClosedAt = &paidAt
	r.PaymentStatus = r.DerivedPaymentStatus()
	return LedgerApplied, nil
}

// MarkFailed closes a pending attempt as failed. A repeated failure for the
// same attempt is reported as LedgerAlreadyApplied.
func (r *Request) MarkFailed(orderID, reason string, at time.Time) (LedgerResult, error) {
	return r.closeAttempt(orderID, AttemptStatusFailed, reason, at)
}

// MarkExpired closes a pending attempt whose order was never paid.
func (r *Request) MarkExpired(orderID string, at time.Time) (LedgerResult, error) {
	return r.closeAttempt(orderID, AttemptStatusExpired, "", at)
}

func (r *Request) closeAttempt(orderID string, to AttemptStatus, reason string, at time.Time) (LedgerResult, error) {
	i := r.attemptIndex(func(p PaymentAttempt) bool { return p.GatewayOrderID == orderID })
	if i < 0 {
		return 0, fmt.Errorf("%w: gateway order %s", ErrNotFound, orderID)
	}

	p := &r.Payments[i]
	switch p.Status {
	case to:
		return LedgerAlreadyApplied, nil
	case AttemptStatusPending:
	default:
		return 0, fmt.Errorf("%w: attempt %s is %s", ErrInvalidTransition, p.PaymentID, p.Status)
	}

	closedAt := at
	p.Status = to
	p.FailureReason = reason
	p.ClosedAt = &closedAt
	return LedgerApplied, nil
}

func (r Request) attemptIndex(match func(PaymentAttempt) bool) int {
	for i, p := range r.Payments {
		if match(p) {
			return i
		}
	}
	return -1
}
