package entities

import (
	"errors"
	"testing"
	"time"
)

func newPricedRequest(price int64) Request {
	r := Request{
		ID:             "req-1",
		Type:           RequestTypeCustom,
		ClientType:     ClientTypeRegistered,
		UserID:         "user-1",
		Status:         RequestStatusApproved,
		EstimatedPrice: price,
		PaymentOption:  PaymentOptionAdvance,
	}
	r.RecomputePricing()
	return r
}

func pendingAttempt(paymentID, orderID string, amount int64, kind PaymentKind) PaymentAttempt {
	return PaymentAttempt{
		PaymentID:      paymentID,
		GatewayOrderID: orderID,
		Amount:         amount,
		Currency:       "INR",
		Kind:           kind,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	cases := []struct {
		paid, total int64
		want        PaymentStatus
	}{
		{0, 10000, PaymentStatusPending},
		{7000, 10000, PaymentStatusPartial},
		{10000, 10000, PaymentStatusCompleted},
		{12000, 10000, PaymentStatusCompleted},
		{0, 0, PaymentStatusPending},
		{50, 0, PaymentStatusPending},
	}
	for _, tc := range cases {
		if got := DerivePaymentStatus(tc.paid, tc.total); got != tc.want {
			t.Fatalf("paid=%d total=%d: expected %s, got %s", tc.paid, tc.total, tc.want, got)
		}
	}
}

func TestRequest_AppendAttempt(t *testing.T) {
	t.Run("forces pending", func(t *testing.T) {
		r := newPricedRequest(10000)
		a := pendingAttempt("pay-1", "order-1", 7000, PaymentKindAdvance)
		a.Status = AttemptStatusCompleted
		if err := r.AppendAttempt(a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Payments[0].Status != AttemptStatusPending {
			t.Fatalf("expected pending, got %s", r.Payments[0].Status)
		}
		if r.TotalPaid() != 0 || !r.HasPendingAttempts() || r.PendingAmount() != 7000 {
			t.Fatalf("pending attempt must not count as paid")
		}
	})

	t.Run("duplicate order id", func(t *testing.T) {
		r := newPricedRequest(10000)
		_ = r.AppendAttempt(pendingAttempt("pay-1", "order-1", 7000, PaymentKindAdvance))
		err := r.AppendAttempt(pendingAttempt("pay-2", "order-1", 7000, PaymentKindAdvance))
		if !errors.Is(err, ErrDuplicateAttempt) {
			t.Fatalf("expected ErrDuplicateAttempt, got %v", err)
		}
	})

	t.Run("duplicate payment id", func(t *testing.T) {
		r := newPricedRequest(10000)
		_ = r.AppendAttempt(pendingAttempt("pay-1", "order-1", 7000, PaymentKindAdvance))
		err := r.AppendAttempt(pendingAttempt("pay-1", "order-2", 7000, PaymentKindAdvance))
		if !errors.Is(err, ErrDuplicateAttempt) {
			t.Fatalf("expected ErrDuplicateAttempt, got %v", err)
		}
	})

	t.Run("invalid attempt", func(t *testing.T) {
		r := newPricedRequest(10000)
		if err := r.AppendAttempt(pendingAttempt("", "order-1", 7000, PaymentKindAdvance)); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if err := r.AppendAttempt(pendingAttempt("pay-1", "order-1", 0, PaymentKindAdvance)); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("expected ErrInvalidPrice, got %v", err)
		}
		if err := r.AppendAttempt(pendingAttempt("pay-1", "order-1", 10, "tip")); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestRequest_MarkCompleted(t *testing.T) {
	now := time.Now().UTC()

	t.Run("advance then remaining", func(t *testing.T) {
		r := newPricedRequest(10000)
		_ = r.AppendAttempt(pendingAttempt("pay-1", "order-1", r.AdvanceAmount, PaymentKindAdvance))

		res, err := r.MarkCompleted("order-1", "gw-1", "sig", now)
		if err != nil || res != LedgerApplied {
			t.Fatalf("expected applied, got %v %v", res, err)
		}
		if r.TotalPaid() != 7000 || r.PaymentStatus != PaymentStatusPartial {
			t.Fatalf("expected 7000 partial, got %d %s", r.TotalPaid(), r.PaymentStatus)
		}

		_ = r.AppendAttempt(pendingAttempt("pay-2", "order-2", r.Outstanding(), PaymentKindRemaining))
		if _, err := r.MarkCompleted("order-2", "gw-2", "sig", now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.TotalPaid() != 10000 || r.PaymentStatus != PaymentStatusCompleted || r.Outstanding() != 0 {
			t.Fatalf("expected fully paid, got %d %s", r.TotalPaid(), r.PaymentStatus)
		}
	})

	t.Run("second confirmation is a no-op", func(t *testing.T) {
		r := newPricedRequest(10000)
		_ = r.AppendAttempt(pendingAttempt("pay-1", "order-1", 7000, PaymentKindAdvance))
		_, _ = r.MarkCompleted("order-1", "gw-1", "sig-1", now)

		res, err := r.MarkCompleted("order-1", "gw-other", "sig-2", now.Add(time.Minute))
		if err != nil || res != LedgerAlreadyApplied {
			t.Fatalf("expected already applied, got %v %v", res, err)
		}
		if r.TotalPaid() != 7000 {
			t.Fatalf("expected single count, got %d", r.TotalPaid())
		}
		if r.Payments[0].GatewayPaymentID != "gw-1" {
			t.Fatalf("first capture must be kept, got %s", r.Payments[0].GatewayPaymentID)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		r := newPricedRequest(10000)
		if _, err := r.MarkCompleted("nope", "gw", "sig", now); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("closed attempt cannot complete", func(t *testing.T) {
		r := newPricedRequest(10000)
		_ = r.AppendAttempt(pendingAttempt("pay-1", "order-1", 7000, PaymentKindAdvance))
		_, _ = r.MarkExpired("order-1", now)
		if _, err := r.MarkCompleted("order-1", "gw", "sig", now); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if r.TotalPaid() != 0 {
			t.Fatalf("expired attempt must not count")
		}
	})
}

func TestRequest_CloseAttempt(t *testing.T) {
	now := time.Now().UTC()

	t.Run("fail twice", func(t *testing.T) {
		r := newPricedRequest(10000)
		_ = r.AppendAttempt(pendingAttempt("pay-1", "order-1", 7000, PaymentKindAdvance))
		if res, err := r.MarkFailed("order-1", "card declined", now); err != nil || res != LedgerApplied {
			t.Fatalf("expected applied, got %v %v", res, err)
		}
		if res, err := r.MarkFailed("order-1", "card declined", now); err != nil || res != LedgerAlreadyApplied {
			t.Fatalf("expected already applied, got %v %v", res, err)
		}
		if r.Payments[0].FailureReason != "card declined" || r.Payments[0].ClosedAt == nil {
			t.Fatalf("unexpected attempt: %+v", r.Payments[0])
		}
	})

	t.Run("completed cannot fail", func(t *testing.T) {
		r := newPricedRequest(10000)
		_ = r.AppendAttempt(pendingAttempt("pay-1", "order-1", 7000, PaymentKindAdvance))
		_, _ = r.MarkCompleted("order-1", "gw", "sig", now)
		if _, err := r.MarkFailed("order-1", "late", now); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if _, err := r.MarkExpired("order-1", now); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestRequest_Clone(t *testing.T) {
	r := newPricedRequest(10000)
	r.CustomProject = &CustomProject{Name: "a", Description: "b", Technologies: []string{"go"}}
	_ = r.AppendAttempt(pendingAttempt("pay-1", "order-1", 7000, PaymentKindAdvance))

	c := r.Clone()
	c.Payments[0].Status = AttemptStatusCompleted
	c.CustomProject.Technologies[0] = "rust"

	if r.Payments[0].Status != AttemptStatusPending {
		t.Fatalf("clone shares payments slice")
	}
	if r.CustomProject.Technologies[0] != "go" {
		t.Fatalf("clone shares technologies slice")
	}
}
