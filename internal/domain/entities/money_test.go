package entities

import (
	"errors"
	"testing"
)

func TestSplitAmounts(t *testing.T) {
	cases := []struct {
		name   string
		base   int64
		option PaymentOption
		want   PaymentSplit
	}{
		{name: "advance", base: 10000, option: PaymentOptionAdvance, want: PaymentSplit{Total: 10000, Advance: 7000, Remaining: 3000}},
		{name: "advance rounds half up", base: 5, option: PaymentOptionAdvance, want: PaymentSplit{Total: 5, Advance: 4, Remaining: 1}},
		{name: "advance rounds down", base: 1001, option: PaymentOptionAdvance, want: PaymentSplit{Total: 1001, Advance: 701, Remaining: 300}},
		{name: "empty option defaults to advance", base: 100, option: "", want: PaymentSplit{Total: 100, Advance: 70, Remaining: 30}},
		{name: "full", base: 999, option: PaymentOptionFull, want: PaymentSplit{Total: 999, Advance: 999, Remaining: 0}},
		{name: "one unit", base: 1, option: PaymentOptionAdvance, want: PaymentSplit{Total: 1, Advance: 1, Remaining: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitAmounts(tc.base, tc.option)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}

	t.Run("non positive price", func(t *testing.T) {
		for _, base := range []int64{0, -10} {
			if _, err := SplitAmounts(base, PaymentOptionAdvance); !errors.Is(err, ErrInvalidPrice) {
				t.Fatalf("base %d: expected ErrInvalidPrice, got %v", base, err)
			}
		}
	})

	t.Run("unknown option", func(t *testing.T) {
		if _, err := SplitAmounts(100, "weekly"); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("parts always add up", func(t *testing.T) {
		for base := int64(1); base <= 5000; base++ {
			for _, opt := range []PaymentOption{PaymentOptionAdvance, PaymentOptionFull} {
				s, err := SplitAmounts(base, opt)
				if err != nil {
					t.Fatalf("base %d: %v", base, err)
				}
				if s.Advance+s.Remaining != s.Total || s.Total != base {
					t.Fatalf("base %d option %s: broken split %+v", base, opt, s)
				}
				if s.Advance < 0 || s.Remaining < 0 {
					t.Fatalf("base %d option %s: negative part %+v", base, opt, s)
				}
			}
		}
	})
}
