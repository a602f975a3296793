package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AdvancePercent is the share of the total collected up front when the client
// pays in two installments.
const AdvancePercent = 70

// PaymentSplit partitions a total into what is due now and what is due later.
// Advance + Remaining == Total always holds.
type PaymentSplit struct {
	Total     int64
	Advance   int64
	Remaining int64
}

// SplitAmounts computes the installment split of basePrice for option.
// The advance share is rounded half-up; the remainder is never rounded on its own.
func SplitAmounts(basePrice int64, option PaymentOption) (PaymentSplit, error) {
	if basePrice <= 0 {
		return PaymentSplit{}, fmt.Errorf("%w: %d", ErrInvalidPrice, basePrice)
	}

	switch option {
	case PaymentOptionFull:
		return PaymentSplit{Total: basePrice, Advance: basePrice, Remaining: 0}, nil
	case PaymentOptionAdvance, "":
		advance := AdvanceShare(basePrice)
		return PaymentSplit{Total: basePrice, Advance: advance, Remaining: basePrice - advance}, nil
	default:
		return PaymentSplit{}, fmt.Errorf("%w: unknown payment option %q", ErrValidation, option)
	}
}

// AdvanceShare returns round(basePrice * AdvancePercent / 100), halves rounded up.
func AdvanceShare(basePrice int64) int64 {
	return decimal.NewFromInt(basePrice).
		Mul(decimal.NewFromInt(AdvancePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
