package domain

import (
	"fmt"
	"math"
)

type DiscountKind int

const (
	Percentage DiscountKind = iota
	Fixed
)

func (k DiscountKind) String() string {
	switch k {
	case Percentage:
		return "percentage"
	case Fixed:
		return "fixed"
	}
	return "unknown"
}

func ParseDiscountKind(s string) (DiscountKind, error) {
	const op = "domain.ParseDiscountKind"
	switch s {
	case "percentage":
		return Percentage, nil
	case "fixed":
		return Fixed, nil
	}
	return 0, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidArgument)
}

// A Discount is catalog or coupon pricing policy. For Percentage
// the amount is in [0, 100], for Fixed it must not exceed the base
// price.
type Discount struct {
	Kind   DiscountKind
	Amount float64
}

type Rounding int

const (
	RoundingNone Rounding = iota
	RoundingRound
	RoundingFloor
	RoundingCeil
)

func ParseRounding(s string) (Rounding, error) {
	const op = "domain.ParseRounding"
	switch s {
	case "none":
		return RoundingNone, nil
	case "round":
		return RoundingRound, nil
	case "floor":
		return RoundingFloor, nil
	case "ceil":
		return RoundingCeil, nil
	}
	return 0, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidArgument)
}

type Quote struct {
	DiscountedPrice float64
	DiscountAmount  float64
}

// ComputeDiscount derives the unit price from a base price and a
// discount policy. Invalid inputs are rejected with
// [ErrInvalidArgument], never clamped, so bad catalog or coupon data
// stays out of the cart. Rounding is applied to both outputs
// identically: with [RoundingNone] the identity
// DiscountedPrice + DiscountAmount == price holds exactly, with any
// other mode the sum may differ from price by at most one rounding
// unit.
func ComputeDiscount(price float64, d Discount, r Rounding) (Quote, error) {
	const op = "domain.ComputeDiscount"

	if price < 0 {
		return Quote{}, fmt.Errorf(
			"%s: negative price %v: %w", op, price, ErrInvalidArgument,
		)
	}

	var amount float64
	switch d.Kind {
	case Percentage:
		if d.Amount < 0 || d.Amount > 100 {
			return Quote{}, fmt.Errorf(
				"%s: percentage %v out of range: %w",
				op, d.Amount, ErrInvalidArgument,
			)
		}
		amount = price * d.Amount / 100
	case Fixed:
		if d.Amount < 0 {
			return Quote{}, fmt.Errorf(
				"%s: negative discount %v: %w",
				op, d.Amount, ErrInvalidArgument,
			)
		}
		if d.Amount > price {
			return Quote{}, fmt.Errorf(
				"%s: discount %v exceeds price %v: %w",
				op, d.Amount, price, ErrInvalidArgument,
			)
		}
		amount = d.Amount
	default:
		return Quote{}, fmt.Errorf(
			"%s: unknown discount kind %d: %w",
			op, d.Kind, ErrInvalidArgument,
		)
	}

	q := Quote{
		DiscountedPrice: applyRounding(price-amount, r),
		DiscountAmount:  applyRounding(amount, r),
	}
	return q, nil
}

func applyRounding(v float64, r Rounding) float64 {
	switch r {
	case RoundingRound:
		return math.Round(v)
	case RoundingFloor:
		return math.Floor(v)
	case RoundingCeil:
		return math.Ceil(v)
	}
	return v
}
