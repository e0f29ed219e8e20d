// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fixedpoint implements the deterministic fixed-point numeric
// types required by the tick pipeline: Fixed64 (Q32.32, two's
// complement, backed by int64) and Fixed32 (Q16.16, backed by int32).
// All four operators saturate on overflow instead of wrapping, per
// spec.md §4.1, and report saturation so callers can emit
// ArithmeticSaturated. No floating-point arithmetic is used for the
// core operators; float conversions exist only for display and
// external configuration parsing and must never be called from tick
// phases 2-5.
package fixedpoint

import (
	"math"
	"math/bits"
)

// Fixed64FracBits is the number of fractional bits in a Fixed64 (Q32.32).
const Fixed64FracBits = 32

// Fixed64 is a Q32.32 signed fixed-point number.
type Fixed64 int64

// Fixed64FromInt builds a Fixed64 from an integer whole-number value.
func Fixed64FromInt(n int64) Fixed64 {
	return Fixed64(n << Fixed64FracBits)
}

// Fixed64FromFloat64 builds a Fixed64 from a float64. Ergonomic only:
// never call this from a tick phase.
func Fixed64FromFloat64(f float64) Fixed64 {
	return Fixed64(math.Round(f * (1 << Fixed64FracBits)))
}

// Float64 converts back to a float64 for display. Ergonomic only.
func (f Fixed64) Float64() float64 {
	return float64(f) / (1 << Fixed64FracBits)
}

// Int floors to a whole-number int64 (rounds toward negative
// infinity, so a negative fractional value yields the next lower
// integer).
func (f Fixed64) Int() int64 {
	return int64(f) >> Fixed64FracBits
}

// Bits returns the raw two's-complement representation, the value
// mixed into the state hash with no normalization (spec.md §4.1).
func (f Fixed64) Bits() uint64 {
	return uint64(f)
}

const (
	maxFixed64 = Fixed64(math.MaxInt64)
	minFixed64 = Fixed64(math.MinInt64)
)

// AddFixed64 returns a+b and whether the result saturated.
func AddFixed64(a, b Fixed64) (Fixed64, bool) {
	sum := a + b
	// Overflow occurs iff operands share a sign and the result's sign
	// differs from theirs.
	if (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0) {
		if a >= 0 {
			return maxFixed64, true
		}
		return minFixed64, true
	}
	return sum, false
}

// SubFixed64 returns a-b and whether the result saturated.
func SubFixed64(a, b Fixed64) (Fixed64, bool) {
	if b == minFixed64 {
		// -b cannot be represented; a - MinInt64 only fits if a < 0.
		if a >= 0 {
			return maxFixed64, true
		}
		return AddFixed64(a, maxFixed64+1)
	}
	return AddFixed64(a, -b)
}

// MulFixed64 returns a*b and whether the result saturated, computing
// the product through a 128-bit intermediate before shifting down by
// Fixed64FracBits, per spec.md §4.1.
func MulFixed64(a, b Fixed64) (Fixed64, bool) {
	negA, ua := splitSign64(int64(a))
	negB, ub := splitSign64(int64(b))
	hi, lo := bits.Mul64(ua, ub)

	// Shift the 128-bit (hi,lo) product right by Fixed64FracBits.
	shiftedHi := hi >> Fixed64FracBits
	shiftedLo := (hi << (64 - Fixed64FracBits)) | (lo >> Fixed64FracBits)

	neg := negA != negB
	if shiftedHi != 0 {
		return saturate64(neg), true
	}
	return composeSigned64(neg, shiftedLo)
}

// DivFixed64 returns a/b and whether the result saturated or b was
// zero (division by zero saturates rather than panicking, matching
// the "saturate on overflow" contract rather than introducing a
// distinct error path inside the tick pipeline).
func DivFixed64(a, b Fixed64) (Fixed64, bool) {
	if b == 0 {
		return saturate64(a < 0), true
	}
	negA, ua := splitSign64(int64(a))
	negB, ub := splitSign64(int64(b))
	neg := negA != negB

	// Widen ua by Fixed64FracBits before dividing, per spec.md §4.1
	// ("divide with left-shift before a 128-bit intermediate").
	hi := ua >> (64 - Fixed64FracBits)
	lo := ua << Fixed64FracBits
	if hi >= ub {
		return saturate64(neg), true
	}
	q, _ := bits.Div64(hi, lo, ub)
	return composeSigned64(neg, q)
}

// CmpFixed64 returns -1, 0, or 1 as a is less than, equal to, or
// greater than b. Comparison is bit-exact.
func CmpFixed64(a, b Fixed64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func splitSign64(v int64) (neg bool, mag uint64) {
	if v < 0 {
		return true, uint64(-v)
	}
	return false, uint64(v)
}

func saturate64(neg bool) Fixed64 {
	if neg {
		return minFixed64
	}
	return maxFixed64
}

func composeSigned64(neg bool, mag uint64) (Fixed64, bool) {
	if neg {
		if mag > 1<<63 {
			return minFixed64, true
		}
		return Fixed64(-int64(mag)), false
	}
	if mag > uint64(math.MaxInt64) {
		return maxFixed64, true
	}
	return Fixed64(mag), false
}
