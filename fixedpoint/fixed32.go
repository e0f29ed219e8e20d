// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedpoint

import (
	"math"
	"math/bits"
)

// Fixed32FracBits is the number of fractional bits in a Fixed32 (Q16.16).
const Fixed32FracBits = 16

// Fixed32 is a Q16.16 signed fixed-point number, used for modifier
// magnitudes and other values with coarser precision than Fixed64.
type Fixed32 int32

// Fixed32FromInt builds a Fixed32 from an integer whole-number value.
func Fixed32FromInt(n int32) Fixed32 {
	return Fixed32(n << Fixed32FracBits)
}

// Fixed32FromFloat64 builds a Fixed32 from a float64. Ergonomic only:
// never call this from a tick phase.
func Fixed32FromFloat64(f float64) Fixed32 {
	return Fixed32(math.Round(f * (1 << Fixed32FracBits)))
}

// Float64 converts back to a float64 for display. Ergonomic only.
func (f Fixed32) Float64() float64 {
	return float64(f) / (1 << Fixed32FracBits)
}

// Int floors to a whole-number int32 (rounds toward negative
// infinity, so a negative fractional value yields the next lower
// integer).
func (f Fixed32) Int() int32 {
	return int32(f) >> Fixed32FracBits
}

// Bits returns the raw two's-complement representation.
func (f Fixed32) Bits() uint32 {
	return uint32(f)
}

const (
	maxFixed32 = Fixed32(math.MaxInt32)
	minFixed32 = Fixed32(math.MinInt32)
)

// AddFixed32 returns a+b and whether the result saturated.
func AddFixed32(a, b Fixed32) (Fixed32, bool) {
	sum := a + b
	if (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0) {
		if a >= 0 {
			return maxFixed32, true
		}
		return minFixed32, true
	}
	return sum, false
}

// SubFixed32 returns a-b and whether the result saturated.
func SubFixed32(a, b Fixed32) (Fixed32, bool) {
	if b == minFixed32 {
		if a >= 0 {
			return maxFixed32, true
		}
		return AddFixed32(a, maxFixed32+1)
	}
	return AddFixed32(a, -b)
}

// MulFixed32 returns a*b and whether the result saturated, computing
// the product through a 64-bit intermediate before shifting down by
// Fixed32FracBits.
func MulFixed32(a, b Fixed32) (Fixed32, bool) {
	negA, ua := splitSign32(int32(a))
	negB, ub := splitSign32(int32(b))
	hi, lo := bits.Mul32(ua, ub)

	shiftedHi := hi >> Fixed32FracBits
	shiftedLo := (hi << (32 - Fixed32FracBits)) | (lo >> Fixed32FracBits)

	neg := negA != negB
	if shiftedHi != 0 {
		return saturate32(neg), true
	}
	return composeSigned32(neg, shiftedLo)
}

// DivFixed32 returns a/b and whether the result saturated or b was
// zero.
func DivFixed32(a, b Fixed32) (Fixed32, bool) {
	if b == 0 {
		return saturate32(a < 0), true
	}
	negA, ua := splitSign32(int32(a))
	negB, ub := splitSign32(int32(b))
	neg := negA != negB

	hi := ua >> (32 - Fixed32FracBits)
	lo := ua << Fixed32FracBits
	if hi >= ub {
		return saturate32(neg), true
	}
	q, _ := bits.Div32(hi, lo, ub)
	return composeSigned32(neg, q)
}

// CmpFixed32 returns -1, 0, or 1 as a is less than, equal to, or
// greater than b.
func CmpFixed32(a, b Fixed32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func splitSign32(v int32) (neg bool, mag uint32) {
	if v < 0 {
		return true, uint32(-v)
	}
	return false, uint32(v)
}

func saturate32(neg bool) Fixed32 {
	if neg {
		return minFixed32
	}
	return maxFixed32
}

func composeSigned32(neg bool, mag uint32) (Fixed32, bool) {
	if neg {
		if mag > 1<<31 {
			return minFixed32, true
		}
		return Fixed32(-int32(mag)), false
	}
	if mag > uint32(math.MaxInt32) {
		return maxFixed32, true
	}
	return Fixed32(mag), false
}
