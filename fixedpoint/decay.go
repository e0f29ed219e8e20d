// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedpoint

// pow2NegTable holds 2^(-k/16) for k in [0,16] as Q32.32 values,
// precomputed offline so Pow2Neg never touches floating point at
// runtime. Entry 0 is 1.0, entry 16 is 0.5.
var pow2NegTable = [17]Fixed64{
	0x100000000, // k=0:  1.000000000
	0xF5257D15,  // k=1:  2^(-1/16)
	0xEAC0C6E8,  // k=2
	0xE0CCDEEC,  // k=3
	0xD744FCCB,  // k=4
	0xCE248C15,  // k=5
	0xC5672A11,  // k=6
	0xBD08A39F,  // k=7
	0xB504F334,  // k=8
	0xAD583EEA,  // k=9
	0xA5FED6AA,  // k=10
	0x9EF53261,  // k=11
	0x9837F052,  // k=12
	0x91C3D374,  // k=13
	0x8B95C1E4,  // k=14
	0x85AAC368,  // k=15
	0x0CD82B8B,  // k=16: 2^(-1) = 0.5, expressed directly below
}

func init() {
	// Entry 16 must be exactly 0.5 in Q32.32; entries 1-15 above are
	// 2^(-k/16) rounded to Q32.32, and this endpoint is pinned so
	// integer-exponent decay composes exactly with the shift-based
	// fast path in Decay.
	pow2NegTable[16] = 1 << 31
}

// Pow2Neg approximates 2^-exponent for a non-negative Q32.32 exponent,
// deterministically and without floating point: the integer part of
// the exponent becomes a right shift, the fractional part is resolved
// by linear interpolation over a 16-step table of exact sixteenths.
// This is an engineered approximation (error bounded by the table's
// granularity), adequate for modifier decay curves, not for precise
// scientific computation.
func Pow2Neg(exponent Fixed64) Fixed64 {
	if exponent <= 0 {
		return Fixed64FromInt(1)
	}

	whole := exponent.Int()
	frac := exponent - Fixed64FromInt(whole)

	var base Fixed64
	if whole >= 63 {
		base = 0
	} else {
		base = Fixed64(int64(1<<Fixed64FracBits) >> uint(whole))
	}
	if base == 0 {
		return 0
	}

	// frac is in [0,1) of Q32.32; map to a table step in [0,16].
	step := (int64(frac) * 16) >> Fixed64FracBits
	rem := frac - Fixed64(step<<Fixed64FracBits/16)
	if step >= 16 {
		step = 16
		rem = 0
	}

	lo := pow2NegTable[step]
	var hi Fixed64
	if step < 16 {
		hi = pow2NegTable[step+1]
	} else {
		hi = pow2NegTable[16]
	}

	// Linear interpolation between lo and hi over the 1/16 step,
	// weight = rem * 16 (back into [0,1) of Q32.32).
	weight := Fixed64(rem << 4)
	delta, _ := MulFixed64(hi-lo, weight)
	interp, _ := AddFixed64(lo, delta)

	result, _ := MulFixed64(base, interp)
	return result
}

// Decay applies n exact half-life halvings to value via bit shifts,
// the fast, exact path used when the caller works in whole half-lives
// rather than the continuous approximation in Pow2Neg.
func Decay(value Fixed64, halfLives uint) Fixed64 {
	if halfLives == 0 {
		return value
	}
	if halfLives >= 63 {
		if value < 0 {
			return -1
		}
		return 0
	}
	return value >> halfLives
}
