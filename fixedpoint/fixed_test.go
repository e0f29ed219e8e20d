// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixed64AddSaturates(t *testing.T) {
	require := require.New(t)

	sum, sat := AddFixed64(maxFixed64, Fixed64FromInt(1))
	require.True(sat)
	require.Equal(maxFixed64, sum)

	sum, sat = AddFixed64(minFixed64, Fixed64FromInt(-1))
	require.True(sat)
	require.Equal(minFixed64, sum)

	sum, sat = AddFixed64(Fixed64FromInt(2), Fixed64FromInt(3))
	require.False(sat)
	require.Equal(Fixed64FromInt(5), sum)
}

func TestFixed64SubSaturates(t *testing.T) {
	require := require.New(t)

	diff, sat := SubFixed64(minFixed64, Fixed64FromInt(1))
	require.True(sat)
	require.Equal(minFixed64, diff)

	diff, sat = SubFixed64(Fixed64FromInt(5), Fixed64FromInt(2))
	require.False(sat)
	require.Equal(Fixed64FromInt(3), diff)
}

func TestFixed64MulRoundTrip(t *testing.T) {
	require := require.New(t)

	a := Fixed64FromInt(6)
	b := Fixed64FromInt(7)
	product, sat := MulFixed64(a, b)
	require.False(sat)
	require.Equal(Fixed64FromInt(42), product)

	neg, sat := MulFixed64(Fixed64FromInt(-6), b)
	require.False(sat)
	require.Equal(Fixed64FromInt(-42), neg)
}

func TestFixed64MulSaturatesOnOverflow(t *testing.T) {
	require := require.New(t)

	_, sat := MulFixed64(maxFixed64, Fixed64FromInt(2))
	require.True(sat)
}

func TestFixed64DivRoundTrip(t *testing.T) {
	require := require.New(t)

	q, sat := DivFixed64(Fixed64FromInt(42), Fixed64FromInt(6))
	require.False(sat)
	require.Equal(Fixed64FromInt(7), q)

	q, sat = DivFixed64(Fixed64FromInt(-42), Fixed64FromInt(6))
	require.False(sat)
	require.Equal(Fixed64FromInt(-7), q)
}

func TestFixed64DivByZeroSaturates(t *testing.T) {
	require := require.New(t)

	q, sat := DivFixed64(Fixed64FromInt(5), 0)
	require.True(sat)
	require.Equal(maxFixed64, q)

	q, sat = DivFixed64(Fixed64FromInt(-5), 0)
	require.True(sat)
	require.Equal(minFixed64, q)
}

func TestFixed64CmpOrdering(t *testing.T) {
	require := require.New(t)

	require.Equal(-1, CmpFixed64(Fixed64FromInt(1), Fixed64FromInt(2)))
	require.Equal(1, CmpFixed64(Fixed64FromInt(2), Fixed64FromInt(1)))
	require.Equal(0, CmpFixed64(Fixed64FromInt(2), Fixed64FromInt(2)))
}

func TestFixed64FloatConversionIsErgonomicOnly(t *testing.T) {
	require := require.New(t)

	f := Fixed64FromFloat64(3.5)
	require.InDelta(3.5, f.Float64(), 1e-9)
}

func TestFixed32AddSaturates(t *testing.T) {
	require := require.New(t)

	sum, sat := AddFixed32(maxFixed32, Fixed32FromInt(1))
	require.True(sat)
	require.Equal(maxFixed32, sum)
}

func TestFixed32MulRoundTrip(t *testing.T) {
	require := require.New(t)

	product, sat := MulFixed32(Fixed32FromInt(6), Fixed32FromInt(7))
	require.False(sat)
	require.Equal(Fixed32FromInt(42), product)
}

func TestFixed32DivRoundTrip(t *testing.T) {
	require := require.New(t)

	q, sat := DivFixed32(Fixed32FromInt(42), Fixed32FromInt(6))
	require.False(sat)
	require.Equal(Fixed32FromInt(7), q)
}

func TestDecayExactHalving(t *testing.T) {
	require := require.New(t)

	v := Fixed64FromInt(16)
	require.Equal(Fixed64FromInt(8), Decay(v, 1))
	require.Equal(Fixed64FromInt(4), Decay(v, 2))
	require.Equal(Fixed64FromInt(0), Decay(v, 63))
}

func TestPow2NegMonotonicDecreasing(t *testing.T) {
	require := require.New(t)

	prev := Pow2Neg(0)
	require.Equal(Fixed64FromInt(1), prev)

	for i := 1; i <= 8; i++ {
		cur := Pow2Neg(Fixed64FromInt(int64(i)))
		require.LessOrEqual(int64(cur), int64(prev), "Pow2Neg must not increase as exponent grows")
		prev = cur
	}
}

func TestPow2NegExactHalfLifeMatchesDecay(t *testing.T) {
	require := require.New(t)

	// At integer exponents, Pow2Neg should agree closely with the
	// exact shift-based Decay helper (within one table-step of error).
	got := Pow2Neg(Fixed64FromInt(3))
	want := Decay(Fixed64FromInt(1), 3)
	diff := int64(got) - int64(want)
	require.InDelta(0, float64(diff), float64(1<<20))
}

func TestFixed64BitsRoundTrip(t *testing.T) {
	require := require.New(t)

	v := Fixed64FromInt(-7)
	require.Equal(uint64(v), v.Bits())
}

func TestOverflowConstants(t *testing.T) {
	require := require.New(t)
	require.Equal(int64(math.MaxInt64), int64(maxFixed64))
	require.Equal(int64(math.MinInt64), int64(minFixed64))
}
