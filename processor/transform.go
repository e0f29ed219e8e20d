// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package processor

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/item"
)

// fixed32ToFixed64 widens a Q16.16 value to Q32.32 by aligning its
// fractional bits; the extra low bits are zero.
func fixed32ToFixed64(f fixedpoint.Fixed32) fixedpoint.Fixed64 {
	return fixedpoint.Fixed64(int64(f) << (fixedpoint.Fixed64FracBits - fixedpoint.Fixed32FracBits))
}

// fixed64ToFixed32 narrows a Q32.32 value to Q16.16 by truncating its
// low fractional bits; callers are expected to use this only on
// values already known to fit, as is the case for property transforms
// operating within one item's declared precision.
func fixed64ToFixed32(f fixedpoint.Fixed64) fixedpoint.Fixed32 {
	return fixedpoint.Fixed32(int64(f) >> (fixedpoint.Fixed64FracBits - fixedpoint.Fixed32FracBits))
}

func applyFixed64(slot *item.PropertyValue, t Transform) {
	operand := t.OperandFixed64
	if !t.UseFixed64 {
		operand = fixed32ToFixed64(t.OperandFixed32)
	}
	switch t.Kind {
	case Set:
		slot.Fixed64 = operand
	case Add:
		slot.Fixed64, _ = fixedpoint.AddFixed64(slot.Fixed64, operand)
	case Multiply:
		slot.Fixed64, _ = fixedpoint.MulFixed64(slot.Fixed64, operand)
	}
}

func applyFixed32(slot *item.PropertyValue, t Transform) {
	operand := t.OperandFixed32
	if t.UseFixed64 {
		operand = fixed64ToFixed32(t.OperandFixed64)
	}
	switch t.Kind {
	case Set:
		slot.Fixed32 = operand
	case Add:
		slot.Fixed32, _ = fixedpoint.AddFixed32(slot.Fixed32, operand)
	case Multiply:
		slot.Fixed32, _ = fixedpoint.MulFixed32(slot.Fixed32, operand)
	}
}
