// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modifier

import "github.com/zakkeown/factorial/fixedpoint"

// identity is the effective multiplier of an empty modifier list: no
// modification.
var identity = fixedpoint.Fixed64FromInt(1)

// Fold computes the effective multiplier for one Kind by folding,
// left-to-right in the order given (callers must have already sorted
// by ID per spec.md invariant 2), every instance of that kind. The
// stacking rule applied is the one carried by the first matching
// instance's Definition: in practice every modifier affecting a given
// kind on a given node is produced under one configured rule, which
// is what spec.md §4.7 means by "the configured stacking rule"; mixed
// rules within the same kind are not a case the spec enumerates.
//
// Magnitude is a multiplier (1.0 = no effect). Multiplicative folds
// by direct product. Additive and Capped sum each instance's
// (magnitude-1) delta onto a base of 1; Capped additionally clamps
// the sum at the definition's Cap. Diminishing applies
// fixedpoint.Decay to each successive instance's delta, halving its
// contribution per additional stack so a long tail of the same
// modifier converges instead of growing unbounded.
func Fold(instances []Instance, kind Kind, defs *Allocator) fixedpoint.Fixed64 {
	var rule StackingRule
	var capLimit fixedpoint.Fixed64
	ruleSet := false
	var magnitudes []fixedpoint.Fixed64

	for _, inst := range instances {
		def, ok := defs.Get(inst.ID)
		if !ok || def.Kind != kind {
			continue
		}
		if !ruleSet {
			rule = def.Stacking
			capLimit = def.Cap
			ruleSet = true
		}
		magnitudes = append(magnitudes, inst.Magnitude)
	}
	if !ruleSet {
		return identity
	}

	switch rule {
	case Multiplicative:
		acc := identity
		for _, m := range magnitudes {
			acc, _ = fixedpoint.MulFixed64(acc, m)
		}
		return acc

	case Additive:
		sum := fixedpoint.Fixed64(0)
		for _, m := range magnitudes {
			d, _ := fixedpoint.SubFixed64(m, identity)
			sum, _ = fixedpoint.AddFixed64(sum, d)
		}
		result, _ := fixedpoint.AddFixed64(identity, sum)
		return result

	case Diminishing:
		sum := fixedpoint.Fixed64(0)
		for i, m := range magnitudes {
			d, _ := fixedpoint.SubFixed64(m, identity)
			contribution := fixedpoint.Decay(d, uint(i))
			sum, _ = fixedpoint.AddFixed64(sum, contribution)
		}
		result, _ := fixedpoint.AddFixed64(identity, sum)
		return result

	case Capped:
		sum := fixedpoint.Fixed64(0)
		for _, m := range magnitudes {
			d, _ := fixedpoint.SubFixed64(m, identity)
			sum, _ = fixedpoint.AddFixed64(sum, d)
		}
		result, _ := fixedpoint.AddFixed64(identity, sum)
		if fixedpoint.CmpFixed64(result, capLimit) > 0 {
			return capLimit
		}
		return result

	default:
		return identity
	}
}
