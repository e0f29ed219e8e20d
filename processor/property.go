// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package processor

import (
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/procstate"
	"github.com/zakkeown/factorial/registry"
)

// ProcessProperty consumes one occurrence of cfg.InputType, applies
// cfg.Transform to its property record at one fixed slot index, and
// produces one occurrence of cfg.OutputType carrying the transformed
// record. The input occurrence's record is read from its drained
// handle when the removed occurrence fully drains a distinct sub-stack;
// when only a partial quantity is removed from a multi-occurrence
// fungible-by-handle sub-stack, no record is available and a
// zero-valued record of the output type's layout is used instead
// (spec.md §4.4 storage option (c) does not guarantee a handle per
// unit removed). Output placement is attempted before the input's old
// record is freed, so a full output half rolls the input back instead
// of losing it.
func ProcessProperty(cfg *PropertyConfig, reg *registry.Registry, inv *item.Inventory, props *item.PropertyArenas) (Result, procstate.State) {
	removed, drained := inv.Input.Remove(cfg.InputType, 1)
	if removed == 0 {
		return Result{}, procstate.NewStalled(procstate.MissingInputs)
	}

	var consumedHandle handle.Handle
	var record item.PropertyRecord
	if len(drained) > 0 {
		consumedHandle = drained[0]
		record, _ = props.Get(cfg.InputType, consumedHandle)
	}
	if record == nil {
		outType, _ := reg.ItemByID(cfg.OutputType)
		record = make(item.PropertyRecord, len(outType.Properties))
	} else {
		dup := make(item.PropertyRecord, len(record))
		copy(dup, record)
		record = dup
	}

	applyTransform(record, cfg.Transform)

	newHandle := props.Alloc(cfg.OutputType, record)
	overflow := inv.Output.Add(cfg.OutputType, 1, newHandle)
	if overflow > 0 {
		props.Free(cfg.OutputType, newHandle)
		inv.Input.Add(cfg.InputType, 1, consumedHandle)
		return Result{}, procstate.NewStalled(procstate.OutputFull)
	}

	if consumedHandle != handle.Nil {
		props.Free(cfg.InputType, consumedHandle)
	}

	return Result{
		Consumed:     []ConsumedEntry{{Item: cfg.InputType, Quantity: 1}},
		Produced:     []ProducedEntry{{Item: cfg.OutputType, Quantity: 1}},
		StateChanged: true,
	}, procstate.NewIdle()
}

func applyTransform(record item.PropertyRecord, t Transform) {
	if t.PropertyIndex < 0 || t.PropertyIndex >= len(record) {
		return
	}
	slot := &record[t.PropertyIndex]
	switch slot.Kind {
	case registry.PropertyFixed64:
		applyFixed64(slot, t)
	case registry.PropertyFixed32:
		applyFixed32(slot, t)
	case registry.PropertyInt64:
		applyInt64(slot, t)
	case registry.PropertyBool:
		if t.Kind == Set {
			slot.Bool = t.OperandFixed64 != 0 || t.OperandFixed32 != 0
		}
	}
}

func applyInt64(slot *item.PropertyValue, t Transform) {
	operand := t.OperandFixed64.Int()
	if !t.UseFixed64 {
		operand = int64(t.OperandFixed32.Int())
	}
	switch t.Kind {
	case Set:
		slot.Int64 = operand
	case Add:
		slot.Int64 += operand
	case Multiply:
		slot.Int64 *= operand
	}
}
