// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package item

import (
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/registry"
)

// Stack is one entry in a Slot: a run of quantity occurrences of the
// same item type. Fungible stacks carry Handle == handle.Nil and
// quantity tracked purely as an integer counter. Stateful stacks
// carry a representative Handle into a PropertyArenas arena; distinct
// property values that do not merge occupy distinct sub-stacks
// (spec.md §4.4, storage option (c)).
type Stack struct {
	Item     registry.ItemTypeID
	Quantity int64
	Handle   handle.Handle
}

func (s Stack) stateful() bool {
	return !s.Handle.IsNil()
}
