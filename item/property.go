// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package item implements the slot and inventory model of spec.md
// §4.4: capacity-checked slots holding fungible integer counts or
// stateful item handles, grouped into input/output inventory halves.
package item

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/ordered"
	"github.com/zakkeown/factorial/registry"
)

// PropertyValue is one tagged-union slot of a stateful item's
// fixed-layout property record, positionally aligned with the owning
// registry.ItemType's Properties declaration.
type PropertyValue struct {
	Kind    registry.PropertyKind
	Int64   int64
	Fixed32 fixedpoint.Fixed32
	Fixed64 fixedpoint.Fixed64
	Bool    bool
}

// Equal reports whether two property values carry the same kind and
// payload, used to decide whether two stateful occurrences' records
// merge (spec.md §4.4: "equal property values: the quantities merge").
func (v PropertyValue) Equal(o PropertyValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case registry.PropertyInt64:
		return v.Int64 == o.Int64
	case registry.PropertyFixed32:
		return v.Fixed32 == o.Fixed32
	case registry.PropertyFixed64:
		return v.Fixed64 == o.Fixed64
	case registry.PropertyBool:
		return v.Bool == o.Bool
	default:
		return false
	}
}

// PropertyRecord is the fixed-layout property payload of one stateful
// item occurrence, positionally aligned with its item type's property
// declarations.
type PropertyRecord []PropertyValue

// RecordsEqual reports whether two records carry identical values in
// every position.
func RecordsEqual(a, b PropertyRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// PropertyArenas owns one handle.Arena[PropertyRecord] per stateful
// item type, allocated lazily on first use. A stateful item
// occurrence is referenced everywhere else purely by handle.Handle
// plus its registry.ItemTypeID; the owning arena is looked up here.
type PropertyArenas struct {
	arenas *ordered.Hashmap[registry.ItemTypeID, *handle.Arena[PropertyRecord]]
}

// NewPropertyArenas returns an empty PropertyArenas manager.
func NewPropertyArenas() *PropertyArenas {
	return &PropertyArenas{arenas: ordered.NewHashmap[registry.ItemTypeID, *handle.Arena[PropertyRecord]]()}
}

func (p *PropertyArenas) arenaFor(item registry.ItemTypeID) *handle.Arena[PropertyRecord] {
	if a, ok := p.arenas.Get(item); ok {
		return a
	}
	a := handle.NewArena[PropertyRecord](16)
	p.arenas.Put(item, a)
	return a
}

// Alloc creates a new stateful occurrence of item with the given
// record and returns its handle.
func (p *PropertyArenas) Alloc(item registry.ItemTypeID, record PropertyRecord) handle.Handle {
	return p.arenaFor(item).Alloc(record)
}

// Get returns the property record for a stateful occurrence, or false
// if h is stale or item has no arena.
func (p *PropertyArenas) Get(item registry.ItemTypeID, h handle.Handle) (PropertyRecord, bool) {
	a, ok := p.arenas.Get(item)
	if !ok {
		return nil, false
	}
	return a.Get(h)
}

// Free releases a stateful occurrence, e.g. when its item is consumed
// by a processor.
func (p *PropertyArenas) Free(item registry.ItemTypeID, h handle.Handle) bool {
	a, ok := p.arenas.Get(item)
	if !ok {
		return false
	}
	return a.Free(h)
}
