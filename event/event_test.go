// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusEmitAndDrain(t *testing.T) {
	require := require.New(t)
	b := NewBus(nil, nil)

	b.Emit(Event{Kind: ItemProduced, Tick: 1, Quantity: 5})
	b.Emit(Event{Kind: ItemConsumed, Tick: 1, Quantity: 2})

	entries := b.Drain(1)
	require.Len(entries, 2)
	require.Equal(ItemProduced, entries[0].Kind)
	require.Equal(ItemConsumed, entries[1].Kind)

	require.Empty(b.Drain(1))
}

func TestBusSuppressionDropsEmit(t *testing.T) {
	require := require.New(t)
	b := NewBus(nil, []Kind{ItemProduced})

	b.Emit(Event{Kind: ItemProduced, Tick: 1})
	b.Emit(Event{Kind: ItemConsumed, Tick: 1})

	entries := b.Drain(1)
	require.Len(entries, 1)
	require.Equal(ItemConsumed, entries[0].Kind)

	b.Unsuppress(ItemProduced)
	b.Emit(Event{Kind: ItemProduced, Tick: 2})
	entries = b.Drain(2)
	require.Len(entries, 1)
}

func TestBusOverflowEmitsEventsDropped(t *testing.T) {
	require := require.New(t)
	b := NewBus(Capacities{ItemProduced: 2}, nil)

	for i := 0; i < 4; i++ {
		b.Emit(Event{Kind: ItemProduced, Tick: int64(i)})
	}

	entries := b.Drain(4)
	var dropped *Event
	var produced int
	for i := range entries {
		if entries[i].Kind == EventsDropped {
			dropped = &entries[i]
		} else if entries[i].Kind == ItemProduced {
			produced++
		}
	}
	require.Equal(2, produced)
	require.NotNil(dropped)
	require.Equal(ItemProduced, dropped.DroppedKind)
	require.Equal(2, dropped.DroppedCount)
}

func TestBusPassiveSubscribersInvokedInOrder(t *testing.T) {
	require := require.New(t)
	b := NewBus(nil, nil)

	var order []int
	b.Subscribe(func(Event) { order = append(order, 1) })
	b.Subscribe(func(Event) { order = append(order, 2) })

	b.Emit(Event{Kind: ItemProduced})
	entries := b.Drain(0)
	b.DispatchPassive(entries)

	require.Equal([]int{1, 2}, order)
}

func TestBusReactiveMutationEnqueued(t *testing.T) {
	require := require.New(t)
	b := NewBus(nil, nil)

	ran := false
	b.SubscribeReactive(func(e Event) (Mutation, bool) {
		if e.Kind != BuildingStalled {
			return nil, false
		}
		return func() { ran = true }, true
	})

	b.Emit(Event{Kind: BuildingStalled})
	entries := b.Drain(0)
	muts := b.DispatchReactive(entries)

	require.Len(muts, 1)
	muts[0]()
	require.True(ran)
}
