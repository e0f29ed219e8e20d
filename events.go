// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factorial

import "github.com/zakkeown/factorial/event"

// PollEvents drains and returns every buffered event of kind recorded
// since the last call to PollEvents(kind)
// (spec.md §6 "poll_events(kind, buffer)"). The engine self-subscribes
// as a passive handler at construction time so it always has a copy
// of every dispatched event available for pull-style consumption,
// independent of event.Bus.Drain's push dispatch inside each pass.
func (e *Engine) PollEvents(kind EventKind) []event.Event {
	buf := e.eventLog[kind]
	e.eventLog[kind] = nil
	return buf
}

// PendingEventCount reports how many events of kind are waiting to be
// collected by PollEvents, without draining them.
func (e *Engine) PendingEventCount(kind EventKind) int {
	return len(e.eventLog[kind])
}

// SuppressEvent stops the bus from recording kind at all: new
// occurrences are discarded without being counted or buffered for
// PollEvents. Events of kind already buffered stay available to
// PollEvents.
func (e *Engine) SuppressEvent(kind EventKind) {
	e.o.Bus().Suppress(kind)
}

// UnsuppressEvent re-enables recording of kind.
func (e *Engine) UnsuppressEvent(kind EventKind) {
	e.o.Bus().Unsuppress(kind)
}
