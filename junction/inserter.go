// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package junction

import (
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/transport"
)

// ProcessInserter advances an Inserter node by one tick: a cycle
// counter increments each tick; once it reaches CycleTime, up to
// StackSize items (subject to Filter) transfer between the configured
// source and destination in one instantaneous step, and the counter
// resets (spec.md §4.8). The transfer itself is identical in shape to
// a Batch edge's, so it is expressed in terms of transport.Batch
// rather than duplicating the slot-scanning loop.
func ProcessInserter(cfg *InserterConfig, state *InserterState, src, dst *item.Inventory) transport.Result {
	batchCfg := transport.BatchConfig{BatchSize: cfg.StackSize, CycleTime: cfg.CycleTime}
	batchState := transport.BatchState{Counter: state.Counter}
	filter := transport.Filter{Item: cfg.Filter, Has: cfg.Has}

	result := transport.ProcessBatch(&batchCfg, &batchState, src, dst, filter)
	state.Counter = batchState.Counter
	return result
}
