// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factorial

import (
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/serialize"
)

// Serialize writes the legacy whole-snapshot wire format (spec.md §6
// "serialize()"/"deserialize(bytes)").
func (e *Engine) Serialize() ([]byte, error) {
	return serialize.Serialize(e.o)
}

// SerializePartitioned writes the current state as a Snapshot with
// every partition freshly encoded (the dirty flags are left as they
// are), suitable as a fresh baseline for SerializeIncremental.
func (e *Engine) SerializePartitioned() (Snapshot, error) {
	return serialize.SerializePartitioned(e.o)
}

// SerializeIncremental reuses baseline's partitions that have not
// changed since it was taken, only re-encoding partitions the dirty
// tracker marked since then (spec.md §6 "incremental snapshot").
func (e *Engine) SerializeIncremental(baseline *Snapshot) (Snapshot, error) {
	return serialize.SerializeIncremental(e.o, baseline)
}

// WriteSnapshot encodes snap plus every registered module's state
// into the partitioned wire format.
func (e *Engine) WriteSnapshot(snap Snapshot) []byte {
	return serialize.WriteSnapshot(snap, e.modules)
}

// ReadSnapshot decodes bytes produced by WriteSnapshot back into a
// Snapshot and applies its module blobs to this Engine's registered
// module hooks.
func (e *Engine) ReadSnapshot(data []byte) (Snapshot, error) {
	snap, err := serialize.ReadSnapshot(data)
	if err != nil {
		return Snapshot{}, err
	}
	if err := serialize.ApplyModuleBlobs(e.modules, snap.Modules); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Deserialize replaces the engine's live orchestrator with the state
// encoded in data, running any registered migration chain. Only the
// legacy wire format written by Serialize is accepted; partitioned
// bytes are rejected with ErrInvalidMagic.
func (e *Engine) Deserialize(data []byte, reg *registry.Registry, migrations *serialize.MigrationRegistry) error {
	o, err := serialize.Deserialize(data, reg, migrations)
	if err != nil {
		return err
	}
	e.o = o
	e.o.Bus().Subscribe(e.recordEvent)
	return nil
}

// DeserializePartitioned replaces the engine's live orchestrator with
// the state encoded in snap, without running format detection or
// migration (the caller already has a typed Snapshot in hand).
func (e *Engine) DeserializePartitioned(snap Snapshot, reg *registry.Registry) error {
	o, err := serialize.DeserializePartitioned(snap, reg)
	if err != nil {
		return err
	}
	e.o = o
	e.o.Bus().Subscribe(e.recordEvent)
	return nil
}

// DetectSnapshotFormat reports the wire magic at the front of data,
// so a caller can choose between Deserialize and DeserializePartitioned
// without guessing.
func DetectSnapshotFormat(data []byte) (magic uint32, ok bool) {
	return serialize.DetectFormat(data)
}

// PushSnapshot records snap in the engine's undo/replay ring buffer,
// returning the snapshot it evicted, if the ring was full.
func (e *Engine) PushSnapshot(snap Snapshot) (evicted Snapshot, ok bool) {
	return e.ring.Push(snap)
}

// LatestSnapshot returns the most recently pushed snapshot, if any.
func (e *Engine) LatestSnapshot() (Snapshot, bool) {
	return e.ring.Latest()
}

// RegisterModuleHook registers a wire-level serialize/deserialize
// contract directly, bypassing the higher-level on_tick/on_event
// wiring RegisterModule performs. Most callers want RegisterModule.
func (e *Engine) RegisterModuleHook(hook serialize.ModuleHook) {
	e.modules.Register(hook)
}
