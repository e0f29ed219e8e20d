// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serialize

import (
	"bytes"
	"fmt"

	"github.com/zakkeown/factorial/dirty"
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/tick"
)

// Snapshot is a complete partitioned snapshot: five partition blobs
// plus any external module blobs, and the header fields. Produced by
// SerializePartitioned/SerializeIncremental and consumed by
// DeserializePartitioned.
type Snapshot struct {
	Version    uint32
	Tick       int64
	Partitions [5][]byte
	Modules    []moduleBlob
}

// Serialize encodes o as a legacy single-blob snapshot (spec.md §6):
// header followed by one gob-encoded payload blob, no module section
// (the bit-exact wire diagram only appends a module section to the
// partitioned format).
func Serialize(o *tick.Orchestrator) ([]byte, error) {
	payload := legacyPayload{
		Graph:       buildGraphPartition(o),
		Processors:  buildProcessorsPartition(o),
		Inventories: buildInventoriesPartition(o),
		Transports:  buildTransportsPartition(o),
		Junctions:   buildJunctionsPartition(o),
	}
	body, err := encodeGob(payload)
	if err != nil {
		return nil, &DecodeError{Reason: "legacy payload encode", Err: err}
	}

	var buf bytes.Buffer
	writeHeader(&buf, header{Magic: MagicLegacy, Version: CurrentVersion, Tick: o.Tick()})
	buf.Write(body)
	return buf.Bytes(), nil
}

type legacyPayload struct {
	Graph       graphPartition
	Processors  processorsPartition
	Inventories inventoriesPartition
	Transports  transportsPartition
	Junctions   junctionsPartition
}

// SerializePartitioned encodes o's five partitions independently
// (spec.md §6).
func SerializePartitioned(o *tick.Orchestrator) (Snapshot, error) {
	snap := Snapshot{Version: CurrentVersion, Tick: o.Tick()}
	parts := []any{
		buildGraphPartition(o),
		buildProcessorsPartition(o),
		buildInventoriesPartition(o),
		buildTransportsPartition(o),
		buildJunctionsPartition(o),
	}
	for i, p := range parts {
		blob, err := encodeGob(p)
		if err != nil {
			return Snapshot{}, &PartitionDecodeError{Index: i, Err: err}
		}
		snap.Partitions[i] = blob
	}
	return snap, nil
}

// SerializeIncremental encodes only the partitions whose dirty flag is
// set (or all of them if baseline is nil), copying the rest by
// reference from baseline, then clears every partition's dirty flag
// (spec.md §4.12 "Incremental save"). The result is a complete
// snapshot, never a delta.
func SerializeIncremental(o *tick.Orchestrator, baseline *Snapshot) (Snapshot, error) {
	snap := Snapshot{Version: CurrentVersion, Tick: o.Tick()}
	builders := [5]func(*tick.Orchestrator) any{
		func(o *tick.Orchestrator) any { return buildGraphPartition(o) },
		func(o *tick.Orchestrator) any { return buildProcessorsPartition(o) },
		func(o *tick.Orchestrator) any { return buildInventoriesPartition(o) },
		func(o *tick.Orchestrator) any { return buildTransportsPartition(o) },
		func(o *tick.Orchestrator) any { return buildJunctionsPartition(o) },
	}
	dirt := o.Dirty()
	for i := range snap.Partitions {
		part := dirty.Partition(i)
		if baseline != nil && !dirt.PartitionDirty(part) {
			snap.Partitions[i] = baseline.Partitions[i]
			continue
		}
		blob, err := encodeGob(builders[i](o))
		if err != nil {
			return Snapshot{}, &PartitionDecodeError{Index: i, Err: err}
		}
		snap.Partitions[i] = blob
	}
	dirt.ClearAllPartitions()
	return snap, nil
}

// WriteSnapshot renders snap into the partitioned wire format.
func WriteSnapshot(snap Snapshot, modules *ModuleRegistry) []byte {
	var buf bytes.Buffer
	writeHeader(&buf, header{Magic: MagicPartitioned, Version: snap.Version, Tick: uint64(snap.Tick)})
	buf.WriteByte(byte(PartitionCount))
	for _, p := range snap.Partitions {
		writeU32(&buf, uint32(len(p)))
		buf.Write(p)
	}
	writeModuleBlobs(&buf, modules)
	return buf.Bytes()
}

func writeModuleBlobs(buf *bytes.Buffer, modules *ModuleRegistry) {
	if modules == nil {
		writeU16(buf, 0)
		return
	}
	hooks := modules.Hooks()
	writeU16(buf, uint16(len(hooks)))
	for _, h := range hooks {
		name := []byte(h.Name)
		buf.WriteByte(byte(len(name)))
		buf.Write(name)
		writeU32(buf, h.Version)
		payload, err := h.Serialize()
		if err != nil {
			payload = nil
		}
		writeU32(buf, uint32(len(payload)))
		buf.Write(payload)
	}
}

// ReadSnapshot parses the bytes produced by WriteSnapshot back into a
// Snapshot plus its trailing module blobs. It does not reconstruct an
// Orchestrator; pass the result's Snapshot to DeserializePartitioned
// and its module blobs to ApplyModuleBlobs.
func ReadSnapshot(data []byte) (Snapshot, error) {
	h, rest, err := readHeader(data)
	if err != nil {
		return Snapshot{}, err
	}
	if h.Magic != MagicPartitioned {
		return Snapshot{}, ErrInvalidMagic
	}
	if h.Version > CurrentVersion {
		return Snapshot{}, ErrFutureVersion
	}
	count, rest, err := readU8(rest)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Version: h.Version, Tick: int64(h.Tick)}
	for i := 0; i < int(count) && i < len(snap.Partitions); i++ {
		var plen uint32
		plen, rest, err = readU32(rest)
		if err != nil {
			return Snapshot{}, err
		}
		var blob []byte
		blob, rest, err = readBytes(rest, int(plen))
		if err != nil {
			return Snapshot{}, err
		}
		snap.Partitions[i] = blob
	}
	moduleCount, rest, err := readU16(rest)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Modules = make([]moduleBlob, 0, moduleCount)
	for i := 0; i < int(moduleCount); i++ {
		nameLen, r, err := readU8(rest)
		if err != nil {
			return Snapshot{}, err
		}
		rest = r
		var nameBytes []byte
		nameBytes, rest, err = readBytes(rest, int(nameLen))
		if err != nil {
			return Snapshot{}, err
		}
		var version uint32
		version, rest, err = readU32(rest)
		if err != nil {
			return Snapshot{}, err
		}
		var payloadLen uint32
		payloadLen, rest, err = readU32(rest)
		if err != nil {
			return Snapshot{}, err
		}
		var payload []byte
		payload, rest, err = readBytes(rest, int(payloadLen))
		if err != nil {
			return Snapshot{}, err
		}
		snap.Modules = append(snap.Modules, moduleBlob{Name: string(nameBytes), Version: version, Payload: payload})
	}
	return snap, nil
}

// ApplyModuleBlobs dispatches each decoded module blob to its
// registered hook's Deserialize function by name (spec.md §4.12
// "Module hooks" ... "dispatches by name on read"). A blob with no
// matching registered hook is skipped rather than treated as an
// error, since an engine may be restored without every module that
// produced the original snapshot attached.
func ApplyModuleBlobs(modules *ModuleRegistry, blobs []moduleBlob) error {
	if modules == nil {
		return nil
	}
	for _, b := range blobs {
		hook, ok := modules.Lookup(b.Name)
		if !ok || hook.Deserialize == nil {
			continue
		}
		if err := hook.Deserialize(b.Payload); err != nil {
			return fmt.Errorf("serialize: module %q: %w", b.Name, err)
		}
	}
	return nil
}

// Deserialize reconstructs an Orchestrator from a legacy-format
// snapshot. The engine is never partially constructed on failure: any
// error returns a nil Orchestrator.
func Deserialize(data []byte, reg *registry.Registry, migrations *MigrationRegistry) (*tick.Orchestrator, error) {
	h, rest, err := readHeader(data)
	if err != nil {
		return nil, err
	}
	if h.Magic != MagicLegacy {
		return nil, ErrInvalidMagic
	}
	if h.Version > CurrentVersion {
		return nil, ErrFutureVersion
	}
	var payload legacyPayload
	body := rest
	if h.Version < CurrentVersion {
		if migrations == nil {
			return nil, ErrUnsupportedVersion
		}
		_, migrated, _, err := migrations.Apply(h.Version, body, nil)
		if err != nil {
			return nil, ErrUnsupportedVersion
		}
		body = migrated
	}
	if err := decodeGob(body, &payload); err != nil {
		return nil, &DecodeError{Reason: "legacy payload", Err: err}
	}
	return restoreOrchestrator(reg, payload.Graph, payload.Processors, payload.Inventories, payload.Transports, payload.Junctions)
}

// DeserializePartitioned reconstructs an Orchestrator from a
// partitioned-format Snapshot.
func DeserializePartitioned(snap Snapshot, reg *registry.Registry) (*tick.Orchestrator, error) {
	if len(snap.Partitions) != 5 {
		return nil, ErrMissingPartition
	}
	var gp graphPartition
	var pp processorsPartition
	var ip inventoriesPartition
	var tp transportsPartition
	var jp junctionsPartition
	decoders := []struct {
		idx int
		out any
	}{
		{0, &gp}, {1, &pp}, {2, &ip}, {3, &tp}, {4, &jp},
	}
	for _, d := range decoders {
		if len(snap.Partitions[d.idx]) == 0 {
			return nil, ErrMissingPartition
		}
		if err := decodeGob(snap.Partitions[d.idx], d.out); err != nil {
			return nil, &PartitionDecodeError{Index: d.idx, Err: err}
		}
	}
	return restoreOrchestrator(reg, gp, pp, ip, tp, jp)
}

// restoreOrchestrator rebuilds a fresh Orchestrator and replays the
// decoded partitions onto it. Node/edge handles are not reproduced
// bit-for-bit: a translation table maps each partition's persisted
// NodeID/EdgeID to the identifier the fresh graph assigns on replay,
// so correctness is preserved regardless of how many removals
// happened before the original snapshot was taken, at the cost of not
// reproducing the exact generation/index pairs from the saved run.
func restoreOrchestrator(reg *registry.Registry, gp graphPartition, pp processorsPartition, ip inventoriesPartition, tp transportsPartition, jp junctionsPartition) (*tick.Orchestrator, error) {
	cfg := tick.DefaultConfig()
	cfg.Strategy = gp.Strategy
	o := tick.New(cfg, reg, len(gp.Nodes), len(gp.Edges))

	nodeRemap := make(map[graph.NodeID]graph.NodeID, len(gp.Nodes))
	pendingNodes := make([]graph.PendingNodeID, len(gp.Nodes))
	for i, n := range gp.Nodes {
		pendingNodes[i] = o.QueueAddNode(n.BuildingType)
	}
	o.Step()
	apply := o.LastApply()
	for i, n := range gp.Nodes {
		nodeRemap[n.ID] = apply.Nodes[pendingNodes[i]]
	}

	edgeRemap := make(map[graph.EdgeID]graph.EdgeID, len(gp.Edges))
	pendingEdges := make([]graph.PendingEdgeID, len(gp.Edges))
	for i, e := range gp.Edges {
		from, to := nodeRemap[e.From], nodeRemap[e.To]
		if e.HasFilter {
			pendingEdges[i] = o.QueueConnectFiltered(from, to, e.Filter)
		} else {
			pendingEdges[i] = o.QueueConnect(from, to)
		}
	}
	o.Step()
	apply = o.LastApply()
	for i, e := range gp.Edges {
		edgeRemap[e.ID] = apply.Edges[pendingEdges[i]]
	}

	o.RestoreTick(gp.Tick)
	o.SetPaused(gp.Paused)

	for _, n := range pp.Nodes {
		id, ok := nodeRemap[n.ID]
		if !ok {
			continue
		}
		if n.Proc != nil {
			o.SetProcessor(id, n.Proc)
		}
		if len(n.Modifiers) > 0 {
			o.SetModifiers(id, n.Modifiers)
		}
		if rec, ok := o.Node(id); ok {
			rec.State = n.State
		}
	}

	for _, n := range ip.Nodes {
		id, ok := nodeRemap[n.ID]
		if !ok {
			continue
		}
		o.SetInventoryCapacity(id, n.InputCaps, n.OutputCaps)
		rec, ok := o.Node(id)
		if !ok {
			continue
		}
		for _, st := range n.Input {
			rec.Inventory.Input.Add(st.Item, st.Quantity, st.Handle)
		}
		for _, st := range n.Output {
			rec.Inventory.Output.Add(st.Item, st.Quantity, st.Handle)
		}
	}

	for _, e := range tp.Edges {
		id, ok := edgeRemap[e.ID]
		if !ok {
			continue
		}
		o.SetTransport(id, e.Transport, e.Filter)
		if rec, ok := o.Edge(id); ok {
			rec.Budget = e.Budget
			rec.HasBudget = e.HasBudget
		}
	}

	for _, n := range jp.Nodes {
		id, ok := nodeRemap[n.ID]
		if !ok {
			continue
		}
		switch {
		case n.HasSplitter:
			o.SetJunctionSplitter(id, n.SplitterCfg)
		case n.HasInserter:
			dst := nodeRemap[n.InserterDst]
			o.SetJunctionInserter(id, dst, n.InserterCfg)
			// SetJunctionInserter allocates a fresh zeroed
			// InserterState; overwrite it with the persisted counter.
			if snap, ok := o.JunctionOf(id); ok && snap.InserterState != nil {
				*snap.InserterState = n.InserterState
			}
		}
	}

	return o, nil
}
