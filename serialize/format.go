// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package serialize implements the bit-exact snapshot wire format of
// spec.md §4.12/§6: a fixed-layout binary header followed by either a
// single legacy payload or five independently encoded partition
// payloads plus trailing module blobs. The header is hand-rolled over
// encoding/binary to pin the exact byte layout the format demands;
// per-partition and per-module payload bodies use encoding/gob, which
// is deterministic per Go version and needs no schema registration —
// the teacher's own codec (codec/codec.go) is JSON, which cannot
// express this fixed-width, length-prefixed, magic-tagged binary
// shape, so the payload codec is rewritten around the standard
// library's binary codec instead of following the teacher's JSON
// choice literally.
package serialize

import "encoding/binary"

// Magic values identify the two snapshot formats (spec.md §6).
const (
	MagicLegacy      uint32 = 0xFAC70001
	MagicPartitioned uint32 = 0xFAC70002
)

// CurrentVersion is this build's snapshot format version. Headers
// with a lower version are migrated; headers with a higher version
// fail with ErrFutureVersion.
const CurrentVersion uint32 = 1

// PartitionCount is the fixed number of partitions in a partitioned
// snapshot (spec.md §4.12's table: Graph, Processors, Inventories,
// Transports, Junctions).
const PartitionCount uint8 = 5

var byteOrder = binary.LittleEndian
