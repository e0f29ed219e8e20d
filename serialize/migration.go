// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serialize

import "fmt"

// Migration transforms a snapshot's raw payload from FromVersion to
// FromVersion+1. Registered migrations are applied one version at a
// time until the payload reaches CurrentVersion (spec.md §4.12
// "Version handling"). Grounded on the teacher's upgrade.Config
// timestamp-gated activation idiom (utils/upgrade/config.go),
// generalized here from "is this timestamp past an upgrade's
// activation time" to "step this payload up by one format version",
// since a snapshot migration is activation-gated by format version
// rather than wall-clock time.
type Migration struct {
	FromVersion uint32
	Apply       func(legacyPayload []byte, partitions [][]byte) ([]byte, [][]byte, error)
}

// MigrationRegistry holds registered migrations keyed by FromVersion.
type MigrationRegistry struct {
	byVersion map[uint32]Migration
}

// NewMigrationRegistry returns an empty registry.
func NewMigrationRegistry() *MigrationRegistry {
	return &MigrationRegistry{byVersion: make(map[uint32]Migration)}
}

// Register adds a migration stepping FromVersion to FromVersion+1.
func (r *MigrationRegistry) Register(m Migration) {
	r.byVersion[m.FromVersion] = m
}

// Apply steps payload/partitions from version up to CurrentVersion,
// one registered migration at a time. Fails if a required step is
// missing.
func (r *MigrationRegistry) Apply(version uint32, legacyPayload []byte, partitions [][]byte) (uint32, []byte, [][]byte, error) {
	for version < CurrentVersion {
		m, ok := r.byVersion[version]
		if !ok {
			return version, nil, nil, fmt.Errorf("serialize: no migration registered for version %d", version)
		}
		var err error
		legacyPayload, partitions, err = m.Apply(legacyPayload, partitions)
		if err != nil {
			return version, nil, nil, fmt.Errorf("serialize: migration from version %d: %w", version, err)
		}
		version++
	}
	return version, legacyPayload, partitions, nil
}
