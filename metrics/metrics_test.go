// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewCollectorsRegistersAgainstRegistry(t *testing.T) {
	require := require.New(t)
	reg := prometheus.NewRegistry()

	c, err := NewCollectors("factorial", reg)
	require.NoError(err)
	require.NotNil(c.TickDuration)
	require.NotNil(c.EntitiesProcessed)

	families, err := reg.Gather()
	require.NoError(err)
	require.Len(families, 4)
}

func TestNewCollectorsWithNilRegistererSkipsRegistration(t *testing.T) {
	require := require.New(t)
	c, err := NewCollectors("factorial", nil)
	require.NoError(err)
	require.NotNil(c.Saturations)
}
