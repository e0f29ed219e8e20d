// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zakkeown/factorial/event"
	"github.com/zakkeown/factorial/tick"
)

func TestBuilderDefaultsMatchTickDefaultConfig(t *testing.T) {
	require := require.New(t)
	opts, err := NewBuilder().Build()
	require.NoError(err)
	require.Equal(tick.DefaultConfig(), opts.ToConfig())
}

func TestBuilderRejectsInvalidFixedTimestep(t *testing.T) {
	require := require.New(t)
	_, err := NewBuilder().WithFixedTimestep(0).Build()
	require.ErrorIs(err, ErrInvalidFixedTimestep)
}

func TestBuilderRejectsInvalidStrategy(t *testing.T) {
	require := require.New(t)
	_, err := NewBuilder().WithStrategy(tick.Strategy(99)).Build()
	require.ErrorIs(err, ErrInvalidStrategy)
}

func TestBuilderAccumulatesOnlyFirstError(t *testing.T) {
	require := require.New(t)
	_, err := NewBuilder().
		WithFixedTimestep(0).
		WithReactiveQueueCapacity(-1).
		Build()
	require.ErrorIs(err, ErrInvalidFixedTimestep)
}

func TestBuilderWithSuppressedKindsAndBufferCapacity(t *testing.T) {
	require := require.New(t)
	opts, err := NewBuilder().
		WithEventBufferCapacity(event.ItemProduced, 2048).
		WithSuppressedKinds(event.ItemDelivered, event.TransportFull).
		Build()
	require.NoError(err)
	require.Equal(2048, opts.EventBufferCapacities[event.ItemProduced])
	require.ElementsMatch([]event.Kind{event.ItemDelivered, event.TransportFull}, opts.SuppressedEventKinds)
}

func TestPresetsProduceValidConfigs(t *testing.T) {
	require := require.New(t)
	for _, opts := range []Options{Default(), HighThroughput(), Deterministic(42)} {
		require.GreaterOrEqual(opts.FixedTimestep, int64(1))
	}
}
