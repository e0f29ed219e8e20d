// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ordered

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashmapInsertionOrder(t *testing.T) {
	require := require.New(t)

	m := NewHashmap[string, int]()
	m.Put("c", 3)
	m.Put("a", 1)
	m.Put("b", 2)

	require.Equal([]string{"c", "a", "b"}, m.Keys())

	m.Put("a", 100)
	require.Equal([]string{"c", "a", "b"}, m.Keys())
	v, ok := m.Get("a")
	require.True(ok)
	require.Equal(100, v)
}

func TestHashmapDelete(t *testing.T) {
	require := require.New(t)

	m := NewHashmap[int, string]()
	m.Put(1, "one")
	m.Put(2, "two")
	m.Put(3, "three")

	m.Delete(2)
	require.Equal([]int{1, 3}, m.Keys())
	require.False(m.Contains(2))
	require.Equal(2, m.Len())
}

func TestHashmapRangeStopsEarly(t *testing.T) {
	require := require.New(t)

	m := NewHashmap[int, int]()
	for i := 0; i < 5; i++ {
		m.Put(i, i*i)
	}

	var seen []int
	m.Range(func(k, v int) bool {
		seen = append(seen, k)
		return k < 2
	})
	require.Equal([]int{0, 1, 2}, seen)
}
