// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package handle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaAllocGetFree(t *testing.T) {
	require := require.New(t)

	a := NewArena[string](4)
	h1 := a.Alloc("alpha")
	h2 := a.Alloc("beta")

	v, ok := a.Get(h1)
	require.True(ok)
	require.Equal("alpha", v)

	require.True(a.Free(h1))
	_, ok = a.Get(h1)
	require.False(ok)

	// beta is unaffected by freeing alpha.
	v, ok = a.Get(h2)
	require.True(ok)
	require.Equal("beta", v)
}

func TestArenaGenerationRecycle(t *testing.T) {
	require := require.New(t)

	a := NewArena[int](1)
	h1 := a.Alloc(1)
	require.True(a.Free(h1))

	h2 := a.Alloc(2)
	require.Equal(h1.Index, h2.Index)
	require.NotEqual(h1.Gen, h2.Gen)

	// The stale handle must not resolve to the new occupant.
	_, ok := a.Get(h1)
	require.False(ok)
	v, ok := a.Get(h2)
	require.True(ok)
	require.Equal(2, v)
}

func TestArenaRangeOrder(t *testing.T) {
	require := require.New(t)

	a := NewArena[int](3)
	a.Alloc(10)
	a.Alloc(20)
	a.Alloc(30)

	var seen []int
	a.Range(func(h Handle, v *int) bool {
		seen = append(seen, *v)
		return true
	})
	require.Equal([]int{10, 20, 30}, seen)
}

func TestHandleLess(t *testing.T) {
	require := require.New(t)

	a := Handle{Index: 5, Gen: 1}
	b := Handle{Index: 2, Gen: 2}
	require.True(Less(a, b))
	require.False(Less(b, a))
}
