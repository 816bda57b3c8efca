package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTableIDsAreNeverReused(t *testing.T) {
	var h handleTable[string]

	a := h.put("a")
	b := h.put("b")
	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)

	v, ok := h.take(a)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = h.take(a)
	assert.False(t, ok, "a released id stays released")

	c := h.put("c")
	assert.NotEqual(t, a, c)
	assert.Greater(t, c, b)
	assert.Equal(t, 2, h.count())
}

func TestHandleTableGet(t *testing.T) {
	var h handleTable[int]
	id := h.put(7)

	v, ok := h.get(id)
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = h.get(0)
	assert.False(t, ok)
	_, ok = h.get(id + 100)
	assert.False(t, ok)
}

func TestHandleTableDrainIsOrdered(t *testing.T) {
	var h handleTable[int]
	for i := 0; i < 20; i++ {
		h.put(i)
	}
	h.take(3)

	got := h.drain()
	require.Len(t, got, 19)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i])
	}
	assert.Equal(t, 0, h.count())
	assert.Empty(t, h.drain())
}
