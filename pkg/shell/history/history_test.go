package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndPrevious(t *testing.T) {
	h := New(3)

	t.Run("EmptyLineIsNoop", func(t *testing.T) {
		h.Add("")
		assert.Equal(t, 0, h.Len())
	})

	t.Run("AddThenPreviousRoundTrips", func(t *testing.T) {
		h.Add("echo a")
		line, ok := h.Previous()
		require.True(t, ok)
		assert.Equal(t, "echo a", line)
	})
}

func TestFIFOEviction(t *testing.T) {
	h := New(2)
	h.Add("one")
	h.Add("two")
	h.Add("three")
	require.Equal(t, 2, h.Len())

	line, ok := h.Previous()
	require.True(t, ok)
	assert.Equal(t, "three", line)
	line, ok = h.Previous()
	require.True(t, ok)
	assert.Equal(t, "two", line)
	_, ok = h.Previous()
	assert.False(t, ok, "oldest boundary must not go past 'one' since it was evicted")
}

func TestNavigation(t *testing.T) {
	h := New(8)
	h.Add("echo a")
	h.Add("echo b")
	h.Add("echo c")

	h.SaveCurrent("")

	line, ok := h.Previous()
	require.True(t, ok)
	assert.Equal(t, "echo c", line)

	line, ok = h.Previous()
	require.True(t, ok)
	assert.Equal(t, "echo b", line)

	line, ok = h.Previous()
	require.True(t, ok)
	assert.Equal(t, "echo a", line)

	_, ok = h.Previous()
	assert.False(t, ok, "previous at oldest boundary returns false, cursor unchanged")

	line, ok = h.Next()
	require.True(t, ok)
	assert.Equal(t, "echo b", line)

	line, ok = h.Next()
	require.True(t, ok)
	assert.Equal(t, "echo c", line)

	line, ok = h.Next()
	require.True(t, ok, "next past newest restores saved-current")
	assert.Equal(t, "", line)
	assert.False(t, h.Navigating())
}

func TestNextWithoutNavigatingReturnsFalse(t *testing.T) {
	h := New(4)
	h.Add("a")
	_, ok := h.Next()
	assert.False(t, ok)
}

func TestResetClearsCursorAndSaved(t *testing.T) {
	h := New(4)
	h.Add("a")
	h.Add("b")
	h.SaveCurrent("in progress")
	_, _ = h.Previous()
	require.True(t, h.Navigating())

	h.Reset()
	assert.False(t, h.Navigating())
}

func TestAddResetsNavigation(t *testing.T) {
	h := New(4)
	h.Add("a")
	h.Add("b")
	_, _ = h.Previous()
	require.True(t, h.Navigating())

	h.Add("c")
	assert.False(t, h.Navigating())
}

func TestZeroCapacityIsStub(t *testing.T) {
	h := New(0)
	h.Add("whatever")
	assert.Equal(t, 0, h.Len())
	_, ok := h.Previous()
	assert.False(t, ok)
	_, ok = h.Next()
	assert.False(t, ok)
}

func TestNegativeCapacityClampsToZero(t *testing.T) {
	h := New(-5)
	assert.Equal(t, 0, h.Len())
}
