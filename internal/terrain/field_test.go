package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireAtRest fails if any tile breaks the per-tile rules.
func requireAtRest(t *testing.T, f *Field) {
	t.Helper()
	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			s, _ := f.State(x, y)
			require.True(t, s.Valid(), "tile (%d,%d) = %s", x, y, s)
		}
	}
}

func TestFieldGetOutOfBounds(t *testing.T) {
	f := NewField(4, 3)
	for _, c := range []Coord{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {10, 10}} {
		_, ok := f.Get(c.X, c.Y)
		assert.False(t, ok, "%v", c)
		assert.False(t, f.Set(c.X, c.Y, 1, [4]int{}), "%v", c)
	}
}

func TestFieldSetGet(t *testing.T) {
	f := NewField(4, 3)
	require.True(t, f.Set(3, 2, 7, [4]int{2, 1, 0, 1}))

	tile, ok := f.Get(3, 2)
	require.True(t, ok)
	assert.Equal(t, 7, tile.Height)
	assert.Equal(t, [4]int{2, 1, 0, 1}, tile.Vertices)
	assert.Equal(t, 9, tile.Corner(Left))
	assert.Equal(t, 7, tile.Corner(Right))

	other, _ := f.Get(2, 2)
	assert.Equal(t, 0, other.Height, "neighbour untouched")
}

func TestFieldGetSetRoundTrip(t *testing.T) {
	f := NewField(3, 3)
	f.Set(1, 1, 4, [4]int{0, 1, 1, 0})
	f.SetPaths(1, 1, []Path{{0, 14}, {2, 12}})
	before := f.Clone()

	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			tile, _ := f.Get(x, y)
			f.Set(x, y, tile.Height, tile.Vertices)
		}
	}
	assert.Equal(t, before, f)
}

func TestFieldNeighbors(t *testing.T) {
	f := NewField(5, 5)
	assert.Len(t, f.Neighbors(0, 0), 3)
	assert.Len(t, f.Neighbors(0, 2), 5)
	assert.Len(t, f.Neighbors(2, 2), 8)
	assert.Empty(t, f.Neighbors(-5, -5))
	assert.ElementsMatch(t, []Coord{{1, 0}, {0, 1}, {1, 1}}, f.Neighbors(0, 0))
}

func TestVertexStateIsDetached(t *testing.T) {
	f := NewField(2, 2)
	a, _ := f.State(0, 0)
	b, _ := f.State(0, 0)

	a.RaiseFace()
	assert.Equal(t, 0, b.Height, "second view must not see the first")
	tile, _ := f.Get(0, 0)
	assert.Equal(t, 0, tile.Height, "grid changes only on commit")

	require.True(t, f.Commit(0, 0, a))
	tile, _ = f.Get(0, 0)
	assert.Equal(t, 1, tile.Height)
}

func TestFieldPathsAreCopied(t *testing.T) {
	f := NewField(1, 1)
	paths := []Path{{1, 13}}
	f.SetPaths(0, 0, paths)
	paths[0][0] = 99

	tile, _ := f.Get(0, 0)
	require.Len(t, tile.Paths, 1)
	assert.Equal(t, Path{1, 13}, tile.Paths[0])

	tile.Paths[0][1] = 42
	again, _ := f.Get(0, 0)
	assert.Equal(t, Path{1, 13}, again.Paths[0])

	f.Set(0, 0, 3, [4]int{})
	again, _ = f.Get(0, 0)
	assert.Equal(t, Path{1, 13}, again.Paths[0], "set keeps overlay paths")
}

func TestFieldAltitudeRange(t *testing.T) {
	f := NewField(2, 2)
	f.Set(1, 1, 3, [4]int{2, 1, 0, 1})
	lo, hi := f.AltitudeRange()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 5, hi)

	lo, hi = NewField(0, 0).AltitudeRange()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}
