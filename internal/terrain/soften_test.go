package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maxSeam returns the largest elevation difference between coincident
// corners of adjacent tiles.
func maxSeam(f *Field) int {
	worst := 0
	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			s, _ := f.State(x, y)
			for _, link := range cornerLinks {
				n, ok := f.State(x+link.dx, y+link.dy)
				if !ok {
					continue
				}
				for i, a := range link.src {
					d := s.Corner(a) - n.Corner(link.dst[i])
					worst = max(worst, d, -d)
				}
			}
		}
	}
	return worst
}

func TestCornerLinksAreSymmetric(t *testing.T) {
	for _, l := range cornerLinks {
		found := false
		for _, back := range cornerLinks {
			if back.dx == -l.dx && back.dy == -l.dy {
				assert.ElementsMatch(t, l.src, back.dst)
				assert.ElementsMatch(t, l.dst, back.src)
				found = true
			}
		}
		assert.True(t, found, "no reverse link for (%d,%d)", l.dx, l.dy)
	}
}

func TestSoftenUpRaisedTile(t *testing.T) {
	f := NewField(5, 5)
	f.Set(2, 2, 3, [4]int{})

	res := f.Soften([]Coord{{2, 2}}, 1)
	assert.Equal(t, 2, res.Generations)
	assert.LessOrEqual(t, res.Generations, 3)
	assert.Len(t, res.Affected, 9)

	centre, _ := f.State(2, 2)
	assert.Equal(t, VertexState{Height: 3}, centre, "seed is not modified")
	for _, link := range cornerLinks {
		n, ok := f.State(2+link.dx, 2+link.dy)
		require.True(t, ok)
		for i, a := range link.src {
			assert.Equal(t, centre.Corner(a)-1, n.Corner(link.dst[i]),
				"neighbour (%d,%d) corner %d", link.dx, link.dy, link.dst[i])
		}
	}

	east, _ := f.State(3, 2)
	assert.Equal(t, VertexState{Height: 1, Offsets: [4]int{0, 0, 1, 1}}, east)
	diag, _ := f.State(3, 1)
	assert.Equal(t, VertexState{Height: 0, Offsets: [4]int{0, 1, 2, 1}}, diag)

	far, _ := f.State(0, 0)
	assert.Equal(t, VertexState{}, far, "second ring stays flat")
	assert.LessOrEqual(t, maxSeam(f), 1)
	requireAtRest(t, f)
}

func TestSoftenDownSunkenTile(t *testing.T) {
	f := NewField(5, 5)
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			f.Set(x, y, 3, [4]int{})
		}
	}
	f.Set(2, 2, 0, [4]int{})

	res := f.Soften([]Coord{{2, 2}}, -1)
	assert.Equal(t, 2, res.Generations)
	assert.Len(t, res.Affected, 9)

	for _, link := range cornerLinks {
		n, _ := f.State(2+link.dx, 2+link.dy)
		for _, b := range link.dst {
			assert.Equal(t, 1, n.Corner(b), "neighbour (%d,%d) corner %d", link.dx, link.dy, b)
		}
	}
	east, _ := f.State(3, 2)
	assert.Equal(t, VertexState{Height: 1, Offsets: [4]int{1, 1, 0, 0}}, east)
	assert.LessOrEqual(t, maxSeam(f), 1)
	requireAtRest(t, f)
}

func TestSoftenCarriesTallStepOutward(t *testing.T) {
	f := NewField(9, 9)
	f.Set(4, 4, 8, [4]int{})

	res := f.Soften([]Coord{{4, 4}}, 1)
	assert.LessOrEqual(t, res.Generations, 8)
	assert.LessOrEqual(t, maxSeam(f), 1)
	requireAtRest(t, f)

	edge, _ := f.State(0, 4)
	assert.Greater(t, edge.Peak(), 0, "slope reaches the border")
}

func TestSoftenIgnoresOutOfBoundsSeeds(t *testing.T) {
	f := NewField(3, 3)
	before := f.Clone()
	res := f.Soften([]Coord{{-1, -1}, {3, 0}}, 1)
	assert.Empty(t, res.Affected)
	assert.Zero(t, res.Generations)
	assert.Equal(t, before, f)

	res = f.Soften([]Coord{{1, 1}}, 0)
	assert.Empty(t, res.Affected)
}

func TestSoftenNoopOnSmoothGround(t *testing.T) {
	f := NewField(4, 4)
	f.Set(1, 1, 1, [4]int{})
	res := f.Soften([]Coord{{1, 1}}, 1)
	assert.Equal(t, 1, res.Generations)
	assert.Equal(t, []Coord{{1, 1}}, res.Affected)
}

func TestSoftenStopsAtCeiling(t *testing.T) {
	f := NewField(3, 1)
	f.Set(0, 0, MaxHeight, [4]int{})
	f.Set(1, 0, MaxHeight, [4]int{2, 1, 0, 1})
	f.Set(2, 0, MaxHeight, [4]int{})

	// Neighbours at the ceiling can still take corner offsets.
	s, _ := f.State(1, 0)
	require.True(t, s.Valid())
	res := f.Soften([]Coord{{1, 0}}, 1)
	assert.Equal(t, 2, res.Generations)
	assert.Equal(t, []Coord{{1, 0}, {2, 0}}, res.Affected)
	east, _ := f.State(2, 0)
	assert.Equal(t, VertexState{Height: MaxHeight, Offsets: [4]int{0, 0, 0, 1}}, east)
	requireAtRest(t, f)
}
