package terrain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vs(h int, o ...int) VertexState {
	return VertexState{Height: h, Offsets: [4]int{o[0], o[1], o[2], o[3]}}
}

func TestRaiseFace(t *testing.T) {
	tests := []struct {
		name string
		in   VertexState
		want VertexState
	}{
		{"flat", vs(0, 0, 0, 0, 0), vs(1, 0, 0, 0, 0)},
		{"slope flattens", vs(0, 1, 1, 0, 0), vs(1, 0, 0, 0, 0)},
		{"peak absorbed", vs(0, 2, 1, 0, 1), vs(1, 1, 0, 0, 0)},
		{"furrow", vs(3, 1, 0, 1, 0), vs(4, 0, 0, 0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.in
			assert.Equal(t, 1, s.RaiseFace())
			assert.Equal(t, tc.want, s)
		})
	}
}

func TestLowerFace(t *testing.T) {
	tests := []struct {
		name  string
		in    VertexState
		want  VertexState
		delta int
	}{
		{"flat", vs(2, 0, 0, 0, 0), vs(1, 0, 0, 0, 0), -1},
		{"slope flattens", vs(2, 1, 1, 0, 0), vs(2, 0, 0, 0, 0), -1},
		{"peak drops", vs(2, 2, 1, 0, 1), vs(2, 1, 1, 0, 1), -1},
		{"floor", vs(0, 0, 0, 0, 0), vs(0, 0, 0, 0, 0), 0},
		{"slope at floor", vs(0, 0, 1, 1, 0), vs(0, 0, 0, 0, 0), -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.in
			assert.Equal(t, tc.delta, s.LowerFace())
			assert.Equal(t, tc.want, s)
		})
	}
}

func TestRaiseLowerFaceRoundTrip(t *testing.T) {
	for h := 0; h < 5; h++ {
		s := vs(h, 0, 0, 0, 0)
		s.RaiseFace()
		s.LowerFace()
		assert.Equal(t, vs(h, 0, 0, 0, 0), s, "height %d", h)
	}
}

func TestRaiseVertexSameCornerTrace(t *testing.T) {
	// Offset 3 is folded into the base without shifting the other corners,
	// so repeated raises of one corner lift the whole tile.
	want := []VertexState{
		vs(0, 1, 0, 0, 0),
		vs(0, 2, 1, 0, 1),
		vs(1, 2, 1, 0, 1),
		vs(2, 2, 1, 0, 1),
	}
	s := vs(0, 0, 0, 0, 0)
	for i, w := range want {
		require.Equal(t, 1, s.RaiseVertex(Left), "step %d", i+1)
		require.Equal(t, w, s, "step %d", i+1)
		require.True(t, s.Valid(), "step %d: %s", i+1, s)
	}
}

func TestRaiseEachVertexCompresses(t *testing.T) {
	want := []VertexState{
		vs(0, 1, 0, 0, 0),
		vs(0, 1, 1, 0, 0),
		vs(0, 1, 1, 1, 0),
		vs(1, 0, 0, 0, 0),
	}
	s := vs(0, 0, 0, 0, 0)
	for v, w := range want {
		require.Equal(t, 1, s.RaiseVertex(v))
		require.Equal(t, w, s, "after raising corner %d", v)
	}
}

func TestLowerVertex(t *testing.T) {
	tests := []struct {
		name  string
		in    VertexState
		v     int
		want  VertexState
		delta int
	}{
		{"offset drops", vs(0, 1, 1, 0, 0), Left, vs(0, 0, 1, 0, 0), -1},
		{"borrows base", vs(1, 0, 0, 0, 0), Left, vs(0, 0, 1, 1, 1), -1},
		{"borrow corrects far corner", vs(1, 2, 1, 0, 1), Right, vs(0, 2, 1, 0, 1), -1},
		{"peak pulls neighbours", vs(0, 2, 1, 0, 1), Left, vs(0, 1, 1, 0, 1), -1},
		{"floor", vs(0, 0, 0, 0, 0), Top, vs(0, 0, 0, 0, 0), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.in
			before := s.Corner(tc.v)
			assert.Equal(t, tc.delta, s.LowerVertex(tc.v))
			assert.Equal(t, tc.want, s)
			assert.Equal(t, before+tc.delta, s.Corner(tc.v))
		})
	}
}

func TestRaiseEdge(t *testing.T) {
	s := vs(0, 0, 0, 0, 0)
	assert.Equal(t, 1, s.RaiseEdge(Left, Bottom))
	assert.Equal(t, vs(0, 1, 1, 0, 0), s, "tie raises both corners")

	s = vs(0, 1, 0, 0, 0)
	assert.Equal(t, 1, s.RaiseEdge(Left, Bottom))
	assert.Equal(t, vs(0, 1, 1, 0, 0), s, "lower corner catches up")

	s = vs(0, 0, 0, 0, 1)
	assert.Equal(t, 1, s.RaiseEdge(Top, Left+4))
	assert.Equal(t, vs(0, 1, 0, 0, 1), s, "edge index wraps")
}

// Ties are resolved asymmetrically: RaiseEdge moves both corners while
// LowerEdge moves only the second one.
func TestLowerEdgeTieMovesSecondCornerOnly(t *testing.T) {
	s := vs(0, 1, 1, 0, 0)
	assert.Equal(t, -1, s.LowerEdge(Left, Bottom))
	assert.Equal(t, vs(0, 1, 0, 0, 0), s)

	s = vs(0, 1, 0, 0, 0)
	assert.Equal(t, -1, s.LowerEdge(Bottom, Left))
	assert.Equal(t, vs(0, 0, 0, 0, 0), s, "higher corner drops")
}

func TestRaiseAtCeiling(t *testing.T) {
	s := vs(MaxHeight, 0, 0, 0, 0)
	assert.Equal(t, 0, s.RaiseFace())
	assert.Equal(t, vs(MaxHeight, 0, 0, 0, 0), s)

	s = vs(MaxHeight, 2, 1, 0, 1)
	assert.Equal(t, 0, s.RaiseVertex(Left))
	assert.Equal(t, vs(MaxHeight, 2, 1, 0, 1), s)

	s = vs(MaxHeight, 0, 0, 0, 0)
	assert.Equal(t, 1, s.RaiseVertex(Left), "offsets can still rise at the ceiling")
	assert.Equal(t, vs(MaxHeight, 1, 0, 0, 0), s)
}

func TestCorrectFoldsOverflow(t *testing.T) {
	s := vs(0, 3, 0, 0, 0)
	s.correct(Left)
	assert.Equal(t, vs(1, 2, 1, 0, 1), s)

	s = vs(4, 1, 1, 1, 1)
	s.correct(Top)
	assert.Equal(t, vs(5, 0, 0, 0, 0), s)
}

func TestPrimitivesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := vs(3, 0, 0, 0, 0)
	for i := 0; i < 20000; i++ {
		v := rng.Intn(4)
		before := s
		switch rng.Intn(6) {
		case 0:
			s.RaiseFace()
		case 1:
			s.LowerFace()
		case 2:
			s.RaiseEdge(v, v+1)
		case 3:
			s.LowerEdge(v, v+1)
		case 4:
			s.RaiseVertex(v)
		case 5:
			s.LowerVertex(v)
		}
		require.True(t, s.Valid(), "op %d: %s -> %s", i, before, s)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, vs(0, 0, 0, 0, 0).Valid())
	assert.True(t, vs(5, 2, 1, 0, 1).Valid())
	assert.False(t, vs(0, 1, 1, 1, 1).Valid(), "no zero offset")
	assert.False(t, vs(0, 2, 0, 0, 0).Valid(), "adjacent gap of two")
	assert.False(t, vs(0, 3, 2, 1, 0).Valid(), "offset above two")
	assert.False(t, vs(-1, 0, 0, 0, 0).Valid())
}
