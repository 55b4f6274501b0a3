package terrain

import "fmt"

// VertexState is a detached view of one tile's height and corner offsets.
// Primitives mutate it in place and report the realized change: +1 or -1
// normally, 0 when the tile is clamped at the floor or at MaxHeight.
type VertexState struct {
	Height  int
	Offsets [4]int
}

func (s VertexState) String() string {
	return fmt.Sprintf("h%d[%d %d %d %d]", s.Height, s.Offsets[0], s.Offsets[1], s.Offsets[2], s.Offsets[3])
}

// Corner returns the absolute elevation of corner v.
func (s VertexState) Corner(v int) int {
	return s.Height + s.Offsets[v&3]
}

// Peak returns the highest absolute corner elevation.
func (s VertexState) Peak() int {
	return s.Height + max(s.Offsets[0], s.Offsets[1], s.Offsets[2], s.Offsets[3])
}

// Key returns the packed shape key of the offsets.
func (s VertexState) Key() ShapeKey {
	return KeyOf(s.Offsets)
}

// Valid reports whether the state satisfies the at-rest rules: offsets in
// [0,2], adjacent corners within one level, at least one zero offset.
func (s VertexState) Valid() bool {
	if s.Height < 0 {
		return false
	}
	zero := false
	for i, o := range s.Offsets {
		if o < 0 || o > 2 {
			return false
		}
		if d := o - s.Offsets[(i+1)&3]; d > 1 || d < -1 {
			return false
		}
		zero = zero || o == 0
	}
	return zero
}

func (s *VertexState) has(v int) bool {
	for _, o := range s.Offsets {
		if o == v {
			return true
		}
	}
	return false
}

// RaiseFace lifts the whole tile by one level.
func (s *VertexState) RaiseFace() int {
	if s.Height >= MaxHeight {
		return 0
	}
	switch {
	case s.has(2):
		s.Height++
		for i := range s.Offsets {
			s.Offsets[i] = max(s.Offsets[i]-1, 0)
		}
	case s.has(1):
		s.Height++
		s.Offsets = [4]int{}
	default:
		s.Height++
	}
	return 1
}

// LowerFace drops the whole tile by one level. A slope first flattens toward
// its low corners; a flat tile loses base height, clamped at 0.
func (s *VertexState) LowerFace() int {
	switch {
	case s.has(2):
		for i, o := range s.Offsets {
			if o == 2 {
				s.Offsets[i] = 1
			}
		}
	case s.has(1):
		s.Offsets = [4]int{}
	default:
		if s.Height == 0 {
			return 0
		}
		s.Height--
	}
	return -1
}

// RaiseEdge raises the lower corner of the edge (v1, v2), or both on a tie.
func (s *VertexState) RaiseEdge(v1, v2 int) int {
	v1, v2 = v1&3, v2&3
	switch {
	case s.Offsets[v1] < s.Offsets[v2]:
		return s.RaiseVertex(v1)
	case s.Offsets[v1] > s.Offsets[v2]:
		return s.RaiseVertex(v2)
	}
	a := s.RaiseVertex(v1)
	b := s.RaiseVertex(v2)
	return max(a, b)
}

// LowerEdge lowers the higher corner of the edge (v1, v2). On a tie only v2
// moves; RaiseEdge moves both on a tie, and callers rely on that asymmetry.
func (s *VertexState) LowerEdge(v1, v2 int) int {
	v1, v2 = v1&3, v2&3
	if s.Offsets[v1] > s.Offsets[v2] {
		return s.LowerVertex(v1)
	}
	return s.LowerVertex(v2)
}

// RaiseVertex raises corner v by one level and re-normalises the tile.
func (s *VertexState) RaiseVertex(v int) int {
	v &= 3
	next := *s
	next.Offsets[v]++
	next.correct(v)
	if next.Height > MaxHeight {
		return 0
	}
	*s = next
	return 1
}

// LowerVertex lowers corner v by one level. A corner already at offset 0
// borrows a level from the base: the base drops and every other corner rises
// to compensate. At height 0 with a zero offset nothing changes.
func (s *VertexState) LowerVertex(v int) int {
	v &= 3
	switch {
	case s.Offsets[v] != 0:
		s.Offsets[v]--
	case s.Height != 0:
		s.Height--
		for i := range s.Offsets {
			s.Offsets[i]++
		}
		s.Offsets[v]--
	default:
		return 0
	}
	s.correct(v)
	return -1
}

// correct restores the at-rest rules after corner v changed, keeping v fixed
// and pulling the other corners toward it.
func (s *VertexState) correct(v int) {
	o := &s.Offsets
	a := o[v]
	b1 := o[(v+3)&3]
	b2 := o[(v+1)&3]
	c := o[(v+2)&3]

	for a > 2 {
		a--
		s.Height++
	}
	for a < 0 {
		a++
		s.Height--
	}

	b1 = within(b1, a)
	b2 = within(b2, a)
	c = within(c, b1)
	c = within(c, b2)

	o[v] = a
	o[(v+3)&3] = b1
	o[(v+1)&3] = b2
	o[(v+2)&3] = c

	for i := range o {
		o[i] = max(o[i], 0)
	}
	if !s.has(0) {
		for i := range o {
			o[i]--
		}
		s.Height++
	}
}

// within clamps x to [ref-1, ref+1].
func within(x, ref int) int {
	return min(max(x, ref-1), ref+1)
}
