package terrain

// CliffSide names the front face a cliff segment hangs from.
type CliffSide uint8

const (
	CliffLeft  CliffSide = iota // toward x+1
	CliffRight                  // toward y+1
)

// CliffKind describes which of the two top corners of a segment is raised.
type CliffKind uint8

const (
	CliffBoth   CliffKind = iota // full-height segment
	CliffFirst                   // only the first corner is a level higher
	CliffSecond                  // only the second corner is a level higher
)

// Cliff is one level of vertical wall below a tile edge.
type Cliff struct {
	Side CliffSide
	Kind CliffKind
	// Elevation is the level the segment is drawn at.
	Elevation int
}

// Texture returns the legacy sprite name of the segment, e.g. "CL11".
func (c Cliff) Texture() string {
	side := "CL"
	if c.Side == CliffRight {
		side = "CR"
	}
	switch c.Kind {
	case CliffFirst:
		return side + "10"
	case CliffSecond:
		return side + "01"
	default:
		return side + "11"
	}
}

// Cliffs derives the wall segments between (x, y) and its two front
// neighbours: the left stack faces the tile at x+1 and the right stack faces
// the tile at y+1. A missing neighbour counts as ground level, so the world
// edge always drops to 0. Segments run top-down, left stack first. Returns
// nil for coordinates outside the grid.
func (f *Field) Cliffs(x, y int) []Cliff {
	t, ok := f.State(x, y)
	if !ok {
		return nil
	}
	var out []Cliff

	// Left face: our left/bottom against the neighbour's top/right.
	a1, a2 := 0, 0
	if n, ok := f.State(x+1, y); ok {
		a1, a2 = n.Corner(Top), n.Corner(Right)
	}
	out = appendWall(out, CliffLeft, t.Corner(Left), t.Corner(Bottom), a1, a2)

	// Right face: our right/bottom against the neighbour's top/left.
	a1, a2 = 0, 0
	if n, ok := f.State(x, y+1); ok {
		a1, a2 = n.Corner(Top), n.Corner(Left)
	}
	return appendWall(out, CliffRight, t.Corner(Right), t.Corner(Bottom), a1, a2)
}

func appendWall(out []Cliff, side CliffSide, b1, b2, a1, a2 int) []Cliff {
	for b1 > a1 || b2 > a2 {
		var kind CliffKind
		switch {
		case b1 > b2:
			b1--
			kind = CliffFirst
		case b1 == b2:
			b1--
			b2--
			kind = CliffBoth
		default:
			b2--
			kind = CliffSecond
		}
		out = append(out, Cliff{Side: side, Kind: kind, Elevation: b1})
	}
	return out
}
