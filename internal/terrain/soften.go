package terrain

// cornerLink pairs a corner of the source tile with the coincident corner of
// a neighbour. Diagonal neighbours touch at one corner, edge neighbours at two.
type cornerLink struct {
	dx, dy int
	src    []int
	dst    []int
}

var cornerLinks = [8]cornerLink{
	{1, -1, []int{Left}, []int{Right}},
	{1, 1, []int{Bottom}, []int{Top}},
	{-1, 1, []int{Right}, []int{Left}},
	{-1, -1, []int{Top}, []int{Bottom}},
	{0, -1, []int{Top, Left}, []int{Right, Bottom}},
	{1, 0, []int{Left, Bottom}, []int{Top, Right}},
	{0, 1, []int{Bottom, Right}, []int{Left, Top}},
	{-1, 0, []int{Right, Top}, []int{Bottom, Left}},
}

// SoftenResult reports the tiles a soften pass changed.
type SoftenResult struct {
	// Affected holds the seeds followed by every tile the pass modified.
	Affected []Coord
	// Generations counts the worklist generations processed, including the
	// final one that dirtied nothing.
	Generations int
}

// Soften carries an elevation step outward from the seed tiles so that no
// shared corner differs by more than one level. With dir > 0 lower
// neighbours are raised toward the seeds; with dir < 0 higher neighbours are
// lowered. Each generation compares the tiles dirtied by the previous one
// against their untouched neighbours; the pass ends when a generation dirties
// nothing. Results are written back to the field before returning.
func (f *Field) Soften(seeds []Coord, dir int) SoftenResult {
	var res SoftenResult
	if dir == 0 {
		return res
	}

	states := make(map[Coord]*VertexState)
	settled := make(map[Coord]bool)
	var frontier []Coord
	inFrontier := make(map[Coord]bool)

	for _, c := range seeds {
		if inFrontier[c] {
			continue
		}
		s, ok := f.State(c.X, c.Y)
		if !ok {
			continue
		}
		states[c] = &s
		frontier = append(frontier, c)
		inFrontier[c] = true
		res.Affected = append(res.Affected, c)
	}

	for len(frontier) > 0 {
		res.Generations++
		var next []Coord
		inNext := make(map[Coord]bool)

		for _, c := range frontier {
			src := states[c]
			for _, link := range cornerLinks {
				n := c.Add(link.dx, link.dy)
				if settled[n] || inFrontier[n] {
					continue
				}
				dst, ok := states[n]
				if !ok {
					s, in := f.State(n.X, n.Y)
					if !in {
						continue
					}
					dst = &s
				}
				if !pull(src, dst, link, dir) {
					continue
				}
				states[n] = dst
				if !inNext[n] {
					inNext[n] = true
					next = append(next, n)
					res.Affected = append(res.Affected, n)
				}
			}
		}

		for _, c := range frontier {
			settled[c] = true
		}
		frontier, inFrontier = next, inNext
	}

	for c, s := range states {
		f.Commit(c.X, c.Y, *s)
	}
	return res
}

// pull moves dst's linked corners until each sits within one level of the
// matching src corner. Reports whether dst changed.
func pull(src, dst *VertexState, link cornerLink, dir int) bool {
	changed := false
	for i, a := range link.src {
		b := link.dst[i]
		for {
			gap := src.Corner(a) - dst.Corner(b)
			if dir < 0 {
				gap = -gap
			}
			if gap <= 1 {
				break
			}
			var d int
			if dir > 0 {
				d = dst.RaiseVertex(b)
			} else {
				d = dst.LowerVertex(b)
			}
			if d == 0 {
				break
			}
			changed = true
		}
	}
	return changed
}
