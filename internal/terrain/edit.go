package terrain

// TargetKind selects which part of a tile an edit moves.
type TargetKind uint8

const (
	TargetFace TargetKind = iota
	TargetEdge
	TargetVertex
)

// Target is the granularity of an edit. Index names the corner for a vertex
// target and the first corner of the edge (Index, Index+1) for an edge target.
type Target struct {
	Kind  TargetKind
	Index int
}

// Face targets all four corners.
func Face() Target { return Target{Kind: TargetFace} }

// Edge targets corners i and i+1.
func Edge(i int) Target { return Target{Kind: TargetEdge, Index: i & 3} }

// Vertex targets corner i.
func Vertex(i int) Target { return Target{Kind: TargetVertex, Index: i & 3} }

// Subtile codes produced by hit-testing a tile under the cursor.
const (
	SubtileNone  = 0
	SubtileFace  = 9
	subtileVert0 = 1 // left, bottom, right, top follow
	subtileEdge0 = 5 // bottom-left, bottom-right, top-right, top-left follow
)

// TargetForSubtile maps a hit-test code to an edit target. Code 0 and
// unknown codes report false.
func TargetForSubtile(code int) (Target, bool) {
	switch {
	case code == SubtileFace:
		return Face(), true
	case code >= subtileEdge0 && code < subtileEdge0+4:
		return Edge(code - subtileEdge0), true
	case code >= subtileVert0 && code < subtileVert0+4:
		return Vertex(code - subtileVert0), true
	}
	return Target{}, false
}

func (t Target) raise(s *VertexState) int {
	switch t.Kind {
	case TargetEdge:
		return s.RaiseEdge(t.Index, t.Index+1)
	case TargetVertex:
		return s.RaiseVertex(t.Index)
	default:
		return s.RaiseFace()
	}
}

func (t Target) lower(s *VertexState) int {
	switch t.Kind {
	case TargetEdge:
		return s.LowerEdge(t.Index, t.Index+1)
	case TargetVertex:
		return s.LowerVertex(t.Index)
	default:
		return s.LowerFace()
	}
}

// EditResult reports what a batch edit did.
type EditResult struct {
	// Delta is the realized change in levels. It falls short of the request
	// when every tracked tile hit the floor or the ceiling.
	Delta int
	// Affected lists every coordinate read or written, in first-touch order.
	Affected []Coord
	// Generations is the number of soften passes run, 0 without smoothing.
	Generations int
}

type tracked struct {
	at        Coord
	state     VertexState
	metric    int
	exhausted bool
}

// Modify raises (amount > 0) or lowers (amount < 0) a set of tiles one level
// at a time. Each level goes to the tiles currently at the extreme: the
// lowest base height when raising, the highest corner when lowering. A drag
// across a region therefore levels it off before pushing it further.
//
// Coordinates outside the grid and duplicates are ignored. With no tile left
// to edit the call is a no-op that returns a zero result. When smooth is set
// the edited tiles seed a soften pass in the same direction.
func (f *Field) Modify(tiles []Coord, amount int, target Target, smooth bool) EditResult {
	var res EditResult
	if amount == 0 {
		return res
	}

	seen := make(map[Coord]bool, len(tiles))
	batch := make([]*tracked, 0, len(tiles))
	for _, c := range tiles {
		if seen[c] {
			continue
		}
		seen[c] = true
		s, ok := f.State(c.X, c.Y)
		if !ok {
			continue
		}
		t := &tracked{at: c, state: s}
		if amount < 0 {
			t.metric = s.Peak()
		} else {
			t.metric = s.Height
		}
		batch = append(batch, t)
		res.Affected = append(res.Affected, c)
	}
	if len(batch) == 0 {
		return res
	}

	step, want := 1, amount
	if amount < 0 {
		step, want = -1, -amount
	}

	for done := 0; done < want; {
		ext, live := extremum(batch, step)
		if !live || (step < 0 && ext <= 0) {
			break
		}
		moved := false
		for _, t := range batch {
			if t.exhausted || t.metric != ext {
				continue
			}
			var d int
			if step > 0 {
				d = target.raise(&t.state)
			} else {
				d = target.lower(&t.state)
			}
			if d == 0 {
				t.exhausted = true
				continue
			}
			t.metric += step
			moved = true
		}
		if moved {
			done++
			res.Delta += step
		}
	}

	for _, t := range batch {
		f.Commit(t.at.X, t.at.Y, t.state)
	}

	if smooth {
		sr := f.Soften(res.Affected, step)
		res.Generations = sr.Generations
		for _, c := range sr.Affected {
			if !seen[c] {
				seen[c] = true
				res.Affected = append(res.Affected, c)
			}
		}
	}
	return res
}

// extremum returns the minimum (raising) or maximum (lowering) metric over
// tiles that can still move.
func extremum(batch []*tracked, step int) (int, bool) {
	var ext int
	found := false
	for _, t := range batch {
		if t.exhausted {
			continue
		}
		if !found || (step > 0 && t.metric < ext) || (step < 0 && t.metric > ext) {
			ext = t.metric
			found = true
		}
	}
	return ext, found
}
