// Package terrain implements the isometric heightfield: per-tile base heights
// with four corner offsets, the single-unit edit primitives that keep a tile
// internally consistent, batch raise/lower, neighbour softening and cliff
// derivation for the renderer.
//
// The package is single-threaded by contract. A Field is owned by the editor
// loop that drives it and requires no locking.
package terrain

import "slices"

// MaxHeight is the highest base height a tile may reach (one byte in the
// dense tile-map encoding).
const MaxHeight = 255

// Corner indices into a tile's offsets, in the order left, bottom, right, top.
const (
	Left   = 0
	Bottom = 1
	Right  = 2
	Top    = 3
)

// Coord addresses a tile in the grid.
type Coord struct {
	X, Y int
}

// Add returns c offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{c.X + dx, c.Y + dy}
}

// Path is an opaque overlay segment carried by a tile. The engine never
// interprets it.
type Path []int

// Tile is a single grid record.
type Tile struct {
	Height   int
	Vertices [4]int
	Paths    []Path
}

// Corner returns the absolute elevation of corner i.
func (t Tile) Corner(i int) int {
	return t.Height + t.Vertices[i&3]
}

// Field is a fixed-size grid of tiles stored in x-major order.
type Field struct {
	width  int
	height int
	tiles  []Tile
}

// NewField allocates a flat field at height 0.
func NewField(width, height int) *Field {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Field{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
}

// Width returns the number of tiles along x.
func (f *Field) Width() int { return f.width }

// Height returns the number of tiles along y.
func (f *Field) Height() int { return f.height }

// InBounds reports whether (x, y) lies inside the grid.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.width && y < f.height
}

func (f *Field) index(x, y int) int {
	return x*f.height + y
}

// Get returns a copy of the tile at (x, y).
// Returns false if coordinates are out of bounds.
func (f *Field) Get(x, y int) (Tile, bool) {
	if !f.InBounds(x, y) {
		return Tile{}, false
	}
	t := f.tiles[f.index(x, y)]
	t.Paths = clonePaths(t.Paths)
	return t, true
}

// Set replaces the height and vertices of the tile at (x, y), leaving its
// paths untouched. Returns false if coordinates are out of bounds.
func (f *Field) Set(x, y, height int, vertices [4]int) bool {
	if !f.InBounds(x, y) {
		return false
	}
	t := &f.tiles[f.index(x, y)]
	t.Height = height
	t.Vertices = vertices
	return true
}

// SetPaths replaces the overlay paths of the tile at (x, y).
func (f *Field) SetPaths(x, y int, paths []Path) bool {
	if !f.InBounds(x, y) {
		return false
	}
	f.tiles[f.index(x, y)].Paths = clonePaths(paths)
	return true
}

// neighbourOffsets lists the eight surrounding tiles, diagonals first, in
// the order the soften pass walks them.
var neighbourOffsets = [8][2]int{
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
}

// Neighbors returns the in-bounds coordinates adjacent to (x, y),
// including diagonals.
func (f *Field) Neighbors(x, y int) []Coord {
	out := make([]Coord, 0, len(neighbourOffsets))
	for _, d := range neighbourOffsets {
		nx, ny := x+d[0], y+d[1]
		if f.InBounds(nx, ny) {
			out = append(out, Coord{nx, ny})
		}
	}
	return out
}

// State reads the vertex state of the tile at (x, y). The returned value is
// an independent copy; changes reach the grid only through Commit.
func (f *Field) State(x, y int) (VertexState, bool) {
	if !f.InBounds(x, y) {
		return VertexState{}, false
	}
	t := &f.tiles[f.index(x, y)]
	return VertexState{Height: t.Height, Offsets: t.Vertices}, true
}

// Commit writes a vertex state back to (x, y).
func (f *Field) Commit(x, y int, s VertexState) bool {
	return f.Set(x, y, s.Height, s.Offsets)
}

// AltitudeRange returns the lowest and highest absolute corner elevation.
func (f *Field) AltitudeRange() (lo, hi int) {
	if len(f.tiles) == 0 {
		return 0, 0
	}
	lo, hi = f.tiles[0].Corner(0), f.tiles[0].Corner(0)
	for _, t := range f.tiles {
		for i := 0; i < 4; i++ {
			c := t.Corner(i)
			lo = min(lo, c)
			hi = max(hi, c)
		}
	}
	return lo, hi
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	c := &Field{width: f.width, height: f.height, tiles: make([]Tile, len(f.tiles))}
	for i, t := range f.tiles {
		t.Paths = clonePaths(t.Paths)
		c.tiles[i] = t
	}
	return c
}

func clonePaths(paths []Path) []Path {
	if paths == nil {
		return nil
	}
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = slices.Clone(p)
	}
	return out
}
