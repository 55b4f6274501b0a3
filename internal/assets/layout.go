package assets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/isotile/internal/terrain"
)

// Layout errors.
var (
	ErrBadToken   = errors.New("bad tile token")
	ErrLayoutSize = errors.New("layout size mismatch")
)

// Layout is the YAML form of a tile grid. Each Tiles entry is one x column;
// tokens within it run along y and read "<height>:<left><bottom><right><top>".
type Layout struct {
	Name   string        `yaml:"name"`
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
	Tiles  []string      `yaml:"tiles"`
	Paths  []LayoutPaths `yaml:"paths,omitempty"`
}

// LayoutPaths attaches overlay path segments to one tile.
type LayoutPaths struct {
	X        int     `yaml:"x"`
	Y        int     `yaml:"y"`
	Segments [][]int `yaml:"segments,flow"`
}

// ParseLayout decodes a YAML layout into a field. Every tile must satisfy
// the at-rest corner rules.
func ParseLayout(data []byte) (*terrain.Field, string, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, "", fmt.Errorf("parsing layout: %w", err)
	}
	f, err := l.Field()
	if err != nil {
		return nil, "", err
	}
	return f, l.Name, nil
}

// Field builds the tile grid described by the layout.
func (l *Layout) Field() (*terrain.Field, error) {
	if l.Width <= 0 || l.Height <= 0 || len(l.Tiles) != l.Width {
		return nil, fmt.Errorf("%w: %dx%d with %d columns", ErrLayoutSize, l.Width, l.Height, len(l.Tiles))
	}
	f := terrain.NewField(l.Width, l.Height)
	for x, col := range l.Tiles {
		tokens := strings.Fields(col)
		if len(tokens) != l.Height {
			return nil, fmt.Errorf("%w: column %d has %d tiles, want %d", ErrLayoutSize, x, len(tokens), l.Height)
		}
		for y, tok := range tokens {
			s, err := parseToken(tok)
			if err != nil {
				return nil, fmt.Errorf("tile (%d,%d): %w", x, y, err)
			}
			f.Commit(x, y, s)
		}
	}
	for _, p := range l.Paths {
		paths := make([]terrain.Path, len(p.Segments))
		for i, seg := range p.Segments {
			paths[i] = terrain.Path(seg)
		}
		if !f.SetPaths(p.X, p.Y, paths) {
			return nil, fmt.Errorf("%w: paths at (%d,%d) outside the grid", ErrLayoutSize, p.X, p.Y)
		}
	}
	return f, nil
}

func parseToken(tok string) (terrain.VertexState, error) {
	var s terrain.VertexState
	h, corners, ok := strings.Cut(tok, ":")
	if !ok || len(corners) != 4 {
		return s, fmt.Errorf("%w: %q", ErrBadToken, tok)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height < 0 || height > terrain.MaxHeight {
		return s, fmt.Errorf("%w: %q", ErrBadToken, tok)
	}
	s.Height = height
	for i := range corners {
		d := corners[i]
		if d < '0' || d > '2' {
			return s, fmt.Errorf("%w: %q", ErrBadToken, tok)
		}
		s.Offsets[i] = int(d - '0')
	}
	if !s.Valid() {
		return s, fmt.Errorf("%w: %q breaks the corner rules", ErrBadToken, tok)
	}
	return s, nil
}

// NewLayout captures a field as a layout.
func NewLayout(name string, f *terrain.Field) *Layout {
	l := &Layout{Name: name, Width: f.Width(), Height: f.Height()}
	var sb strings.Builder
	for x := 0; x < f.Width(); x++ {
		sb.Reset()
		for y := 0; y < f.Height(); y++ {
			t, _ := f.Get(x, y)
			if y > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d:%d%d%d%d", t.Height, t.Vertices[0], t.Vertices[1], t.Vertices[2], t.Vertices[3])
			if len(t.Paths) > 0 {
				segs := make([][]int, len(t.Paths))
				for i, p := range t.Paths {
					segs[i] = []int(p)
				}
				l.Paths = append(l.Paths, LayoutPaths{X: x, Y: y, Segments: segs})
			}
		}
		l.Tiles = append(l.Tiles, sb.String())
	}
	return l
}

// MarshalLayout encodes a field as YAML.
func MarshalLayout(name string, f *terrain.Field) ([]byte, error) {
	data, err := yaml.Marshal(NewLayout(name, f))
	if err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	return data, nil
}
