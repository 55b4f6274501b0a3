package assets

import (
	"fmt"

	"github.com/Faultbox/isotile/internal/terrain"
	"github.com/Faultbox/isotile/pkg/tilemap"
)

// ToTileMap converts a field into its dense binary form.
func ToTileMap(f *terrain.Field) (*tilemap.Map, error) {
	m, err := tilemap.New(f.Width(), f.Height())
	if err != nil {
		return nil, err
	}
	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			t, _ := f.Get(x, y)
			if t.Height < 0 || t.Height > terrain.MaxHeight {
				return nil, fmt.Errorf("%w: height %d at (%d,%d)", tilemap.ErrInvalidTile, t.Height, x, y)
			}
			dst := m.GetTile(x, y)
			dst.Height = uint8(t.Height)
			for i, o := range t.Vertices {
				dst.Vertices[i] = uint8(o)
			}
			for _, p := range t.Paths {
				b := make([]byte, len(p))
				for i, v := range p {
					if v < 0 || v > 255 {
						return nil, fmt.Errorf("%w: path value %d at (%d,%d)", tilemap.ErrInvalidTile, v, x, y)
					}
					b[i] = byte(v)
				}
				dst.Paths = append(dst.Paths, b)
			}
		}
	}
	return m, nil
}

// FromTileMap builds a field from a decoded tile map.
func FromTileMap(m *tilemap.Map) *terrain.Field {
	f := terrain.NewField(int(m.Width), int(m.Height))
	for x := 0; x < int(m.Width); x++ {
		for y := 0; y < int(m.Height); y++ {
			src := m.GetTile(x, y)
			var v [4]int
			for i, o := range src.Vertices {
				v[i] = int(o)
			}
			f.Set(x, y, int(src.Height), v)
			if len(src.Paths) == 0 {
				continue
			}
			paths := make([]terrain.Path, len(src.Paths))
			for i, b := range src.Paths {
				p := make(terrain.Path, len(b))
				for j, c := range b {
					p[j] = int(c)
				}
				paths[i] = p
			}
			f.SetPaths(x, y, paths)
		}
	}
	return f
}
