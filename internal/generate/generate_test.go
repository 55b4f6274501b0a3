package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/isotile/internal/config"
	"github.com/Faultbox/isotile/internal/terrain"
)

func defaultParams(seed int64) Params {
	return FromConfig(config.Default().Generator, seed)
}

func TestPerlinTilesAreAtRest(t *testing.T) {
	f := Perlin(24, 16, defaultParams(3))
	require.Equal(t, 24, f.Width())
	require.Equal(t, 16, f.Height())

	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			s, _ := f.State(x, y)
			require.True(t, s.Valid(), "(%d,%d) %s", x, y, s)
			assert.LessOrEqual(t, s.Peak(), 6)
		}
	}
}

func TestPerlinCornersCoincide(t *testing.T) {
	f := Perlin(12, 12, defaultParams(11))
	for x := 0; x < 11; x++ {
		for y := 0; y < 11; y++ {
			a, _ := f.Get(x, y)
			east, _ := f.Get(x+1, y)
			south, _ := f.Get(x, y+1)
			assert.Equal(t, a.Corner(terrain.Left), east.Corner(terrain.Top))
			assert.Equal(t, a.Corner(terrain.Bottom), east.Corner(terrain.Right))
			assert.Equal(t, a.Corner(terrain.Bottom), south.Corner(terrain.Left))
			assert.Equal(t, a.Corner(terrain.Right), south.Corner(terrain.Top))
		}
	}
}

func TestPerlinDeterministic(t *testing.T) {
	a := Perlin(10, 10, defaultParams(5))
	b := Perlin(10, 10, defaultParams(5))
	assert.Equal(t, a, b)
}

func TestPerlinFlatWithoutAmplitude(t *testing.T) {
	p := defaultParams(1)
	p.Amplitude = 0
	f := Perlin(5, 5, p)
	lo, hi := f.AltitudeRange()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestPerlinEmpty(t *testing.T) {
	f := Perlin(0, 4, defaultParams(1))
	assert.Zero(t, f.Width())
}

func TestCapSlopes(t *testing.T) {
	// 3x3 lattice with a spike in the middle and a pit in a corner.
	v := []int{
		0, 0, 0,
		0, 9, 0,
		5, 0, 0,
	}
	capSlopes(v, 3, 3)
	assert.Equal(t, []int{
		0, 0, 0,
		0, 1, 0,
		1, 0, 0,
	}, v)
}
