// Package generate builds procedural starting layouts from Perlin noise.
package generate

import (
	"math"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"

	"github.com/Faultbox/isotile/internal/config"
	"github.com/Faultbox/isotile/internal/logger"
	"github.com/Faultbox/isotile/internal/terrain"
)

// Params controls the noise field.
type Params struct {
	Alpha     float64 // weight falloff between octaves
	Beta      float64 // frequency step between octaves
	Octaves   int32
	Scale     float64 // noise units per tile
	Amplitude int     // highest corner elevation
	Seed      int64
}

// FromConfig builds Params from the generator section and a seed.
func FromConfig(cfg config.GeneratorConfig, seed int64) Params {
	return Params{
		Alpha:     cfg.Alpha,
		Beta:      cfg.Beta,
		Octaves:   cfg.Octaves,
		Scale:     cfg.Scale,
		Amplitude: cfg.Amplitude,
		Seed:      seed,
	}
}

// Perlin generates a width x height field. Corner elevations are sampled
// on the lattice shared by adjacent tiles and then capped so that lattice
// neighbours differ by at most one level, which leaves every tile at rest
// and every shared corner coincident.
func Perlin(width, height int, p Params) *terrain.Field {
	f := terrain.NewField(width, height)
	if f.Width() == 0 || f.Height() == 0 {
		return f
	}
	amp := min(max(p.Amplitude, 0), terrain.MaxHeight)
	noise := perlin.NewPerlin(p.Alpha, p.Beta, p.Octaves, p.Seed)

	// Lattice point (i, j) is the top corner of tile (i, j).
	w, h := f.Width()+1, f.Height()+1
	lattice := make([]int, w*h)
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			n := noise.Noise2D(float64(i)*p.Scale, float64(j)*p.Scale)
			n = min(max((n+1)/2, 0), 1)
			lattice[i*h+j] = int(math.Round(n * float64(amp)))
		}
	}
	capSlopes(lattice, w, h)

	at := func(i, j int) int { return lattice[i*h+j] }
	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			var c [4]int
			c[terrain.Top] = at(x, y)
			c[terrain.Right] = at(x, y+1)
			c[terrain.Left] = at(x+1, y)
			c[terrain.Bottom] = at(x+1, y+1)
			base := min(c[0], c[1], c[2], c[3])
			for i := range c {
				c[i] -= base
			}
			f.Set(x, y, base, c)
		}
	}

	lo, hi := f.AltitudeRange()
	logger.Named("generate").Info("generated layout",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int64("seed", p.Seed),
		zap.Int("min", lo),
		zap.Int("max", hi))
	return f
}

// capSlopes lowers lattice points until 4-neighbours differ by at most one,
// using a forward and a backward city-block sweep.
func capSlopes(v []int, w, h int) {
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			k := i*h + j
			if i > 0 {
				v[k] = min(v[k], v[k-h]+1)
			}
			if j > 0 {
				v[k] = min(v[k], v[k-1]+1)
			}
		}
	}
	for i := w - 1; i >= 0; i-- {
		for j := h - 1; j >= 0; j-- {
			k := i*h + j
			if i < w-1 {
				v[k] = min(v[k], v[k+h]+1)
			}
			if j < h-1 {
				v[k] = min(v[k], v[k+1]+1)
			}
		}
	}
}
