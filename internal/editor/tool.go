// Package editor holds the terrain tool: the brush, the hover preview and
// the drag gesture that turns cursor travel into height edits on a
// terrain.Field. Input dispatch and rendering stay with the caller.
package editor

import (
	"maps"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/isotile/internal/config"
	"github.com/Faultbox/isotile/internal/logger"
	"github.com/Faultbox/isotile/internal/terrain"
)

// Options configures a Tool.
type Options struct {
	BrushWidth     int
	BrushHeight    int
	Smooth         bool
	PixelsPerLevel int
	Logger         *zap.Logger // defaults to logger.Named("editor")
	Metrics        *Metrics    // optional
}

// OptionsFromConfig maps the editor config section onto Options.
func OptionsFromConfig(cfg config.EditorConfig) Options {
	return Options{
		BrushWidth:     cfg.BrushWidth,
		BrushHeight:    cfg.BrushHeight,
		Smooth:         cfg.Smooth,
		PixelsPerLevel: cfg.PixelsPerLevel,
	}
}

// Highlight is the preview of one tile under the brush. It is never written
// to the field.
type Highlight struct {
	Tile    terrain.Tile
	Subtile int
}

// Update reports what a drag step changed.
type Update struct {
	// Delta is the realized height change of this step.
	Delta int
	// Edit is the engine result, zero when the step applied nothing.
	Edit terrain.EditResult
	// Redraw lists the tiles whose appearance may have changed: the edited
	// tiles plus the neighbours whose cliffs face them.
	Redraw []terrain.Coord
}

// Summary describes a finished gesture.
type Summary struct {
	ID    uuid.UUID
	Delta int
	Steps int
}

type gesture struct {
	id     uuid.UUID
	tiles  []terrain.Coord
	target terrain.Target
	travel int // pixels not yet converted into levels
	debt   int // levels of downward travel that hit the floor
	delta  int
	steps  int
}

// Tool is the terrain editing tool. It is not safe for concurrent use.
type Tool struct {
	field *terrain.Field
	opts  Options
	log   *zap.Logger

	hovering  bool
	at        terrain.Coord
	subtile   int
	aoe       []terrain.Coord
	highlight map[terrain.Coord]Highlight

	active *gesture
}

// New creates a tool editing f.
func New(f *terrain.Field, opts Options) *Tool {
	opts.BrushWidth = max(opts.BrushWidth, 1)
	opts.BrushHeight = max(opts.BrushHeight, 1)
	if opts.PixelsPerLevel < 1 {
		opts.PixelsPerLevel = 8
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("editor")
	}
	return &Tool{field: f, opts: opts, log: log}
}

// Field returns the edited field.
func (t *Tool) Field() *terrain.Field { return t.field }

// Brush returns the brush dimensions in tiles.
func (t *Tool) Brush() (w, h int) { return t.opts.BrushWidth, t.opts.BrushHeight }

// Smooth reports whether edits soften their neighbours.
func (t *Tool) Smooth() bool { return t.opts.Smooth }

// ToggleSmooth flips soften mode and returns the new value.
func (t *Tool) ToggleSmooth() bool {
	t.opts.Smooth = !t.opts.Smooth
	t.log.Debug("smooth toggled", zap.Bool("smooth", t.opts.Smooth))
	return t.opts.Smooth
}

// Resize grows or shrinks the brush. Dimensions never drop below 1. The
// preview is recomputed for the hovered tile.
func (t *Tool) Resize(dw, dh int) {
	t.opts.BrushWidth = max(t.opts.BrushWidth+dw, 1)
	t.opts.BrushHeight = max(t.opts.BrushHeight+dh, 1)
	if t.hovering {
		t.refresh()
	}
}

// AreaOfEffect returns the tiles the next gesture would edit.
func (t *Tool) AreaOfEffect() []terrain.Coord {
	return append([]terrain.Coord(nil), t.aoe...)
}

// Highlight returns the preview map for the hovered tiles.
func (t *Tool) Highlight() map[terrain.Coord]Highlight {
	return maps.Clone(t.highlight)
}

// Hover moves the cursor to tile (x, y) at the given sub-tile code. Hover
// off the grid or with SubtileNone clears the preview. Reports whether the
// preview changed. While a gesture is active the preview is left alone.
func (t *Tool) Hover(x, y, subtile int) bool {
	if t.active != nil {
		return false
	}
	if !t.field.InBounds(x, y) || subtile == terrain.SubtileNone {
		if !t.hovering {
			return false
		}
		t.hovering = false
		t.aoe = nil
		t.highlight = nil
		return true
	}
	at := terrain.Coord{X: x, Y: y}
	if t.hovering && at == t.at && subtile == t.subtile {
		return false
	}
	t.hovering, t.at, t.subtile = true, at, subtile
	t.refresh()
	return true
}

func (t *Tool) refresh() {
	t.aoe = t.rect(t.at)
	t.highlight = make(map[terrain.Coord]Highlight, len(t.aoe))
	code := t.subtile
	if len(t.aoe) > 1 {
		code = terrain.SubtileFace
	}
	for _, c := range t.aoe {
		tile, _ := t.field.Get(c.X, c.Y)
		t.highlight[c] = Highlight{Tile: tile, Subtile: code}
	}
}

// rect returns the brush rectangle anchored at c, clipped to the grid.
func (t *Tool) rect(c terrain.Coord) []terrain.Coord {
	var out []terrain.Coord
	for dx := 0; dx < t.opts.BrushWidth; dx++ {
		for dy := 0; dy < t.opts.BrushHeight; dy++ {
			n := c.Add(dx, dy)
			if t.field.InBounds(n.X, n.Y) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Press starts a gesture on the hovered area. Returns false when nothing is
// hovered.
func (t *Tool) Press() bool {
	if !t.hovering || len(t.aoe) == 0 {
		return false
	}
	target := terrain.Face()
	if len(t.aoe) == 1 {
		if tg, ok := terrain.TargetForSubtile(t.subtile); ok {
			target = tg
		}
	}
	t.active = &gesture{
		id:     uuid.New(),
		tiles:  t.AreaOfEffect(),
		target: target,
	}
	t.log.Debug("gesture started",
		zap.Stringer("gesture", t.active.id),
		zap.Int("tiles", len(t.active.tiles)),
		zap.Int("subtile", t.subtile))
	return true
}

// Active reports whether a gesture is in progress.
func (t *Tool) Active() bool { return t.active != nil }

// Drag feeds vertical cursor travel in pixels, upward positive. Every
// PixelsPerLevel pixels of accumulated travel request one level. Travel
// below the floor is remembered as debt and must be climbed back before
// raising resumes.
func (t *Tool) Drag(dy int) Update {
	g := t.active
	if g == nil {
		return Update{}
	}
	g.travel += dy
	want := g.travel / t.opts.PixelsPerLevel
	g.travel -= want * t.opts.PixelsPerLevel

	if want > 0 && g.debt > 0 {
		paid := min(want, g.debt)
		want -= paid
		g.debt -= paid
	}
	if want == 0 {
		return Update{}
	}

	res := t.field.Modify(g.tiles, want, g.target, t.opts.Smooth)
	if want < 0 {
		g.debt += res.Delta - want
	}
	g.delta += res.Delta
	g.steps++
	t.opts.Metrics.observe(want, res)

	t.log.Debug("drag step",
		zap.Stringer("gesture", g.id),
		zap.Int("requested", want),
		zap.Int("delta", res.Delta),
		zap.Int("affected", len(res.Affected)),
		zap.Int("debt", g.debt))

	return Update{Delta: res.Delta, Edit: res, Redraw: t.redraw(res.Affected)}
}

// Release ends the gesture and refreshes the preview from the edited field.
func (t *Tool) Release() Summary {
	g := t.active
	if g == nil {
		return Summary{}
	}
	t.active = nil
	if t.hovering {
		t.refresh()
	}
	t.log.Info("gesture finished",
		zap.Stringer("gesture", g.id),
		zap.Int("delta", g.delta),
		zap.Int("steps", g.steps))
	return Summary{ID: g.id, Delta: g.delta, Steps: g.steps}
}

// Apply runs a whole gesture in one call: hover, press, a drag of levels
// worth of travel, release.
func (t *Tool) Apply(x, y, subtile, levels int) (Summary, Update) {
	t.Hover(x, y, subtile)
	if !t.Press() {
		return Summary{}, Update{}
	}
	u := t.Drag(levels * t.opts.PixelsPerLevel)
	return t.Release(), u
}

// redraw extends the affected tiles with the tiles at x-1 and y-1, whose
// cliff faces look onto them.
func (t *Tool) redraw(affected []terrain.Coord) []terrain.Coord {
	seen := make(map[terrain.Coord]bool, len(affected)*3)
	out := make([]terrain.Coord, 0, len(affected)*3)
	add := func(c terrain.Coord) {
		if !seen[c] && t.field.InBounds(c.X, c.Y) {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range affected {
		add(c)
		add(c.Add(-1, 0))
		add(c.Add(0, -1))
	}
	return out
}
