package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/isotile/internal/assets"
	"github.com/Faultbox/isotile/internal/config"
	"github.com/Faultbox/isotile/internal/editor"
	"github.com/Faultbox/isotile/internal/generate"
	"github.com/Faultbox/isotile/internal/logger"
	"github.com/Faultbox/isotile/internal/terrain"
	"github.com/Faultbox/isotile/pkg/tilemap"
)

// newLayoutManager searches the working directory first, then the maps
// directory next to the user config.
func newLayoutManager() *assets.Manager {
	m := assets.NewManager()
	for _, dir := range []string{filepath.Join(config.ConfigDir(), "maps"), "."} {
		if err := m.AddDir(dir); err != nil {
			logger.Debug("skipping layout dir", zap.String("dir", dir), zap.Error(err))
		}
	}
	return m
}

// loadField resolves the configured map source.
func loadField(cfg *config.Config, layouts *assets.Manager) (*terrain.Field, string, error) {
	switch cfg.Map.Source {
	case config.SourceFile:
		f, err := layouts.LoadField(cfg.Map.Path)
		if err != nil {
			return nil, "", err
		}
		name := strings.TrimSuffix(filepath.Base(cfg.Map.Path), filepath.Ext(cfg.Map.Path))
		return f, name, nil
	case config.SourcePerlin:
		p := generate.FromConfig(cfg.Generator, cfg.Map.Seed)
		return generate.Perlin(cfg.Map.Width, cfg.Map.Height, p), fmt.Sprintf("perlin-%d", cfg.Map.Seed), nil
	default:
		f, err := layouts.LoadField(assets.DefaultMap)
		return f, assets.DefaultMap, err
	}
}

// saveField writes f as .tmap or YAML depending on the extension.
func saveField(path, name string, f *terrain.Field, compress bool) error {
	if strings.EqualFold(filepath.Ext(path), ".tmap") {
		m, err := assets.ToTileMap(f)
		if err != nil {
			return err
		}
		c := tilemap.CompressionNone
		if compress {
			c = tilemap.CompressionZstd
		}
		return tilemap.EncodeFile(path, m, c)
	}
	data, err := assets.MarshalLayout(name, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func cmdInfo(cfg *config.Config, layouts *assets.Manager, args []string) error {
	f, name, err := loadField(cfg, layouts)
	if err != nil {
		return err
	}

	lo, hi := f.AltitudeRange()
	classes := make(map[terrain.ShapeClass]int)
	cliffs := 0
	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			s, _ := f.State(x, y)
			classes[s.Key().Shape().Class]++
			cliffs += len(f.Cliffs(x, y))
		}
	}

	fmt.Printf("Map:      %s\n", name)
	fmt.Printf("Size:     %dx%d\n", f.Width(), f.Height())
	fmt.Printf("Altitude: %d..%d\n", lo, hi)
	fmt.Printf("Cliffs:   %d segments\n", cliffs)
	fmt.Println()
	fmt.Println("Tiles by shape:")

	type classStat struct {
		class terrain.ShapeClass
		count int
	}
	var stats []classStat
	for c, n := range classes {
		stats = append(stats, classStat{c, n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].class < stats[j].class
	})
	for _, s := range stats {
		fmt.Printf("  %-12s %d\n", s.class, s.count)
	}
	return nil
}

func cmdDump(cfg *config.Config, layouts *assets.Manager, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	shapes := fs.Bool("shapes", false, "Print shape keys instead of YAML")
	fs.Parse(args)

	f, name, err := loadField(cfg, layouts)
	if err != nil {
		return err
	}

	if !*shapes {
		data, err := assets.MarshalLayout(name, f)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	for y := 0; y < f.Height(); y++ {
		row := make([]string, f.Width())
		for x := range row {
			s, _ := f.State(x, y)
			row[x] = s.Key().String()
		}
		fmt.Println(strings.Join(row, " "))
	}
	return nil
}

func cmdCliffs(cfg *config.Config, layouts *assets.Manager, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: terrainctl cliffs <x> <y>")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("parsing x: %w", err)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("parsing y: %w", err)
	}

	f, _, err := loadField(cfg, layouts)
	if err != nil {
		return err
	}
	if !f.InBounds(x, y) {
		return fmt.Errorf("tile (%d,%d) outside %dx%d map", x, y, f.Width(), f.Height())
	}

	s, _ := f.State(x, y)
	fmt.Printf("Tile (%d,%d): %s shape %s\n", x, y, s, s.Key())
	for _, c := range f.Cliffs(x, y) {
		fmt.Printf("  %s  elevation %d\n", c.Texture(), c.Elevation)
	}
	return nil
}

func cmdApply(cfg *config.Config, layouts *assets.Manager, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: terrainctl apply <script.yaml>")
	}
	script, err := editor.LoadScript(args[0])
	if err != nil {
		return err
	}

	f, _, err := loadField(cfg, layouts)
	if err != nil {
		return err
	}

	opts := editor.OptionsFromConfig(cfg.Editor)
	if cfg.Metrics.Enabled {
		opts.Metrics = editor.NewMetrics(prometheus.DefaultRegisterer)
	}
	tool := editor.New(f, opts)

	total := 0
	for i, r := range script.Run(tool) {
		fmt.Printf("step %d: (%d,%d) requested %+d realized %+d, %d tiles affected, %d to redraw\n",
			i+1, r.Step.X, r.Step.Y, r.Step.Drag, r.Summary.Delta,
			len(r.Update.Edit.Affected), len(r.Update.Redraw))
		total += r.Summary.Delta
	}
	lo, hi := f.AltitudeRange()
	fmt.Printf("total: %+d, altitude now %d..%d\n", total, lo, hi)
	return nil
}

func cmdEncode(cfg *config.Config, layouts *assets.Manager, args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	compress := fs.Bool("zstd", false, "Compress the tile payload")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: terrainctl encode <out.tmap> [-zstd]")
	}
	f, name, err := loadField(cfg, layouts)
	if err != nil {
		return err
	}
	path := fs.Arg(0)
	if !strings.EqualFold(filepath.Ext(path), ".tmap") {
		path += ".tmap"
	}
	if err := saveField(path, name, f, *compress); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", path, f.Width(), f.Height())
	return nil
}

func cmdDecode(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: terrainctl decode <in.tmap>")
	}
	m, err := tilemap.DecodeFile(args[0])
	if err != nil {
		return err
	}
	logger.Debug("decoded tile map",
		zap.String("version", m.Version.String()),
		zap.Stringer("compression", m.Compression))

	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	data, err := assets.MarshalLayout(name, assets.FromTileMap(m))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func cmdGenerate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	compress := fs.Bool("zstd", false, "Compress .tmap output")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: terrainctl generate <out> [-zstd]")
	}
	p := generate.FromConfig(cfg.Generator, cfg.Map.Seed)
	f := generate.Perlin(cfg.Map.Width, cfg.Map.Height, p)
	name := fmt.Sprintf("perlin-%d", cfg.Map.Seed)
	if err := saveField(fs.Arg(0), name, f, *compress); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d, seed %d)\n", fs.Arg(0), f.Width(), f.Height(), cfg.Map.Seed)
	return nil
}

// cmdConfig prints the effective configuration or saves it.
func cmdConfig(cfg *config.Config, args []string) error {
	action := "show"
	if len(args) > 0 {
		action = args[0]
	}
	switch action {
	case "show":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "save":
		if len(args) > 1 {
			if err := cfg.SaveTo(args[1]); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[1])
			return nil
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return nil
	default:
		return fmt.Errorf("usage: terrainctl config [show | save [path]]")
	}
}
