package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagMap     = flag.String("map", "", "Layout file (.tmap or .yaml); implies -source=file")
	flagSource  = flag.String("source", "", "Map source: embedded, file or perlin")
	flagSeed    = flag.Int64("seed", 0, "Generator seed")
	flagWidth   = flag.Int("width", 0, "Generated map width")
	flagHeight  = flag.Int("height", 0, "Generated map height")
	flagSmooth  = flag.Bool("smooth", false, "Soften neighbours after each edit")
	flagMetrics = flag.String("metrics", "", "Serve Prometheus metrics on this address")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMap != "" {
		cfg.Map.Source = SourceFile
		cfg.Map.Path = *flagMap
	}
	if *flagSource != "" {
		cfg.Map.Source = *flagSource
	}
	if *flagSeed != 0 {
		cfg.Map.Seed = *flagSeed
	}
	if *flagWidth > 0 {
		cfg.Map.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Map.Height = *flagHeight
	}
	if *flagSmooth {
		cfg.Editor.Smooth = true
	}
	if *flagMetrics != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Listen = *flagMetrics
	}
}
