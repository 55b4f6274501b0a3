// terrainctl is a CLI utility for inspecting and editing isometric terrain
// layouts.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/isotile/internal/config"
	"github.com/Faultbox/isotile/internal/logger"
)

func main() {
	// Global flags come before the command.
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	logger.Sugar.Debugf("Config: %+v", cfg)

	var stopMetrics func()
	if cfg.Metrics.Enabled {
		stopMetrics = startMetrics(cfg.Metrics)
	}

	layouts := newLayoutManager()

	command, rest := args[0], args[1:]
	var cmdErr error
	switch command {
	case "info":
		cmdErr = cmdInfo(cfg, layouts, rest)
	case "dump":
		cmdErr = cmdDump(cfg, layouts, rest)
	case "cliffs":
		cmdErr = cmdCliffs(cfg, layouts, rest)
	case "apply":
		cmdErr = cmdApply(cfg, layouts, rest)
	case "encode":
		cmdErr = cmdEncode(cfg, layouts, rest)
	case "config":
		cmdErr = cmdConfig(cfg, rest)
	case "decode":
		cmdErr = cmdDecode(rest)
	case "generate", "gen":
		cmdErr = cmdGenerate(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	layouts.Close()
	if stopMetrics != nil {
		stopMetrics()
	}
	if cmdErr != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(cmdErr))
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terrainctl - isometric terrain layout utility

Usage:
  terrainctl [global flags] <command> [options]

Global flags:
  -config <file>     Config file (default ./config.yaml)
  -map <file>        Work on a .tmap or .yaml layout instead of the built-in map
                     (relative names are searched in . then the config maps dir)
  -source <name>     Map source: embedded, file or perlin
  -seed, -width, -height  Generator settings for -source=perlin
  -smooth            Soften neighbours after each edit
  -metrics <addr>    Serve Prometheus metrics while the command runs
  -debug             Enable debug logging

Commands:
  info                        Show size, altitude range and shape counts
  dump [-shapes]              Print the layout as YAML (or shape keys)
  cliffs <x> <y>              List cliff segments below a tile
  apply <script.yaml>         Run an edit script and report realized deltas
  encode <out.tmap> [-zstd]   Write the starting layout in the dense binary format
  decode <in.tmap>            Print a binary layout as YAML
  generate <out> [-zstd]      Generate a Perlin layout (.tmap or .yaml)
  config [show|save [path]]   Print the effective config or save it

Examples:
  terrainctl info
  terrainctl -map world.tmap cliffs 4 11
  terrainctl -smooth apply edits.yaml
  terrainctl -seed 7 -width 64 -height 64 generate hills.tmap -zstd`)
}
