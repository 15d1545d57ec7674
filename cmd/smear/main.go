// Package main is the entry point for the smear cursor demo.
//
// The demo drives the cursor renderer over a tcell surface: session events
// move the cursor around a text grid, each frame is rasterized on a software
// canvas and the result is presented as cell coverage on the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/smear/internal/config"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath, scriptPath := parseFlags()

	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if err := config.ApplyScript(&cfg, scriptPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to apply options script: %v\n", err)
		return 1
	}

	application, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.shutdown()

	if err := application.loop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (configPath, scriptPath string) {
	var showVersion bool

	flag.StringVar(&configPath, "config", defaultConfigPath("smear.toml"), "Path to configuration file")
	flag.StringVar(&scriptPath, "script", defaultConfigPath("cursor.lua"), "Path to options script")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "smear - animated cursor demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: smear [options]\n\n")
		fmt.Fprintf(os.Stderr, "Keys: arrows/hjkl move, n/i/r switch mode, b toggles blink, q quits\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("smear %s\n", version)
		os.Exit(0)
	}
	return configPath, scriptPath
}

func defaultConfigPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "smear", name)
}
