// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/SoftbearStudios/fractal/terrain"
	"github.com/SoftbearStudios/fractal/terrain/pyramid"
)

func main() {
	var (
		configPath string
		cpuProfile string
		out        string
		center     terrain.Key
		tiles      int
	)

	flag.StringVar(&configPath, "config", "", "yaml terrain config (defaults when empty)")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&out, "out", "out.png", "output `file`")
	flag.IntVar(&center.Level, "level", 0, "level of the center tile")
	flag.IntVar(&center.X, "x", 0, "x of the center tile")
	flag.IntVar(&center.Y, "y", 0, "y of the center tile")
	flag.IntVar(&tiles, "tiles", 4, "tiles per side, a power of two")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			logger.Error("could not create CPU profile", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Error("could not start CPU profile", "err", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(logger, configPath, out, center, tiles); err != nil {
		logger.Error("render failed", "err", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, out string, center terrain.Key, tiles int) (err error) {
	if tiles < 1 || tiles&(tiles-1) != 0 {
		return fmt.Errorf("tiles %d is not a power of two", tiles)
	}

	config := terrain.DefaultConfig()
	if configPath != "" {
		if config, err = terrain.LoadConfig(configPath); err != nil {
			return err
		}
	}

	p := pyramid.New(config, pyramid.WithLogger(logger))
	img := terrain.Render(p.Window(center, tiles))
	p.Debug()

	file, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	if err = png.Encode(file, img); err != nil {
		return err
	}
	logger.Info("rendered window", "center", center.String(), "tiles", tiles, "out", out)
	return nil
}
