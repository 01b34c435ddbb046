package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"

	"kate/app"
	"kate/hal"
	"kate/internal/buildinfo"
	"kate/internal/config"
)

func main() {
	var (
		headless hal.HeadlessConfig
		terminal bool
		path     string
		version  bool
	)
	file := config.Default()

	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.BoolVar(&terminal, "terminal", false, "Draw the scene in the terminal.")
	flag.IntVar(&file.Hz, "hz", file.Hz, "Frame rate.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&file.Font, "font", "", "TrueType/OpenType font file (default: embedded Go Bold).")
	flag.StringVar(&path, "config", "", "YAML config file.")
	flag.Uint64Var(&file.Seed, "seed", 0, "Random seed for object placement (0 = random).")
	flag.Float64Var(&file.Scale, "scale", file.Scale, "Render resolution relative to the window.")
	flag.IntVar(&file.Workers, "workers", file.Workers, "Rasterizer goroutines.")
	flag.BoolVar(&file.HUD, "hud", false, "Show the status overlay.")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		// Flags given on the command line win over the file.
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		override(&loaded, file, set)
		file = loaded
	}
	if file.Seed == 0 {
		file.Seed = randomSeed()
	}

	cfg := app.Config{
		Params:  file.Scene,
		Font:    file.Font,
		Seed:    file.Seed,
		FPS:     file.Hz,
		Workers: file.Workers,
		Scale:   file.Scale,
		HUD:     file.HUD,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	newApp := func(h hal.HAL) func() error { return app.New(ctx, h, cfg) }

	var err error
	switch {
	case headless.Enabled:
		headless.Hz = file.Hz
		headless.Width, headless.Height = file.Window.Width, file.Window.Height
		err = hal.RunHeadless(ctx, newApp, headless)
	case terminal:
		err = hal.RunTerminal(ctx, newApp, hal.TerminalConfig{Hz: file.Hz})
	default:
		err = hal.RunWindow(ctx, newApp, hal.WindowConfig{
			Title:  "kate (" + buildinfo.Short() + ")",
			Width:  file.Window.Width,
			Height: file.Window.Height,
			TPS:    file.Hz,
		})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func override(dst *config.File, flags config.File, set map[string]bool) {
	if set["hz"] {
		dst.Hz = flags.Hz
	}
	if set["font"] {
		dst.Font = flags.Font
	}
	if set["seed"] {
		dst.Seed = flags.Seed
	}
	if set["scale"] {
		dst.Scale = flags.Scale
	}
	if set["workers"] {
		dst.Workers = flags.Workers
	}
	if set["hud"] {
		dst.HUD = flags.HUD
	}
}

func randomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
