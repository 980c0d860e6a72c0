// Command rusteroids opens a window and flies the ship with W, A and D. Escape quits.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/rusteroids/common"
	"github.com/Carmen-Shannon/rusteroids/config"
	"github.com/Carmen-Shannon/rusteroids/engine"
	"github.com/Carmen-Shannon/rusteroids/engine/gpu/wgpu_backend"
	"github.com/Carmen-Shannon/rusteroids/engine/profiler"
	"github.com/Carmen-Shannon/rusteroids/engine/renderer"
	"github.com/Carmen-Shannon/rusteroids/engine/window"
	"github.com/Carmen-Shannon/rusteroids/game"
	"github.com/pkg/profile"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a .yaml, .yml or .toml config file")
	logLevel := flag.String("log-level", "", "debug, info, warn or error; overrides log.level")
	profileMode := flag.String("profile", "", "write a cpu, mem or trace profile to the working directory")
	fallbackAdapter := flag.Bool("fallback-adapter", false, "force the software fallback adapter")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		slog.Error("invalid log level", "error", err)
		return 1
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	wgpu_backend.ApplyLogLevel(os.Getenv(wgpu_backend.LogLevelEnv))

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "trace":
		defer profile.Start(profile.TraceProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		slog.Error("unknown profile mode", "mode", *profileMode)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var updates <-chan config.Config
	if *configPath != "" {
		if updates, err = config.Watch(ctx, *configPath); err != nil {
			slog.Warn("config hot reload disabled", "error", err)
		}
	}

	win := window.NewWindow(window.WithConfig(cfg.Window))
	defer win.Close()

	backend := wgpu_backend.NewBackend(win.SurfaceDescriptor(),
		wgpu_backend.WithForceFallbackAdapter(cfg.Renderer.ForceFallbackAdapter || *fallbackAdapter),
	)

	bg := cfg.Renderer.ClearColor
	opts := []renderer.RendererBuilderOption{
		renderer.WithClearColor(common.Color{R: bg[0], G: bg[1], B: bg[2], A: bg[3]}),
	}
	if mode, ok := cfg.Renderer.PresentModeValue(); ok {
		opts = append(opts, renderer.WithPresentMode(mode))
	}

	width, height := win.Size()
	r, err := renderer.NewRenderer(ctx, backend, width, height, opts...)
	if err != nil {
		slog.Error("renderer setup failed", "error", err)
		return 1
	}
	defer r.Release()

	rusteroids := game.NewRusteroids()
	if err := rusteroids.Apply(cfg.Physics); err != nil {
		slog.Error("invalid physics", "error", err)
		return 1
	}

	interval, _ := cfg.Profiler.IntervalDuration()
	e := engine.NewEngine(win, r, game.NewScene(rusteroids),
		engine.WithProfiling(cfg.Profiler.Enabled),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithInterval(interval))),
		engine.WithConfigUpdates(updates),
	)
	if err := e.Run(); err != nil {
		slog.Error("frame loop stopped", "error", err)
		return 1
	}
	return 0
}
