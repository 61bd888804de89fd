package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/acengine/levels"
	"github.com/milk9111/acengine/logging"
	"github.com/milk9111/acengine/observability"
	"github.com/milk9111/acengine/prefabs"
)

func main() {
	projectName := flag.String("project", "", "project file (.json, .acp, .yaml) or embedded project name in levels/")
	frame := flag.Int("frame", 0, "frame index to start on")
	watch := flag.Bool("watch", false, "reload the project when it or the prefabs change")
	debug := flag.Bool("debug", false, "enable debug overlay and debug logging")
	trace := flag.Bool("trace", false, "export OpenTelemetry spans to stdout")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address (e.g. :9090)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	rt, err := prefabs.LoadRuntimeSpec()
	if err != nil {
		log.Fatal(err)
	}

	logCfg := logging.Config{Level: rt.Log.Level, Format: rt.Log.Format}
	if *debug {
		logCfg.Level = "debug"
	}
	logger := logging.NewFromEnv(logCfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracing := observability.TracingConfigFromEnv()
	if *trace {
		tracing.Enabled = true
	}
	shutdown, err := observability.InitTracing(ctx, tracing, logger)
	if err != nil {
		logger.Error(ctx, "tracing setup failed", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, logger)

	collector, err := observability.NewCollector(nil)
	if err != nil {
		logger.Error(ctx, "metrics setup failed", logging.Err(err))
		os.Exit(1)
	}
	addr := *metricsAddr
	if addr == "" {
		addr = rt.Metrics.Addr
	}
	if addr != "" {
		go func() {
			if err := collector.Serve(ctx, addr, logger); err != nil {
				logger.Error(ctx, "metrics endpoint stopped", logging.Err(err))
			}
		}()
	}

	p, err := levels.Resolve(*projectName)
	if err != nil {
		logger.Error(ctx, "load project failed", logging.String("project", *projectName), logging.Err(err))
		os.Exit(1)
	}

	game, err := NewGame(GameConfig{
		Context:     ctx,
		ProjectPath: *projectName,
		Project:     p,
		Frame:       *frame,
		Runtime:     rt,
		Debug:       *debug,
		Watch:       *watch,
		Logger:      logger,
		Metrics:     collector,
	})
	if err != nil {
		logger.Error(ctx, "start session failed", logging.Err(err))
		os.Exit(1)
	}
	defer game.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	w, h := p.WindowWidth, p.WindowHeight
	if w <= 0 || h <= 0 {
		w, h = 800, 600
	}
	if p.BuildSettings.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(p.BuildSettings.Fullscreen)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(windowTitle(p.Name))
	ebiten.SetTPS(game.TPS())

	if err := ebiten.RunGame(game); err != nil {
		logger.Error(ctx, "game loop failed", logging.Err(err))
		os.Exit(1)
	}
}

func windowTitle(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "acengine"
	}
	return name + " - acengine"
}
