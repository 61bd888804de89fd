// Command acterm plays a project in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/acengine/levels"
	"github.com/milk9111/acengine/logging"
	"github.com/milk9111/acengine/observability"
	"github.com/milk9111/acengine/prefabs"
	"github.com/milk9111/acengine/session"
)

func main() {
	projectName := flag.String("project", "", "project file (.json, .acp, .yaml) or embedded project name in levels/")
	frame := flag.Int("frame", 0, "frame index to start on")
	logPath := flag.String("log", "acterm.log", "log file (the terminal is used for drawing)")
	debug := flag.Bool("debug", false, "enable debug logging")
	trace := flag.Bool("trace", false, "write OpenTelemetry spans to the log file")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address (e.g. :9090)")
	cellW := flag.Float64("cell-w", 10, "world pixels per terminal column")
	cellH := flag.Float64("cell-h", 20, "world pixels per terminal row")
	hold := flag.Duration("hold", 150*time.Millisecond, "how long a key press counts as held")
	flag.Parse()

	if err := run(options{
		project: *projectName,
		frame:   *frame,
		logPath: *logPath,
		debug:   *debug,
		trace:   *trace,
		metrics: *metricsAddr,
		cell:    cellSize{W: *cellW, H: *cellH},
		hold:    *hold,
	}); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	project string
	frame   int
	logPath string
	debug   bool
	trace   bool
	metrics string
	cell    cellSize
	hold    time.Duration
}

func run(opts options) error {
	logFile, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	rt, err := prefabs.LoadRuntimeSpec()
	if err != nil {
		return err
	}
	logCfg := logging.Config{Level: rt.Log.Level, Format: rt.Log.Format, Output: logFile}
	if opts.debug {
		logCfg.Level = "debug"
	}
	logger := logging.NewFromEnv(logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tracing := observability.TracingConfigFromEnv()
	tracing.Output = logFile
	if opts.trace {
		tracing.Enabled = true
	}
	shutdown, err := observability.InitTracing(ctx, tracing, logger)
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, logger)

	collector, err := observability.NewCollector(nil)
	if err != nil {
		return err
	}
	if addr := firstNonEmpty(opts.metrics, rt.Metrics.Addr); addr != "" {
		go func() {
			if err := collector.Serve(ctx, addr, logger); err != nil {
				logger.Error(ctx, "metrics endpoint stopped", logging.Err(err))
			}
		}()
	}

	p, err := levels.Resolve(opts.project)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	templates, err := prefabs.LoadObjectLibrarySpec()
	if err != nil {
		logger.Warn(ctx, "object templates unavailable", logging.Err(err))
	}
	sess, err := session.New(p,
		session.WithLogger(logger),
		session.WithMetrics(collector),
		session.WithTemplates(templates),
		session.WithRuntimeSpec(rt),
		session.WithQuitKey("Escape"),
	)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	input := newTermInput(opts.hold)
	renderer := &screenRenderer{screen: screen, cell: opts.cell}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go pollEvents(screen, sess, input, opts.cell, cancel)

	if err := sess.Start(opts.frame); err != nil {
		return err
	}
	renderer.Render(sess.Snapshot())

	err = sess.Run(ctx, input, renderer)
	if err != nil && ctx.Err() == nil {
		return err
	}

	if sess.State() == session.StateEnded {
		renderer.status = "ended: " + sess.EndReason()
		renderer.Render(sess.Snapshot())
		select {
		case <-ctx.Done():
		case <-time.After(2 * time.Second):
		}
	}
	for _, evt := range sess.Events() {
		logger.Debug(ctx, "session event", logging.String("type", string(evt.Type)), logging.Int("tick", evt.Tick))
	}
	return nil
}

// pollEvents forwards terminal events to the session until the screen is
// finalised.
func pollEvents(screen tcell.Screen, sess *session.Session, input *termInput, cell cellSize, cancel context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyCtrlC, tcell.KeyF12:
				cancel()
				return
			case tcell.KeyF1:
				if sess.State() == session.StatePaused {
					sess.Resume()
				} else {
					sess.Pause()
				}
				continue
			}
			input.press(keysym(ev))
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				x, y := ev.Position()
				input.click(cell.toWorld(x, y))
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
