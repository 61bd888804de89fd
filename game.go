package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/levels"
	"github.com/milk9111/acengine/logging"
	"github.com/milk9111/acengine/observability"
	"github.com/milk9111/acengine/prefabs"
	"github.com/milk9111/acengine/project"
	"github.com/milk9111/acengine/render"
	"github.com/milk9111/acengine/session"
	"golang.design/x/clipboard"
)

const statusTicks = 120

// quitKey ends the running session, as closing the play window did.
const quitKey = "Escape"

type GameConfig struct {
	Context     context.Context
	ProjectPath string
	Project     *project.Project
	Frame       int
	Runtime     *prefabs.RuntimeSpec
	Debug       bool
	Watch       bool
	Logger      logging.Logger
	Metrics     *observability.Collector
}

// Game hosts a session inside ebiten. ebiten calls Update at the project's
// fps, and every call advances the session by exactly one tick.
type Game struct {
	cfg GameConfig
	ctx context.Context

	sess     *session.Session
	input    *Input
	renderer *Renderer
	pauseUI  *ebitenui.UI
	watcher  *prefabs.Watcher

	snap      render.Snapshot
	clipboard bool
	quit      bool
	onPause   func()

	status      string
	statusTimer int
}

func NewGame(cfg GameConfig) (*Game, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.Noop()
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	g := &Game{
		cfg:      cfg,
		ctx:      cfg.Context,
		input:    NewInput(),
		renderer: NewRenderer(cfg.Debug),
	}
	if err := g.restart(cfg.Project, cfg.Frame); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if err := clipboard.Init(); err != nil {
		cfg.Logger.Warn(g.ctx, "clipboard unavailable", logging.Err(err))
	} else {
		g.clipboard = true
	}

	if cfg.Watch {
		if err := g.startWatcher(); err != nil {
			cfg.Logger.Warn(g.ctx, "hot reload disabled", logging.Err(err))
		}
	}
	return g, nil
}

// TPS is the tick rate ebiten should drive Update at.
func (g *Game) TPS() int {
	if g.cfg.Runtime != nil && g.cfg.Runtime.FPS > 0 {
		return g.cfg.Runtime.FPS
	}
	return g.cfg.Project.EffectiveFPS()
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.sess != nil {
		g.sess.Stop()
	}
}

func (g *Game) restart(p *project.Project, frame int) error {
	templates, err := prefabs.LoadObjectLibrarySpec()
	if err != nil {
		g.cfg.Logger.Warn(g.ctx, "object templates unavailable", logging.Err(err))
	}
	sess, err := session.New(p,
		session.WithLogger(g.cfg.Logger),
		session.WithMetrics(g.cfg.Metrics),
		session.WithTemplates(templates),
		session.WithRuntimeSpec(g.cfg.Runtime),
		session.WithQuitKey(quitKey),
	)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	if err := sess.Start(frame); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if g.sess != nil {
		g.sess.Stop()
	}
	g.cfg.Project = p
	g.sess = sess
	g.snap = sess.Snapshot()
	return nil
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	g.pollWatcher()
	if g.statusTimer > 0 {
		g.statusTimer--
	}

	in := g.input.Sample()

	if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
		g.copyState()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.togglePause()
	}

	switch g.sess.State() {
	case session.StateEnded:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if err := g.restart(g.cfg.Project, g.cfg.Frame); err != nil {
				return err
			}
		}
		return nil
	case session.StatePaused:
		g.pauseUI.Update()
	}

	snap, err := g.sess.Step(in)
	if err != nil && !errors.Is(err, session.ErrEnded) {
		return err
	}
	g.snap = snap

	for _, evt := range g.sess.Events() {
		g.logEvent(evt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.snap)

	switch {
	case g.snap.Ended:
		g.renderer.DrawBanner(screen, "Session ended. Press Enter to play again.")
	case g.sess.State() == session.StatePaused:
		g.pauseUI.Draw(screen)
	}

	if g.statusTimer > 0 {
		g.renderer.DrawStatus(screen, g.status)
	}
	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Tick: %d    Items: %d    FPS: %.2f", g.snap.Tick, len(g.snap.Items), ebiten.ActualFPS()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := g.snap.Width, g.snap.Height
	if w <= 0 || h <= 0 {
		return float64(g.cfg.Project.WindowWidth), float64(g.cfg.Project.WindowHeight)
	}
	return w, h
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) togglePause() {
	switch g.sess.State() {
	case session.StateRunning:
		g.sess.Pause()
		if g.onPause != nil {
			g.onPause()
		}
	case session.StatePaused:
		g.sess.Resume()
	}
}

func (g *Game) restartFrame() {
	if err := g.sess.LoadScene(g.snap.FrameIndex); err != nil {
		g.cfg.Logger.Warn(g.ctx, "restart frame failed", logging.Err(err))
		return
	}
	g.sess.Resume()
	g.snap = g.sess.Snapshot()
}

func (g *Game) copyState() {
	if !g.clipboard {
		g.setStatus("clipboard unavailable")
		return
	}
	data, err := g.sess.DumpJSON()
	if err != nil {
		g.cfg.Logger.Warn(g.ctx, "dump state failed", logging.Err(err))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("world state copied to clipboard")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTimer = statusTicks
}

func (g *Game) logEvent(evt engine.Event) {
	g.cfg.Logger.Debug(g.ctx, "session event",
		logging.String("type", string(evt.Type)),
		logging.Int("frame", evt.Frame),
		logging.Int("tick", evt.Tick),
		logging.String("entity", evt.EntityID),
		logging.Any("data", evt.Data),
	)
	if evt.Type == engine.EventSessionEnded {
		g.setStatus(fmt.Sprintf("session ended: %v", evt.Data))
	}
}

func (g *Game) startWatcher() error {
	var dirs []string
	if g.cfg.ProjectPath != "" {
		if _, err := os.Stat(g.cfg.ProjectPath); err == nil {
			dirs = append(dirs, filepath.Dir(g.cfg.ProjectPath))
		}
	}
	if info, err := os.Stat("prefabs"); err == nil && info.IsDir() {
		dirs = append(dirs, "prefabs")
	}
	if len(dirs) == 0 {
		return errors.New("nothing on disk to watch")
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = w
	g.cfg.Logger.Info(g.ctx, "watching for changes", logging.Any("dirs", dirs))
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case c, ok := <-g.watcher.Changes:
		if !ok {
			g.watcher = nil
			return
		}
		g.reload(c)
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			g.cfg.Logger.Warn(g.ctx, "watcher error", logging.Err(err))
		}
	default:
	}
}

// reload rebuilds the session from disk at the current frame.
func (g *Game) reload(c prefabs.Change) {
	changed := c.Path
	if c.Kind == prefabs.ChangeRuntime {
		rt, err := prefabs.LoadRuntimeSpec()
		if err != nil {
			g.cfg.Logger.Warn(g.ctx, "reload runtime spec failed", logging.Err(err))
			return
		}
		g.cfg.Runtime = rt
	}
	p, err := levels.Resolve(g.cfg.ProjectPath)
	if err != nil {
		g.cfg.Logger.Warn(g.ctx, "reload project failed", logging.String("file", changed), logging.Err(err))
		return
	}
	frame := g.snap.FrameIndex
	if frame >= len(p.Frames) {
		frame = 0
	}
	if err := g.restart(p, frame); err != nil {
		g.cfg.Logger.Warn(g.ctx, "reload session failed", logging.Err(err))
		return
	}
	ebiten.SetTPS(g.TPS())
	g.cfg.Logger.Info(g.ctx, "reloaded", logging.String("file", changed), logging.String("kind", c.Kind.String()), logging.Int("frame", frame))
	g.setStatus("reloaded " + filepath.Base(changed))
}
