// Package game wires the wave engine into an ebiten window: it polls input,
// runs one engine tick per update, draws the line and the navigation row,
// and answers layout changes.
package game

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-line/internal/config"
	"github.com/iburimskiy/wave-line/internal/engine"
	"github.com/iburimskiy/wave-line/internal/input"
	"github.com/iburimskiy/wave-line/internal/overlay"
	"github.com/iburimskiy/wave-line/internal/wave"
)

const frameTapSize = 120

// App implements ebiten.Game.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	doc    *overlay.Document
	nav    *overlay.Nav
	events *input.Dispatcher
	poller *input.Poller
	eng    *engine.Engine
	navi   *navigator
	render *renderer
	tap    *frameTap

	started time.Time
	debug   bool
	evBuf   []input.Event
	ptsBuf  []wave.Point
	outside [2]int
}

// NewApp builds the element tree, engine and renderer from cfg. Nothing
// runs until Start.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rdr, err := newRenderer(cfg.Render.Color, cfg.Render.Background, cfg.Render.Alpha, cfg.Render.LineWidth)
	if err != nil {
		return nil, err
	}

	doc := overlay.NewDocument(cfg.Window.Width, cfg.Window.Height)
	doc.Root.Append(&overlay.Element{ID: engine.SurfaceID, Kind: overlay.KindCanvas, Bounds: doc.Root.Bounds})
	var links []overlay.LinkSpec
	if cfg.Overlay.ShowNav {
		links = cfg.Overlay.Links
	}
	nav := overlay.NewNav(doc, links, cfg.Window.TPS)

	events := input.NewDispatcher()
	a := &App{
		cfg:    cfg,
		logger: logger,
		doc:    doc,
		nav:    nav,
		events: events,
		render: rdr,
		tap:    newFrameTap(frameTapSize),
		debug:  cfg.Render.Debug,
	}
	a.eng = engine.New(cfg.Wave.Params(), engine.Options{
		Step:    cfg.Render.Step,
		TapSlop: cfg.Input.TapSlop,
	}, events, engine.SystemClock{}, logger)
	a.navi = newNavigator(nav, a.eng, logger)
	a.poller = input.NewPoller(&ebitenSource{scale: func() float64 { return a.eng.Surface().Scale }}, doc)
	return a, nil
}

// Engine exposes the wave engine to collaborators.
func (a *App) Engine() *engine.Engine { return a.eng }

// Start initialises the engine and attaches the navigation collaborator.
func (a *App) Start() bool {
	a.started = time.Now()
	if !a.eng.Init(a.doc) {
		return false
	}
	a.navi.attach(a.events)
	return true
}

// Close stops the engine and detaches every listener.
func (a *App) Close() {
	a.navi.close()
	a.eng.Destroy()
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		a.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.debug = !a.debug
	}

	start := time.Now()
	a.evBuf = a.poller.Poll(a.evBuf[:0])
	for _, ev := range a.evBuf {
		a.events.Dispatch(ev)
	}
	a.nav.Update(a.navi.hovered)
	if a.eng.Tick() {
		a.tap.record(time.Since(start))
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.ptsBuf = a.eng.Points(a.ptsBuf)
	a.render.drawWave(screen, a.ptsBuf)
	a.render.drawNav(screen, a.nav)
	if a.debug {
		a.render.drawDebug(screen, a.eng.Stats(), time.Since(a.started), a.tap.mean())
	}
}

// Layout is the resize handler: the backing store follows the window size
// times the monitor's device scale factor.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	s := a.eng.Resize(float64(outsideWidth), float64(outsideHeight), scale)
	if a.outside != [2]int{outsideWidth, outsideHeight} {
		a.outside = [2]int{outsideWidth, outsideHeight}
		a.doc.Resize(outsideWidth, outsideHeight)
		a.nav.Layout(outsideWidth, outsideHeight)
	}
	if s != a.render.surface {
		a.render.resize(s)
	}
	return s.BackingWidth, s.BackingHeight
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if !app.Start() {
		app.logger.Warn("Running without animation")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Demo.AutoRippleInterval > 0 {
		go engine.AutoRipple(ctx, app.Engine(), cfg.Demo.AutoRippleInterval, rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	err = ebiten.RunGame(&stoppable{App: app, ctx: ctx})
	app.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// stoppable ends the game loop once ctx is cancelled.
type stoppable struct {
	*App
	ctx context.Context
}

func (s *stoppable) Update() error {
	if s.ctx.Err() != nil {
		return ebiten.Termination
	}
	return s.App.Update()
}
