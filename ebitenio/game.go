// Package ebitenio drives a reach.App from an ebiten game loop, with mouse
// and touch pointer sources and a debug overlay.
package ebitenio

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/reach"
)

// RunConfig configures Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowDebug draws every interactor's state and the FPS / TPS in the corner.
	ShowDebug bool
	// ShowLabels draws interactable names at their projected positions.
	ShowLabels bool
	// NoTouch skips the mobile interactor.
	NoTouch bool
}

// Game implements ebiten.Game for a reach.App.
type Game struct {
	App   *reach.App
	Mouse *MouseSource
	Touch *TouchSource

	// OnDraw, if set, draws the application content before the overlay.
	OnDraw func(screen *ebiten.Image)

	cfg           RunConfig
	width, height int
}

// NewGame creates a game driving app, registering a mouse interactor and,
// unless cfg.NoTouch, a mobile interactor on the scene camera.
func NewGame(app *reach.App, cfg RunConfig) (*Game, error) {
	bounds := reach.Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	g := &Game{
		App:    app,
		Mouse:  NewMouseSource(bounds),
		cfg:    cfg,
		width:  cfg.Width,
		height: cfg.Height,
	}
	if _, err := app.NewMouseInteractor(g.Mouse); err != nil {
		return nil, fmt.Errorf("mouse interactor: %w", err)
	}
	if !cfg.NoTouch {
		g.Touch = NewTouchSource()
		if _, err := app.NewMobileInteractor(g.Touch); err != nil {
			return nil, fmt.Errorf("mobile interactor: %w", err)
		}
	}
	g.resize(cfg.Width, cfg.Height)
	return g, nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.App.Update()
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.OnDraw != nil {
		g.OnDraw(screen)
	}
	if g.cfg.ShowLabels {
		g.drawLabels(screen, g.App.Scene.Root())
	}
	if g.cfg.ShowDebug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f TPS: %.1f\n%s", ebiten.ActualFPS(), ebiten.ActualTPS(), g.App.Manager.DebugSummary()))
	}
}

// drawLabels prints each interactable's name at its projected origin,
// marked while hovered or triggered.
func (g *Game) drawLabels(screen *ebiten.Image, n *reach.Node) {
	cam := g.App.Scene.Camera()
	if cam == nil {
		return
	}
	for _, child := range n.Children() {
		if !child.Enabled {
			continue
		}
		if it := g.App.Manager.InteractableForNode(child); it != nil {
			if x, y, ok := cam.WorldToScreen(child.WorldPosition()); ok {
				ebitenutil.DebugPrintAt(screen, label(it), int(x), int(y))
			}
		}
		g.drawLabels(screen, child)
	}
}

func label(it *reach.Interactable) string {
	switch {
	case it.TriggeringInteractor() != reach.InputNone:
		return "[" + it.Name() + "]"
	case it.HoveringInteractor() != reach.InputNone:
		return "*" + it.Name()
	default:
		return it.Name()
	}
}

// Layout implements ebiten.Game. The camera viewport and mouse bounds follow
// the outside size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) resize(w, h int) {
	g.width, g.height = w, h
	r := reach.Rect{Width: float64(w), Height: float64(h)}
	g.Mouse.Bounds = r
	if cam := g.App.Scene.Camera(); cam != nil {
		cam.Viewport = r
	}
}

// Run opens a window and drives app until the window closes. The app is
// closed on return.
func Run(app *reach.App, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	g, err := NewGame(app, cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
