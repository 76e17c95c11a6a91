package ebitenio

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/reach"
)

func fakeMouse(bounds reach.Rect, x, y *int, pressed, focused *bool) *MouseSource {
	m := NewMouseSource(bounds)
	m.cursor = func() (int, int) { return *x, *y }
	m.pressed = func() bool { return *pressed }
	m.focused = func() bool { return *focused }
	return m
}

func TestMouseSource_PointerFrame(t *testing.T) {
	x, y := 10, 20
	pressed, focused := false, true
	m := fakeMouse(reach.Rect{Width: 100, Height: 100}, &x, &y, &pressed, &focused)

	tests := []struct {
		name             string
		x, y             int
		pressed, focused bool
		want             reach.PointerFrame
	}{
		{"inside", 10, 20, false, true, reach.PointerFrame{Active: true, X: 10, Y: 20}},
		{"pressed", 50, 50, true, true, reach.PointerFrame{Active: true, X: 50, Y: 50, Pressed: true}},
		{"outside", 150, 50, false, true, reach.PointerFrame{X: 150, Y: 50}},
		{"unfocused", 10, 10, false, false, reach.PointerFrame{X: 10, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, pressed, focused = tt.x, tt.y, tt.pressed, tt.focused
			if got := m.PointerFrame(); got != tt.want {
				t.Errorf("PointerFrame() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

type fakeTouches struct {
	ids []ebiten.TouchID
	pos map[ebiten.TouchID][2]int
}

func (f *fakeTouches) source() *TouchSource {
	ts := NewTouchSource()
	ts.touches = func(buf []ebiten.TouchID) []ebiten.TouchID { return append(buf, f.ids...) }
	ts.position = func(id ebiten.TouchID) (int, int) { p := f.pos[id]; return p[0], p[1] }
	return ts
}

func TestTouchSource_TapReleasesBeforeGoingInactive(t *testing.T) {
	f := &fakeTouches{pos: map[ebiten.TouchID][2]int{1: {30, 40}, 2: {90, 90}}}
	ts := f.source()

	if got := ts.PointerFrame(); got.Active {
		t.Fatalf("no touch: Active = true")
	}

	f.ids = []ebiten.TouchID{1}
	if got := ts.PointerFrame(); !got.Active || !got.Pressed || got.X != 30 || got.Y != 40 {
		t.Errorf("touch down = %+v, want pressed at (30,40)", got)
	}

	// A second finger does not steal the pointer.
	f.ids = []ebiten.TouchID{1, 2}
	f.pos[1] = [2]int{35, 45}
	if got := ts.PointerFrame(); got.X != 35 || got.Y != 45 {
		t.Errorf("move = %+v, want (35,45)", got)
	}

	f.ids = nil
	got := ts.PointerFrame()
	if !got.Active || got.Pressed || got.X != 35 {
		t.Errorf("lift frame = %+v, want active, released at last position", got)
	}
	if got := ts.PointerFrame(); got.Active {
		t.Errorf("after lift: Active = true, want false")
	}
}

func TestLabel(t *testing.T) {
	app := reach.MustApp(reach.DefaultConfig())
	defer app.Close()
	it, err := app.AddInteractable(nil, "button")
	if err != nil {
		t.Fatal(err)
	}
	if got := label(it); got != "button" {
		t.Errorf("label = %q, want %q", got, "button")
	}
}

func TestGame_LayoutResizesCamera(t *testing.T) {
	app := reach.MustApp(reach.DefaultConfig())
	defer app.Close()
	g, err := NewGame(app, RunConfig{Width: 320, Height: 240, NoTouch: true})
	if err != nil {
		t.Fatal(err)
	}
	if w, h := g.Layout(800, 600); w != 800 || h != 600 {
		t.Errorf("Layout = %d,%d, want 800,600", w, h)
	}
	want := reach.Rect{Width: 800, Height: 600}
	if got := app.Scene.Camera().Viewport; got != want {
		t.Errorf("camera viewport = %+v, want %+v", got, want)
	}
	if g.Mouse.Bounds != want {
		t.Errorf("mouse bounds = %+v, want %+v", g.Mouse.Bounds, want)
	}
}

func TestGame_UpdateDrivesManager(t *testing.T) {
	app := reach.MustApp(reach.DefaultConfig())
	defer app.Close()
	cam := app.Scene.Camera()
	cam.Position = mgl64.Vec3{0, 0, 10}
	button, err := app.AddInteractable(nil, "button",
		reach.NewBoxCollider(mgl64.Vec3{}, mgl64.Vec3{1, 1, 0.1}))
	if err != nil {
		t.Fatal(err)
	}

	g, err := NewGame(app, RunConfig{Width: 640, Height: 480, NoTouch: true})
	if err != nil {
		t.Fatal(err)
	}
	x, y := 320, 240
	pressed, focused := false, true
	g.Mouse.cursor = func() (int, int) { return x, y }
	g.Mouse.pressed = func() bool { return pressed }
	g.Mouse.focused = func() bool { return focused }

	var hovered bool
	button.OnHoverEnter(func(reach.InteractableEvent) { hovered = true })
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if !hovered {
		t.Error("HoverEnter not delivered through Game.Update")
	}
	if got := button.HoveringInteractor(); got != reach.InputMouse {
		t.Errorf("HoveringInteractor = %v, want mouse", got)
	}
}
