package ebitenio

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/reach"
)

// MouseSource reads the ebiten cursor. The pointer is active while the
// cursor is inside Bounds and the window has focus.
type MouseSource struct {
	// Bounds is the screen area that counts as "inside"; Game keeps it in
	// sync with the layout size.
	Bounds reach.Rect

	cursor  func() (int, int)
	pressed func() bool
	focused func() bool
}

// NewMouseSource returns a source reading the left mouse button.
func NewMouseSource(bounds reach.Rect) *MouseSource {
	return &MouseSource{
		Bounds:  bounds,
		cursor:  ebiten.CursorPosition,
		pressed: func() bool { return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) },
		focused: ebiten.IsFocused,
	}
}

// PointerFrame implements reach.PointerSource.
func (m *MouseSource) PointerFrame() reach.PointerFrame {
	x, y := m.cursor()
	fx, fy := float64(x), float64(y)
	return reach.PointerFrame{
		Active:  m.focused() && m.Bounds.Contains(fx, fy),
		X:       fx,
		Y:       fy,
		Pressed: m.pressed(),
	}
}

// TouchSource follows the first touch that lands and ignores the rest until
// it lifts. A lifted touch reports one released frame at its last position
// before going inactive, so taps end instead of being canceled.
type TouchSource struct {
	touches  func([]ebiten.TouchID) []ebiten.TouchID
	position func(ebiten.TouchID) (int, int)

	buf      []ebiten.TouchID
	id       ebiten.TouchID
	tracking bool
	lastX    float64
	lastY    float64
	lifted   bool
}

// NewTouchSource returns a source reading ebiten touches.
func NewTouchSource() *TouchSource {
	return &TouchSource{
		touches:  ebiten.AppendTouchIDs,
		position: ebiten.TouchPosition,
	}
}

// PointerFrame implements reach.PointerSource.
func (t *TouchSource) PointerFrame() reach.PointerFrame {
	t.buf = t.touches(t.buf[:0])

	if t.tracking {
		for _, id := range t.buf {
			if id == t.id {
				x, y := t.position(id)
				t.lastX, t.lastY = float64(x), float64(y)
				return reach.PointerFrame{Active: true, X: t.lastX, Y: t.lastY, Pressed: true}
			}
		}
		t.tracking = false
		t.lifted = true
		return reach.PointerFrame{Active: true, X: t.lastX, Y: t.lastY}
	}

	if len(t.buf) > 0 && !t.lifted {
		t.id = t.buf[0]
		t.tracking = true
		x, y := t.position(t.id)
		t.lastX, t.lastY = float64(x), float64(y)
		return reach.PointerFrame{Active: true, X: t.lastX, Y: t.lastY, Pressed: true}
	}
	t.lifted = false
	return reach.PointerFrame{}
}
