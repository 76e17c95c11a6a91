package reach

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScriptedPointer is a PointerSource fed from a queue of synthetic frames.
// Each queued frame is consumed by one manager update; once the queue drains
// the last frame is held, like a pointer left resting.
type ScriptedPointer struct {
	queue []PointerFrame
	last  PointerFrame
}

// NewScriptedPointer returns a pointer source with no pointer present.
func NewScriptedPointer() *ScriptedPointer {
	return &ScriptedPointer{}
}

// PointerFrame implements PointerSource.
func (p *ScriptedPointer) PointerFrame() PointerFrame {
	if len(p.queue) == 0 {
		return p.last
	}
	f := p.queue[0]
	copy(p.queue, p.queue[1:])
	p.queue = p.queue[:len(p.queue)-1]
	p.last = f
	return f
}

// Pending returns the number of queued frames.
func (p *ScriptedPointer) Pending() int { return len(p.queue) }

func (p *ScriptedPointer) push(x, y float64, pressed bool) {
	p.queue = append(p.queue, PointerFrame{Active: true, X: x, Y: y, Pressed: pressed})
}

// InjectHover queues a frame with the pointer at (x, y), not pressed.
func (p *ScriptedPointer) InjectHover(x, y float64) { p.push(x, y, false) }

// InjectPress queues a pressed frame at the given screen coordinates.
func (p *ScriptedPointer) InjectPress(x, y float64) { p.push(x, y, true) }

// InjectMove queues a frame at the given screen coordinates with the pointer
// held down. Use this between InjectPress and InjectRelease to simulate a drag.
func (p *ScriptedPointer) InjectMove(x, y float64) { p.push(x, y, true) }

// InjectRelease queues a released frame at the given screen coordinates.
func (p *ScriptedPointer) InjectRelease(x, y float64) { p.push(x, y, false) }

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (p *ScriptedPointer) InjectClick(x, y float64) {
	p.InjectPress(x, y)
	p.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 eased
// intermediate moves, and release at (toX, toY). The sequence consumes
// frames frames (minimum 2). A nil easeFn interpolates linearly.
func (p *ScriptedPointer) InjectDrag(fromX, fromY, toX, toY float64, frames int, easeFn ease.TweenFunc) {
	if frames < 2 {
		frames = 2
	}
	p.InjectPress(fromX, fromY)
	for _, t := range easedSteps(frames-2, easeFn) {
		p.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	p.InjectRelease(toX, toY)
}

// InjectLost queues a frame with no pointer present (touch lifted, cursor
// left the window). A pressed pointer is never released.
func (p *ScriptedPointer) InjectLost() {
	p.queue = append(p.queue, PointerFrame{})
}

// ScriptedHand is a HandSource fed from a queue of synthetic poses. Once the
// queue drains the last pose is held.
type ScriptedHand struct {
	queue []HandFrame
	last  HandFrame
}

// NewScriptedHand returns an untracked hand source.
func NewScriptedHand() *ScriptedHand {
	return &ScriptedHand{}
}

// HandFrame implements HandSource.
func (h *ScriptedHand) HandFrame() HandFrame {
	if len(h.queue) == 0 {
		return h.last
	}
	f := h.queue[0]
	copy(h.queue, h.queue[1:])
	h.queue = h.queue[:len(h.queue)-1]
	h.last = f
	return f
}

// Pending returns the number of queued frames.
func (h *ScriptedHand) Pending() int { return len(h.queue) }

// InjectFrame queues one pose. The pose is marked tracked.
func (h *ScriptedHand) InjectFrame(f HandFrame) {
	f.Tracked = true
	h.queue = append(h.queue, f)
}

// InjectPath queues frames poses eased from from to to, both ends included.
// Every joint, the ray and the pinch strength are interpolated.
func (h *ScriptedHand) InjectPath(from, to HandFrame, frames int, easeFn ease.TweenFunc) {
	if frames < 2 {
		frames = 2
	}
	h.InjectFrame(from)
	for _, t := range easedSteps(frames-2, easeFn) {
		h.InjectFrame(lerpHandFrame(from, to, t))
	}
	h.InjectFrame(to)
}

// InjectLost queues an untracked frame: the hand left the tracking volume.
func (h *ScriptedHand) InjectLost() {
	h.queue = append(h.queue, HandFrame{})
}

// easedSteps returns n progress values strictly between 0 and 1, shaped by
// easeFn (linear when nil).
func easedSteps(n int, easeFn ease.TweenFunc) []float64 {
	if n <= 0 {
		return nil
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	tw := gween.New(0, 1, float32(n+1), easeFn)
	out := make([]float64, n)
	for i := range out {
		v, _ := tw.Set(float32(i + 1))
		out[i] = float64(v)
	}
	return out
}

func lerpHandFrame(a, b HandFrame, t float64) HandFrame {
	return HandFrame{
		Tracked:       true,
		ThumbTip:      lerp(a.ThumbTip, b.ThumbTip, t),
		IndexTip:      lerp(a.IndexTip, b.IndexTip, t),
		IndexMid:      lerp(a.IndexMid, b.IndexMid, t),
		PinchStrength: a.PinchStrength + (b.PinchStrength-a.PinchStrength)*t,
		RayOrigin:     lerp(a.RayOrigin, b.RayOrigin, t),
		RayDirection:  safeNormalize(lerp(a.RayDirection, b.RayDirection, t), b.RayDirection),
	}
}

// easings maps script names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"":             ease.Linear,
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"out-bounce":   ease.OutBounce,
}
