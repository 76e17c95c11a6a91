package reach

import "github.com/go-gl/mathgl/mgl64"

// DragVectorDetector turns a stream of positions into per-frame drag deltas
// once movement from the first recorded position crosses a threshold.
type DragVectorDetector struct {
	threshold float64

	origin    mgl64.Vec3
	hasOrigin bool
	dragging  bool
	last      mgl64.Vec3
	vector    mgl64.Vec3
}

// NewDragVectorDetector returns a detector that starts dragging once the
// distance from the origin reaches threshold.
func NewDragVectorDetector(threshold float64) *DragVectorDetector {
	return &DragVectorDetector{threshold: threshold}
}

// Threshold returns the configured drag threshold.
func (d *DragVectorDetector) Threshold() float64 {
	return d.threshold
}

// GetDragVector feeds the current position. The first call after Clear
// records the origin and returns false. Dragging begins once the distance
// from the origin reaches the threshold, or immediately when instant is set;
// from then on the frame-to-frame delta is returned.
func (d *DragVectorDetector) GetDragVector(pos mgl64.Vec3, instant bool) (mgl64.Vec3, bool) {
	if !d.hasOrigin {
		d.origin = pos
		d.last = pos
		d.hasOrigin = true
		return mgl64.Vec3{}, false
	}
	if !d.dragging && (instant || pos.Sub(d.origin).Len() >= d.threshold) {
		d.dragging = true
	}
	if !d.dragging {
		d.last = pos
		return mgl64.Vec3{}, false
	}
	d.vector = pos.Sub(d.last)
	d.last = pos
	return d.vector, true
}

// Dragging reports whether the threshold has been crossed since the last Clear.
func (d *DragVectorDetector) Dragging() bool {
	return d.dragging
}

// Origin returns the first position recorded since the last Clear.
func (d *DragVectorDetector) Origin() (mgl64.Vec3, bool) {
	return d.origin, d.hasOrigin
}

// Clear resets origin, dragging flag, last position and vector together.
func (d *DragVectorDetector) Clear() {
	*d = DragVectorDetector{threshold: d.threshold}
}
