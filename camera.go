package reach

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned screen rectangle. The coordinate system has its
// origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Camera is a perspective camera used to turn screen positions into world
// rays. It looks down its local -Z axis.
type Camera struct {
	// Position is the world-space eye position.
	Position mgl64.Vec3
	// Rotation is the world-space orientation.
	Rotation mgl64.Quat
	// FovY is the vertical field of view in radians.
	FovY float64
	// Near and Far are the clip plane distances.
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
}

// NewCamera creates a camera at the origin looking down -Z with a 60 degree
// vertical field of view.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Rotation: mgl64.QuatIdent(),
		FovY:     mgl64.DegToRad(60),
		Near:     1,
		Far:      1000,
		Viewport: viewport,
	}
}

// LookAt orients the camera toward target with the given up vector.
func (c *Camera) LookAt(target, up mgl64.Vec3) {
	// QuatLookAtV yields the view rotation; Rotation is the camera's own.
	c.Rotation = mgl64.QuatLookAtV(c.Position, target, up).Inverse()
}

// Forward returns the world-space viewing direction.
func (c *Camera) Forward() mgl64.Vec3 {
	return c.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// viewMatrix returns the world-to-camera matrix.
func (c *Camera) viewMatrix() mgl64.Mat4 {
	world := mgl64.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z()).Mul4(c.Rotation.Mat4())
	return world.Inv()
}

func (c *Camera) projectionMatrix() mgl64.Mat4 {
	aspect := 1.0
	if c.Viewport.Height > 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	return mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ScreenToRay converts a screen position into a world-space ray starting on
// the near plane. The direction is normalized.
func (c *Camera) ScreenToRay(sx, sy float64) (origin, direction mgl64.Vec3) {
	vp := c.Viewport
	w, h := vp.Width, vp.Height
	if w <= 0 || h <= 0 {
		return c.Position, c.Forward()
	}
	ndcX := 2*(sx-vp.X)/w - 1
	ndcY := 1 - 2*(sy-vp.Y)/h
	inv := c.projectionMatrix().Mul4(c.viewMatrix()).Inv()
	near := mgl64.TransformCoordinate(mgl64.Vec3{ndcX, ndcY, -1}, inv)
	far := mgl64.TransformCoordinate(mgl64.Vec3{ndcX, ndcY, 1}, inv)
	return near, safeNormalize(far.Sub(near), c.Forward())
}

// WorldToScreen projects a world position into screen coordinates. ok is
// false when the point is behind the camera.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (sx, sy float64, ok bool) {
	clip := c.projectionMatrix().Mul4(c.viewMatrix()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 || math.Abs(clip.W()) < geomEpsilon {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	vp := c.Viewport
	return vp.X + (ndcX+1)/2*vp.Width, vp.Y + (1-ndcY)/2*vp.Height, true
}
