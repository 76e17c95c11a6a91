package reach

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const geomEpsilon = 1e-9

// ColliderShape selects the geometry of a Collider.
type ColliderShape uint8

const (
	ShapeSphere ColliderShape = iota // sphere of Radius around Center
	ShapeBox                         // box of HalfExtents around Center
)

// Collider is a hit-testable volume in a node's local space. Non-uniform
// node scale is honoured exactly for ray queries and approximately for
// sphere queries (spheres use the largest axis scale).
type Collider struct {
	Shape       ColliderShape
	Center      mgl64.Vec3
	Radius      float64
	HalfExtents mgl64.Vec3
	Enabled     bool

	node *Node
}

// NewSphereCollider returns an enabled sphere collider.
func NewSphereCollider(center mgl64.Vec3, radius float64) *Collider {
	return &Collider{Shape: ShapeSphere, Center: center, Radius: radius, Enabled: true}
}

// NewBoxCollider returns an enabled box collider.
func NewBoxCollider(center, halfExtents mgl64.Vec3) *Collider {
	return &Collider{Shape: ShapeBox, Center: center, HalfExtents: halfExtents, Enabled: true}
}

// Node returns the node that owns the collider, or nil once detached.
func (c *Collider) Node() *Node {
	return c.node
}

// --- Node collider management ---

// AddCollider attaches c to the node and returns it.
// Panics if c already belongs to another node.
func (n *Node) AddCollider(c *Collider) *Collider {
	if c.node != nil && c.node != n {
		panic("reach: collider already attached to another node")
	}
	if c.node == n {
		return c
	}
	c.node = n
	n.colliders = append(n.colliders, c)
	return c
}

// RemoveCollider detaches c from the node. No-op if c is not attached here.
func (n *Node) RemoveCollider(c *Collider) {
	for i, existing := range n.colliders {
		if existing == c {
			copy(n.colliders[i:], n.colliders[i+1:])
			n.colliders[len(n.colliders)-1] = nil
			n.colliders = n.colliders[:len(n.colliders)-1]
			c.node = nil
			return
		}
	}
}

// Colliders returns the colliders attached directly to this node.
// The returned slice MUST NOT be mutated.
func (n *Node) Colliders() []*Collider {
	return n.colliders
}

// CreateDefaultCollider attaches a unit box collider centred on the node.
func (n *Node) CreateDefaultCollider() *Collider {
	return n.AddCollider(NewBoxCollider(mgl64.Vec3{}, mgl64.Vec3{0.5, 0.5, 0.5}))
}

// --- Queries ---

// raycast intersects the world segment a->b with the collider.
func (c *Collider) raycast(a, b mgl64.Vec3) (RaycastHit, bool) {
	la := c.node.WorldToLocal(a)
	lb := c.node.WorldToLocal(b)

	var s float64
	var localNormal mgl64.Vec3
	var ok bool
	switch c.Shape {
	case ShapeSphere:
		s, ok = segmentSphere(la, lb, c.Center, c.Radius)
		if ok {
			p := lerp(la, lb, s)
			localNormal = safeNormalize(p.Sub(c.Center), la.Sub(lb))
		}
	case ShapeBox:
		s, localNormal, ok = segmentBox(la, lb, c.Center.Sub(c.HalfExtents), c.Center.Add(c.HalfExtents))
	}
	if !ok {
		return RaycastHit{}, false
	}
	normalMat := c.node.WorldTransform().Inv().Transpose()
	return RaycastHit{
		Collider: c,
		Position: lerp(a, b, s),
		Normal:   safeNormalize(mgl64.TransformNormal(localNormal, normalMat), a.Sub(b)),
		Distance: s * b.Sub(a).Len(),
		Fraction: s,
	}, true
}

// sphereCast sweeps a sphere of radius r along the world segment a->b.
// The reported Position is the contact point on the collider surface;
// Distance is the travel of the sphere centre.
func (c *Collider) sphereCast(r float64, a, b mgl64.Vec3) (RaycastHit, bool) {
	switch c.Shape {
	case ShapeSphere:
		wc := c.node.LocalToWorld(c.Center)
		wr := c.Radius * c.node.maxAxisScale()
		s, ok := segmentSphere(a, b, wc, wr+r)
		if !ok {
			return RaycastHit{}, false
		}
		centre := lerp(a, b, s)
		n := safeNormalize(centre.Sub(wc), a.Sub(b))
		return RaycastHit{
			Collider: c,
			Position: wc.Add(n.Mul(wr)),
			Normal:   n,
			Distance: s * b.Sub(a).Len(),
			Fraction: s,
		}, true
	case ShapeBox:
		w := c.node.WorldTransform()
		inflate := mgl64.Vec3{
			r / nonZero(w.Col(0).Vec3().Len()),
			r / nonZero(w.Col(1).Vec3().Len()),
			r / nonZero(w.Col(2).Vec3().Len()),
		}
		lo := c.Center.Sub(c.HalfExtents)
		hi := c.Center.Add(c.HalfExtents)
		la := c.node.WorldToLocal(a)
		lb := c.node.WorldToLocal(b)
		s, localNormal, ok := segmentBox(la, lb, lo.Sub(inflate), hi.Add(inflate))
		if !ok {
			return RaycastHit{}, false
		}
		contact := clampVec(lerp(la, lb, s), lo, hi)
		normalMat := w.Inv().Transpose()
		return RaycastHit{
			Collider: c,
			Position: c.node.LocalToWorld(contact),
			Normal:   safeNormalize(mgl64.TransformNormal(localNormal, normalMat), a.Sub(b)),
			Distance: s * b.Sub(a).Len(),
			Fraction: s,
		}, true
	}
	return RaycastHit{}, false
}

// overlapSphere tests a world-space sphere against the collider. Distance is
// measured from center to the closest point of the collider (0 when inside).
func (c *Collider) overlapSphere(center mgl64.Vec3, r float64) (RaycastHit, bool) {
	var closest mgl64.Vec3
	switch c.Shape {
	case ShapeSphere:
		wc := c.node.LocalToWorld(c.Center)
		wr := c.Radius * c.node.maxAxisScale()
		off := center.Sub(wc)
		if off.Len() <= wr {
			closest = center
		} else {
			closest = wc.Add(off.Normalize().Mul(wr))
		}
	case ShapeBox:
		lc := c.node.WorldToLocal(center)
		closest = c.node.LocalToWorld(clampVec(lc, c.Center.Sub(c.HalfExtents), c.Center.Add(c.HalfExtents)))
	default:
		return RaycastHit{}, false
	}
	d := center.Sub(closest).Len()
	if d > r {
		return RaycastHit{}, false
	}
	return RaycastHit{
		Collider: c,
		Position: closest,
		Normal:   safeNormalize(center.Sub(closest), mgl64.Vec3{0, 0, 1}),
		Distance: d,
	}, true
}

// --- Geometry helpers ---

// segmentSphere returns the first fraction s in [0, 1] at which a->b touches
// the sphere. A segment starting inside the sphere hits at s=0.
func segmentSphere(a, b, c mgl64.Vec3, r float64) (float64, bool) {
	d := b.Sub(a)
	f := a.Sub(c)
	cc := f.Dot(f) - r*r
	if cc <= 0 {
		return 0, true
	}
	aa := d.Dot(d)
	if aa < geomEpsilon {
		return 0, false
	}
	bb := 2 * f.Dot(d)
	disc := bb*bb - 4*aa*cc
	if disc < 0 {
		return 0, false
	}
	s := (-bb - math.Sqrt(disc)) / (2 * aa)
	if s < 0 || s > 1 {
		return 0, false
	}
	return s, true
}

// segmentBox intersects a->b with an axis-aligned box using the slab method.
// Returns the entry fraction and the entry face normal. A segment starting
// inside the box hits at s=0 with a normal facing against the segment.
func segmentBox(a, b, lo, hi mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	d := b.Sub(a)
	tmin, tmax := 0.0, 1.0
	var normal mgl64.Vec3
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < geomEpsilon {
			if a[i] < lo[i] || a[i] > hi[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (lo[i] - a[i]) * inv
		t2 := (hi[i] - a[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			normal = mgl64.Vec3{}
			normal[i] = -math.Copysign(1, d[i])
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if normal == (mgl64.Vec3{}) {
		normal = safeNormalize(d.Mul(-1), mgl64.Vec3{0, 0, 1})
	}
	return tmin, normal, true
}

func lerp(a, b mgl64.Vec3, s float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(s))
}

func clampVec(v, lo, hi mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(v[0], lo[0], hi[0]),
		mgl64.Clamp(v[1], lo[1], hi[1]),
		mgl64.Clamp(v[2], lo[2], hi[2]),
	}
}

// safeNormalize normalizes v, falling back to fallback (normalized) when v is
// degenerate.
func safeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if v.Len() < geomEpsilon {
		if fallback.Len() < geomEpsilon {
			return mgl64.Vec3{0, 0, 1}
		}
		return fallback.Normalize()
	}
	return v.Normalize()
}

func nonZero(v float64) float64 {
	if v < geomEpsilon {
		return geomEpsilon
	}
	return v
}
