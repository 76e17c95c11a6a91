package reach

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Physics is the spatial query capability consumed by target providers.
// Every query returns hits sorted by ascending distance.
type Physics interface {
	Raycast(origin, end mgl64.Vec3) []RaycastHit
	SphereCast(radius float64, origin, end mgl64.Vec3) []RaycastHit
	OverlapSphere(center mgl64.Vec3, radius float64) []RaycastHit
}

// Scene owns the node tree and answers spatial queries against every
// enabled collider in it. Queries are brute force: the scene is meant to
// stand in for an engine's physics world, not to compete with one.
type Scene struct {
	root   *Node
	camera *Camera

	colliderBuf []*Collider
}

// NewScene creates a new scene with a pre-created root node.
func NewScene() *Scene {
	return &Scene{root: NewNode("root")}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene camera, or nil if none was set.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetCamera sets the camera used to build screen rays.
func (s *Scene) SetCamera(c *Camera) {
	s.camera = c
}

// collectColliders walks the tree depth first, appending active colliders to
// buf. Disabled subtrees are skipped.
func collectColliders(n *Node, buf []*Collider) []*Collider {
	if !n.Enabled || n.disposed {
		return buf
	}
	for _, c := range n.colliders {
		if c.Enabled {
			buf = append(buf, c)
		}
	}
	for _, child := range n.children {
		buf = collectColliders(child, buf)
	}
	return buf
}

func (s *Scene) query(fn func(c *Collider) (RaycastHit, bool)) []RaycastHit {
	s.colliderBuf = collectColliders(s.root, s.colliderBuf[:0])
	var hits []RaycastHit
	for _, c := range s.colliderBuf {
		if hit, ok := fn(c); ok {
			hits = append(hits, hit)
		}
	}
	slices.SortStableFunc(hits, func(a, b RaycastHit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return hits
}

// Raycast returns every collider crossed by the segment origin->end.
func (s *Scene) Raycast(origin, end mgl64.Vec3) []RaycastHit {
	return s.query(func(c *Collider) (RaycastHit, bool) {
		return c.raycast(origin, end)
	})
}

// SphereCast returns every collider touched by a sphere of the given radius
// swept along origin->end.
func (s *Scene) SphereCast(radius float64, origin, end mgl64.Vec3) []RaycastHit {
	return s.query(func(c *Collider) (RaycastHit, bool) {
		return c.sphereCast(radius, origin, end)
	})
}

// OverlapSphere returns every collider within radius of center.
func (s *Scene) OverlapSphere(center mgl64.Vec3, radius float64) []RaycastHit {
	return s.query(func(c *Collider) (RaycastHit, bool) {
		return c.overlapSphere(center, radius)
	})
}
