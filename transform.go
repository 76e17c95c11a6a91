package reach

import "github.com/go-gl/mathgl/mgl64"

// computeLocalTransform computes the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Scale -> Rotate -> Translate
func computeLocalTransform(n *Node) mgl64.Mat4 {
	t := mgl64.Translate3D(n.position.X(), n.position.Y(), n.position.Z())
	r := n.rotation.Mat4()
	s := mgl64.Scale3D(n.scale.X(), n.scale.Y(), n.scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldTransform returns the node's local-to-world matrix, recomputing it
// (and any dirty ancestors) on demand.
func (n *Node) WorldTransform() mgl64.Mat4 {
	if !n.transformDirty {
		return n.worldTransform
	}
	local := computeLocalTransform(n)
	if n.Parent != nil {
		n.worldTransform = n.Parent.WorldTransform().Mul4(local)
	} else {
		n.worldTransform = local
	}
	n.transformDirty = false
	return n.worldTransform
}

// --- Transform property accessors ---

// Position returns the node's local position.
func (n *Node) Position() mgl64.Vec3 { return n.position }

// Rotation returns the node's local rotation.
func (n *Node) Rotation() mgl64.Quat { return n.rotation }

// Scale returns the node's local scale.
func (n *Node) Scale() mgl64.Vec3 { return n.scale }

// SetPosition sets the node's local position and marks its subtree dirty.
func (n *Node) SetPosition(p mgl64.Vec3) {
	n.position = p
	markSubtreeDirty(n)
}

// SetRotation sets the node's local rotation and marks its subtree dirty.
func (n *Node) SetRotation(q mgl64.Quat) {
	n.rotation = q.Normalize()
	markSubtreeDirty(n)
}

// SetScale sets the node's local scale and marks its subtree dirty.
func (n *Node) SetScale(s mgl64.Vec3) {
	n.scale = s
	markSubtreeDirty(n)
}

// --- Coordinate conversion ---

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldTransform().Col(3).Vec3()
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
// Returns the input unchanged if the world matrix is singular.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	w := n.WorldTransform()
	if det := w.Det(); det > -1e-12 && det < 1e-12 {
		return p
	}
	return mgl64.TransformCoordinate(p, w.Inv())
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldTransform())
}

// maxAxisScale returns the largest world-space axis scale of the node, used
// to size spheres under non-uniform scaling.
func (n *Node) maxAxisScale() float64 {
	w := n.WorldTransform()
	m := w.Col(0).Vec3().Len()
	if y := w.Col(1).Vec3().Len(); y > m {
		m = y
	}
	if z := w.Col(2).Vec3().Len(); z > m {
		m = z
	}
	return m
}
