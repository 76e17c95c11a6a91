package reach

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-6)
}

func TestWorldPositionNested(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	parent.SetPosition(mgl64.Vec3{10, 0, 0})
	parent.SetScale(mgl64.Vec3{2, 2, 2})
	child.SetPosition(mgl64.Vec3{1, 1, 0})

	if got, want := child.WorldPosition(), (mgl64.Vec3{12, 2, 0}); !vecNear(got, want) {
		t.Errorf("WorldPosition = %v, want %v", got, want)
	}
}

func TestRotationComposition(t *testing.T) {
	n := NewNode("n")
	n.SetRotation(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}))
	n.SetPosition(mgl64.Vec3{0, 0, 5})
	if got, want := n.LocalToWorld(mgl64.Vec3{1, 0, 0}), (mgl64.Vec3{0, 1, 5}); !vecNear(got, want) {
		t.Errorf("LocalToWorld = %v, want %v", got, want)
	}
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	parent.SetPosition(mgl64.Vec3{3, -2, 1})
	parent.SetRotation(mgl64.QuatRotate(0.7, mgl64.Vec3{0, 1, 0}))
	child.SetScale(mgl64.Vec3{2, 3, 4})

	p := mgl64.Vec3{0.5, 0.25, -1}
	if got := child.WorldToLocal(child.LocalToWorld(p)); !vecNear(got, p) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
}

func TestWorldToLocalSingular(t *testing.T) {
	n := NewNode("flat")
	n.SetScale(mgl64.Vec3{1, 0, 1})
	p := mgl64.Vec3{1, 2, 3}
	if got := n.WorldToLocal(p); got != p {
		t.Errorf("WorldToLocal(singular) = %v, want input unchanged", got)
	}
}

func TestParentMoveDirtiesChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	_ = child.WorldTransform()
	parent.SetPosition(mgl64.Vec3{0, 5, 0})
	if got := child.WorldPosition(); math.Abs(got.Y()-5) > epsilon {
		t.Errorf("child world Y = %v, want 5", got.Y())
	}
}

func TestMaxAxisScale(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	parent.SetScale(mgl64.Vec3{2, 1, 1})
	child.SetScale(mgl64.Vec3{1, 3, 1})
	if got := child.maxAxisScale(); math.Abs(got-3) > epsilon {
		t.Errorf("maxAxisScale = %v, want 3", got)
	}
}
