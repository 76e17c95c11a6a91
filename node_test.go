package reach

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" {
		t.Errorf("Name = %q, want %q", n.Name, "test")
	}
	if n.Scale() != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1,1,1)", n.Scale())
	}
	if n.Rotation() != mgl64.QuatIdent() {
		t.Errorf("Rotation = %v, want identity", n.Rotation())
	}
	if !n.Enabled {
		t.Error("Enabled should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both = %d", a.ID)
	}
}

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Errorf("children = %v, want [child]", parent.Children())
	}
}

func TestAddChildReparent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")
	a.AddChild(child)
	b.AddChild(child)
	if a.NumChildren() != 0 {
		t.Errorf("old parent NumChildren = %d, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child.Parent should be b")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewNode("p").AddChild(nil) }},
		{"self", func() {
			n := NewNode("n")
			n.AddChild(n)
		}},
		{"cycle", func() {
			a := NewNode("a")
			b := NewNode("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	a := NewNode("a")
	child := NewNode("child")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.RemoveChild(child)
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	child.RemoveFromParent()
	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	child.RemoveFromParent() // no-op
}

func TestIsDescendantOf(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid")
	leaf := NewNode("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	tests := []struct {
		name     string
		n, a     *Node
		expected bool
	}{
		{"leaf of root", leaf, root, true},
		{"leaf of mid", leaf, mid, true},
		{"self", leaf, leaf, false},
		{"root of leaf", root, leaf, false},
		{"nil ancestor", leaf, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.IsDescendantOf(tt.a); got != tt.expected {
				t.Errorf("IsDescendantOf = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestActiveInHierarchy(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.AddChild(child)
	if !child.ActiveInHierarchy() {
		t.Error("child should be active")
	}
	root.Enabled = false
	if child.ActiveInHierarchy() {
		t.Error("child of disabled root should be inactive")
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)
	c := child.AddCollider(NewSphereCollider(mgl64.Vec3{}, 1))

	var order []string
	child.OnDispose(func(n *Node) {
		order = append(order, n.Name)
		if n.Parent != parent {
			t.Error("hook should see the intact hierarchy")
		}
	})
	grandchild.OnDispose(func(n *Node) { order = append(order, n.Name) })

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("child and grandchild should be disposed")
	}
	if parent.NumChildren() != 0 {
		t.Errorf("parent NumChildren = %d, want 0", parent.NumChildren())
	}
	if child.ID != 0 {
		t.Errorf("ID = %d, want 0", child.ID)
	}
	if c.Node() != nil {
		t.Error("collider should be detached")
	}
	if len(order) != 2 || order[0] != "grandchild" || order[1] != "child" {
		t.Errorf("hook order = %v, want [grandchild child]", order)
	}
}

func TestDisposeIdempotent(t *testing.T) {
	n := NewNode("n")
	calls := 0
	n.OnDispose(func(*Node) { calls++ })
	n.Dispose()
	n.Dispose()
	if calls != 1 {
		t.Errorf("hook calls = %d, want 1", calls)
	}
}

func TestDebugDisposedPanics(t *testing.T) {
	globalDebug = true
	defer func() { globalDebug = false }()

	n := NewNode("n")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a disposed node")
		}
	}()
	NewNode("p").AddChild(n)
}

// --- Dirty propagation ---

func TestDirtyPropagationOnAddChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.WorldTransform()
	child.WorldTransform()
	parent.AddChild(child)
	if !child.transformDirty {
		t.Error("child should be dirty after AddChild")
	}
}
