package reach

import "github.com/go-gl/mathgl/mgl64"

// --- ID counter ---

// nodeIDCounter is a plain counter; reach runs on one goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a scene graph element: a transform in a hierarchy that can own
// colliders. Interactables are attached to nodes; the node is the key the
// InteractionManager uses to find them.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	position mgl64.Vec3
	rotation mgl64.Quat
	scale    mgl64.Vec3

	// Computed lazily from the parent chain.
	worldTransform mgl64.Mat4
	transformDirty bool

	// Enabled=false hides the node and its subtree from spatial queries.
	Enabled bool

	// Metadata
	UserData any
	EntityID uint32

	colliders []*Collider

	disposed     bool
	disposeHooks []func(*Node)
}

// NewNode creates an enabled node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		rotation:       mgl64.QuatIdent(),
		scale:          mgl64.Vec3{1, 1, 1},
		worldTransform: mgl64.Ident4(),
		transformDirty: true,
		Enabled:        true,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("reach: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("reach: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("reach: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// IsDescendantOf reports whether ancestor is a strict ancestor of n.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	if ancestor == nil || ancestor == n {
		return false
	}
	return isAncestor(ancestor, n)
}

// ActiveInHierarchy reports whether n and all of its ancestors are enabled.
func (n *Node) ActiveInHierarchy() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Enabled || p.disposed {
			return false
		}
	}
	return true
}

// --- Disposal ---

// OnDispose registers fn to run when the node is disposed, before its
// subtree is torn down.
func (n *Node) OnDispose(fn func(*Node)) {
	n.disposeHooks = append(n.disposeHooks, fn)
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	// Hooks observe the intact hierarchy; detach afterwards.
	parent := n.Parent
	n.dispose()
	if parent != nil {
		parent.removeChildByPtr(n)
	}
}

func (n *Node) dispose() {
	// Children first so nested interactables deregister before their parents.
	for _, child := range n.children {
		child.dispose()
		child.Parent = nil
	}
	for _, fn := range n.disposeHooks {
		fn(n)
	}
	n.disposed = true
	n.ID = 0
	n.children = nil
	n.Parent = nil
	for _, c := range n.colliders {
		c.node = nil
	}
	n.colliders = nil
	n.disposeHooks = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
