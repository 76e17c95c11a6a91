package reach

import "github.com/go-gl/mathgl/mgl64"

// Propagation is the state shared by every event record of one dispatch.
type Propagation struct {
	stopped bool
}

// Stop halts the dispatch once the current receiver's callbacks return.
// Like DOM stopPropagation, other callbacks on the same receiver still run.
func (p *Propagation) Stop() { p.stopped = true }

// Stopped reports whether Stop was called.
func (p *Propagation) Stopped() bool { return p.stopped }

// DispatchRequest describes one event to propagate.
type DispatchRequest struct {
	Type       EventType
	Target     *Interactable
	Interactor Interactor
	// Origin, when set, bounds the ancestor chain: ancestors from Origin
	// upward do not receive the event.
	Origin     *Interactable
	DragVector mgl64.Vec3
}

// nodeLookup resolves the interactable attached to a node, if any.
type nodeLookup interface {
	InteractableForNode(n *Node) *Interactable
}

// EventDispatcher propagates events over the interactable ancestor chain in
// three phases: trickle-down (root-most ancestor first), target, and
// bubble-up (immediate parent first).
type EventDispatcher struct {
	lookup nodeLookup

	chainBuf []*Interactable
}

// NewEventDispatcher returns a dispatcher resolving ancestors through lookup.
func NewEventDispatcher(lookup nodeLookup) *EventDispatcher {
	return &EventDispatcher{lookup: lookup}
}

// Ancestors returns the interactables above target, immediate parent first,
// stopping before origin.
func (d *EventDispatcher) Ancestors(target, origin *Interactable) []*Interactable {
	return d.ancestors(target, origin, nil)
}

func (d *EventDispatcher) ancestors(target, origin *Interactable, buf []*Interactable) []*Interactable {
	if target == nil || target.node == nil {
		return buf
	}
	for n := target.node.Parent; n != nil; n = n.Parent {
		if origin != nil && n == origin.node {
			break
		}
		if it := d.lookup.InteractableForNode(n); it != nil {
			buf = append(buf, it)
		}
	}
	return buf
}

// Dispatch delivers req through all three phases and returns the shared
// propagation state.
func (d *EventDispatcher) Dispatch(req DispatchRequest) *Propagation {
	prop := &Propagation{}
	if req.Target == nil {
		return prop
	}
	// The chain buffer is reused unless a callback re-enters Dispatch.
	chain := d.ancestors(req.Target, req.Origin, d.chainBuf[:0])
	d.chainBuf = nil
	defer func() { d.chainBuf = chain[:0] }()

	deliver := func(receiver *Interactable, phase PropagationPhase) bool {
		if !receiver.registered {
			return true
		}
		receiver.handlers.invoke(InteractableEvent{
			Type:         req.Type,
			Phase:        phase,
			Interactable: receiver,
			Target:       req.Target,
			Interactor:   req.Interactor,
			DragVector:   req.DragVector,
			propagation:  prop,
		})
		return !prop.stopped
	}

	for i := len(chain) - 1; i >= 0; i-- {
		if !deliver(chain[i], PhaseTrickleDown) {
			return prop
		}
	}
	if !deliver(req.Target, PhaseTarget) {
		return prop
	}
	for _, ancestor := range chain {
		if !deliver(ancestor, PhaseBubbleUp) {
			return prop
		}
	}
	return prop
}
