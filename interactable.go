package reach

import "github.com/go-gl/mathgl/mgl64"

// InteractableEvent is the record delivered to interactable callbacks.
type InteractableEvent struct {
	Type  EventType
	Phase PropagationPhase
	// Interactable is the interactable currently receiving the callback.
	Interactable *Interactable
	// Target is the interactable the event was dispatched to.
	Target     *Interactable
	Interactor Interactor
	// DragVector is the frame delta for drag events.
	DragVector mgl64.Vec3

	propagation *Propagation
}

// StopPropagation halts the remaining receivers and phases of this dispatch.
func (e InteractableEvent) StopPropagation() {
	if e.propagation != nil {
		e.propagation.Stop()
	}
}

// PropagationStopped reports whether a callback already stopped this dispatch.
func (e InteractableEvent) PropagationStopped() bool {
	return e.propagation != nil && e.propagation.Stopped()
}

// Interactable is something interactors can target. It is attached to a
// node and registered with an InteractionManager for its whole lifetime.
type Interactable struct {
	id      InteractableID
	node    *Node
	manager *InteractionManager

	colliders []*Collider

	// TargetingMode selects which strategies may target this interactable.
	TargetingMode TargetingMode
	// IsScrollable marks containers that convert child drags into their own
	// gesture (see InteractionManager.CaptureTrigger).
	IsScrollable bool
	// EnableInstantDrag makes drags start without crossing the threshold.
	EnableInstantDrag bool
	// AllowMultipleInteractors=false lets only one input type hover or
	// trigger at a time; others are suppressed until it releases.
	AllowMultipleInteractors bool

	enabled    bool
	registered bool

	hoverCounts   map[InteractorInputType]int
	triggerCounts map[InteractorInputType]int

	handlers handlerRegistry
}

// NewInteractable attaches an interactable to node and registers it with m.
// Colliders are discovered in node's subtree (stopping at nested
// interactables); a default collider is created when none exist.
func NewInteractable(m *InteractionManager, node *Node) (*Interactable, error) {
	if node == nil {
		return nil, ErrNilNode
	}
	it := &Interactable{
		node:                     node,
		manager:                  m,
		TargetingMode:            TargetingAll,
		AllowMultipleInteractors: true,
		enabled:                  true,
		hoverCounts:              make(map[InteractorInputType]int),
		triggerCounts:            make(map[InteractorInputType]int),
	}
	if err := m.registerInteractable(it); err != nil {
		return nil, err
	}
	node.OnDispose(func(*Node) { it.Destroy() })
	return it, nil
}

// ID returns the registry handle.
func (i *Interactable) ID() InteractableID { return i.id }

// Node returns the owning node.
func (i *Interactable) Node() *Node { return i.node }

// Name returns the owning node's name.
func (i *Interactable) Name() string {
	if i.node == nil {
		return ""
	}
	return i.node.Name
}

// Colliders returns the colliders used for hit testing, in discovery order.
// The returned slice MUST NOT be mutated.
func (i *Interactable) Colliders() []*Collider { return i.colliders }

// AddCollider attaches c to the interactable's node and maps it to this
// interactable.
func (i *Interactable) AddCollider(c *Collider) *Collider {
	i.node.AddCollider(c)
	if i.registered {
		i.manager.claimCollider(i, c)
	}
	return c
}

// Enabled reports whether the interactable can be targeted.
func (i *Interactable) Enabled() bool { return i.enabled }

// SetEnabled enables or disables targeting. Interactors that currently
// target it lose it on their next update.
func (i *Interactable) SetEnabled(enabled bool) { i.enabled = enabled }

// Registered reports whether the interactable is still in the manager's registry.
func (i *Interactable) Registered() bool { return i.registered }

// HoveringInteractor returns the input types currently hovering.
func (i *Interactable) HoveringInteractor() InteractorInputType {
	return maskOf(i.hoverCounts)
}

// TriggeringInteractor returns the input types currently triggering.
func (i *Interactable) TriggeringInteractor() InteractorInputType {
	return maskOf(i.triggerCounts)
}

// Destroy deregisters the interactable. Interactors engaged with it receive
// their terminal events first. Safe to call more than once.
func (i *Interactable) Destroy() {
	if !i.registered {
		return
	}
	i.manager.deregisterInteractable(i)
	i.handlers.clear()
}

func (i *Interactable) targetable() bool {
	return i.registered && i.enabled && i.node != nil && i.node.ActiveInHierarchy()
}

func (i *Interactable) addHover(t InteractorInputType)      { i.hoverCounts[t]++ }
func (i *Interactable) removeHover(t InteractorInputType)   { decrement(i.hoverCounts, t) }
func (i *Interactable) addTrigger(t InteractorInputType)    { i.triggerCounts[t]++ }
func (i *Interactable) removeTrigger(t InteractorInputType) { decrement(i.triggerCounts, t) }

// blocks reports whether an interactor of type t is locked out by another
// input type already hovering or triggering.
func (i *Interactable) blocks(t InteractorInputType) bool {
	if i.AllowMultipleInteractors {
		return false
	}
	return (i.HoveringInteractor()|i.TriggeringInteractor())&^t != 0
}

func maskOf(counts map[InteractorInputType]int) InteractorInputType {
	var m InteractorInputType
	for t, n := range counts {
		if n > 0 {
			m |= t
		}
	}
	return m
}

func decrement(counts map[InteractorInputType]int, t InteractorInputType) {
	if counts[t] <= 1 {
		delete(counts, t)
		return
	}
	counts[t]--
}

// --- Event surface ---

func (i *Interactable) on(event EventType, fn func(InteractableEvent)) CallbackHandle {
	return CallbackHandle{id: i.handlers.add(event, fn), owner: i, event: event}
}

func (i *Interactable) removeHandler(event EventType, id uint32) {
	i.handlers.remove(event, id)
}

// On registers fn for any event type.
func (i *Interactable) On(event EventType, fn func(InteractableEvent)) CallbackHandle {
	return i.on(event, fn)
}

// OnHoverEnter registers a callback for hover enter events.
func (i *Interactable) OnHoverEnter(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventHoverEnter, fn)
}

// OnHoverUpdate registers a callback for hover update events.
func (i *Interactable) OnHoverUpdate(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventHoverUpdate, fn)
}

// OnHoverExit registers a callback for hover exit events.
func (i *Interactable) OnHoverExit(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventHoverExit, fn)
}

// OnTriggerStart registers a callback for trigger start events.
func (i *Interactable) OnTriggerStart(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventTriggerStart, fn)
}

// OnTriggerUpdate registers a callback for trigger update events.
func (i *Interactable) OnTriggerUpdate(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventTriggerUpdate, fn)
}

// OnTriggerEnd registers a callback for trigger end events.
func (i *Interactable) OnTriggerEnd(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventTriggerEnd, fn)
}

// OnTriggerCanceled registers a callback for trigger cancel events.
// Like TriggerEnd, no further updates follow for that trigger.
func (i *Interactable) OnTriggerCanceled(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventTriggerCanceled, fn)
}

// OnDragStart registers a callback for drag start events.
func (i *Interactable) OnDragStart(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventDragStart, fn)
}

// OnDragUpdate registers a callback for drag update events.
func (i *Interactable) OnDragUpdate(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventDragUpdate, fn)
}

// OnDragEnd registers a callback for drag end events.
func (i *Interactable) OnDragEnd(fn func(InteractableEvent)) CallbackHandle {
	return i.on(EventDragEnd, fn)
}
