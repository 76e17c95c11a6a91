package reach

import (
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// EntityStore is the interface for optional ECS integration. When set on an
// InteractionManager, every event delivered to a target whose node carries an
// EntityID is forwarded to the store.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type           EventType
	EntityID       uint32
	InteractableID InteractableID
	InputType      InteractorInputType
	Trigger        InteractorTriggerType
	// Position is the world-space hit position, zero when the interactor
	// has no hit on the target this frame.
	Position mgl64.Vec3
	// DragVector is valid for drag events.
	DragVector mgl64.Vec3
	Frame      uint64
}

// ChangeHandler is notified when an interactor's current interactable
// changes. prev and cur may be nil.
type ChangeHandler func(ir Interactor, prev, cur *Interactable)

type changeHandler struct {
	id uint32
	fn ChangeHandler
}

// InteractionManager owns the interactor and interactable registries and
// runs the per-frame targeting and event loop.
type InteractionManager struct {
	physics Physics
	cfg     Config
	logger  *log.Logger
	debug   bool

	interactors   []Interactor
	interactables map[InteractableID]*Interactable
	byNode        map[*Node]*Interactable
	colliders     map[*Collider]InteractableID
	nextID        InteractableID

	mobileOverride bool

	dispatcher *EventDispatcher
	store      EntityStore

	changeHandlers []changeHandler
	nextHandlerID  uint32

	frame      uint64
	eventCount int
	updateBuf  []Interactor
}

// NewInteractionManager creates a manager that hit-tests through physics.
func NewInteractionManager(physics Physics, cfg Config) (*InteractionManager, error) {
	if physics == nil {
		return nil, configError("physics", "must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &InteractionManager{
		physics:       physics,
		cfg:           cfg,
		logger:        log.New(os.Stderr, "[reach] ", 0),
		interactables: make(map[InteractableID]*Interactable),
		byNode:        make(map[*Node]*Interactable),
		colliders:     make(map[*Collider]InteractableID),
	}
	m.dispatcher = NewEventDispatcher(m)
	m.SetDebugMode(cfg.Debug)
	return m, nil
}

// Config returns the configuration the manager was created with.
func (m *InteractionManager) Config() Config { return m.cfg }

// SetLogger replaces the logger used for warnings and debug output. A nil
// logger restores the default stderr logger.
func (m *InteractionManager) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(os.Stderr, "[reach] ", 0)
	}
	m.logger = l
	if m.debug {
		debugLogger = l
	}
}

// Logger returns the manager's logger.
func (m *InteractionManager) Logger() *log.Logger { return m.logger }

// SetDebugMode enables per-frame debug logging and scene-graph checks.
func (m *InteractionManager) SetDebugMode(enabled bool) {
	m.debug = enabled
	globalDebug = enabled
	debugLogger = nil
	if enabled {
		debugLogger = m.logger
	}
}

// SetEntityStore sets the optional ECS bridge. Pass nil to disable.
func (m *InteractionManager) SetEntityStore(store EntityStore) {
	m.store = store
}

// Dispatcher returns the event dispatcher used by the manager.
func (m *InteractionManager) Dispatcher() *EventDispatcher { return m.dispatcher }

// Frame returns the number of completed updates.
func (m *InteractionManager) Frame() uint64 { return m.frame }

// --- Registries ---

// Interactors returns the registered interactors in registration order.
// The returned slice MUST NOT be mutated.
func (m *InteractionManager) Interactors() []Interactor { return m.interactors }

// InteractorsByType returns the registered interactors whose input type
// intersects t.
func (m *InteractionManager) InteractorsByType(t InteractorInputType) []Interactor {
	var out []Interactor
	for _, ir := range m.interactors {
		if ir.InputType()&t != 0 {
			out = append(out, ir)
		}
	}
	return out
}

// Interactable returns the registered interactable for id, or nil.
func (m *InteractionManager) Interactable(id InteractableID) *Interactable {
	return m.interactableByID(id)
}

// Interactables returns the number of registered interactables.
func (m *InteractionManager) Interactables() int { return len(m.interactables) }

func (m *InteractionManager) interactableByID(id InteractableID) *Interactable {
	if id == 0 {
		return nil
	}
	return m.interactables[id]
}

// InteractableForCollider returns the interactable that owns c, or nil.
func (m *InteractionManager) InteractableForCollider(c *Collider) *Interactable {
	if c == nil {
		return nil
	}
	return m.interactableByID(m.colliders[c])
}

// InteractableForNode returns the interactable attached to n, or nil.
func (m *InteractionManager) InteractableForNode(n *Node) *Interactable {
	if n == nil {
		return nil
	}
	return m.byNode[n]
}

func (m *InteractionManager) registerInteractable(it *Interactable) error {
	if _, dup := m.byNode[it.node]; dup {
		return fmt.Errorf("register %q: %w", it.node.Name, ErrDuplicateNode)
	}
	m.nextID++
	it.id = m.nextID
	it.registered = true
	m.interactables[it.id] = it
	m.byNode[it.node] = it

	found := m.discoverColliders(it, it.node, false)
	if !found {
		m.claimCollider(it, it.node.CreateDefaultCollider())
	}
	return nil
}

// discoverColliders claims every collider in n's subtree, stopping at nested
// interactables. It reports whether any collider was found.
func (m *InteractionManager) discoverColliders(it *Interactable, n *Node, found bool) bool {
	for _, c := range n.Colliders() {
		m.claimCollider(it, c)
		found = true
	}
	for _, child := range n.children {
		if _, nested := m.byNode[child]; nested {
			continue
		}
		found = m.discoverColliders(it, child, found)
	}
	return found
}

func (m *InteractionManager) claimCollider(it *Interactable, c *Collider) {
	if owner, ok := m.colliders[c]; ok && owner != it.id {
		if prev := m.interactables[owner]; prev != nil {
			prev.colliders = slices.DeleteFunc(prev.colliders, func(pc *Collider) bool { return pc == c })
			// A parent registered first naturally holds its future children's
			// colliders; only unrelated owners are suspicious.
			if !it.node.IsDescendantOf(prev.node) {
				m.logger.Printf("warning: collider on %q already registered to interactable %q; reassigning to %q",
					nodeName(c.node), prev.Name(), it.Name())
			}
		}
	}
	m.colliders[c] = it.id
	if !slices.Contains(it.colliders, c) {
		it.colliders = append(it.colliders, c)
	}
}

func (m *InteractionManager) deregisterInteractable(it *Interactable) {
	for _, ir := range slices.Clone(m.interactors) {
		b := ir.base()
		st := &b.dispatch
		if st.triggerTarget == it.id {
			m.endTrigger(ir, EventTriggerCanceled, nil)
		}
		if st.hovered == it.id {
			m.exitHover(ir)
		}
		if st.pending == it.id {
			st.pending = 0
		}
		b.forgetID(it.id)
		ir.forget(it)
	}
	for _, c := range it.colliders {
		if m.colliders[c] == it.id {
			delete(m.colliders, c)
		}
	}
	delete(m.byNode, it.node)
	delete(m.interactables, it.id)
	it.registered = false
	it.colliders = nil
	clear(it.hoverCounts)
	clear(it.triggerCounts)
}

func (m *InteractionManager) registerInteractor(ir Interactor) {
	b := ir.base()
	b.registered = true
	if m.mobileOverride && overridable(b.inputType) {
		b.overridden = true
	}
	m.interactors = append(m.interactors, ir)
}

func (m *InteractionManager) deregisterInteractor(b *interactorBase) {
	idx := slices.IndexFunc(m.interactors, func(ir Interactor) bool { return ir.base() == b })
	if idx < 0 {
		return
	}
	ir := m.interactors[idx]
	m.endTrigger(ir, EventTriggerCanceled, nil)
	m.exitHover(ir)
	b.dispatch = dispatchState{}
	m.interactors = slices.Delete(m.interactors, idx, idx+1)
	b.registered = false
	b.beginFrame()
	b.clearFrame()
	b.active = nil
}

// OnCurrentInteractableChanged registers fn to run whenever an interactor's
// current interactable changes, after all interactors have updated and
// before any event is dispatched.
func (m *InteractionManager) OnCurrentInteractableChanged(fn ChangeHandler) CallbackHandle {
	m.nextHandlerID++
	m.changeHandlers = append(m.changeHandlers, changeHandler{id: m.nextHandlerID, fn: fn})
	return CallbackHandle{id: m.nextHandlerID, owner: m}
}

func (m *InteractionManager) removeHandler(_ EventType, id uint32) {
	m.changeHandlers = slices.DeleteFunc(m.changeHandlers, func(h changeHandler) bool { return h.id == id })
}

// Close destroys every interactor, emitting terminal events for interactions
// in flight, and empties the registries.
func (m *InteractionManager) Close() {
	for len(m.interactors) > 0 {
		m.interactors[len(m.interactors)-1].Destroy()
	}
	for _, it := range m.interactables {
		it.Destroy()
	}
	m.changeHandlers = nil
}

// --- Frame loop ---

// Update runs one frame: read pose sources, arbitrate devices, update every
// interactor, then dispatch every interactor's events.
func (m *InteractionManager) Update() {
	m.frame++
	m.eventCount = 0
	ins := append(m.updateBuf[:0], m.interactors...)
	m.updateBuf = nil
	defer func() { m.updateBuf = ins[:0] }()

	for _, ir := range ins {
		ir.poll()
	}
	m.arbitrateDevices(ins)

	for _, ir := range ins {
		if !ir.base().registered {
			continue
		}
		ir.UpdateState()
	}
	for _, ir := range ins {
		b := ir.base()
		if b.registered && b.current != b.previous {
			m.notifyChanged(ir)
		}
	}
	for _, ir := range ins {
		if !ir.base().registered {
			continue
		}
		m.processEvents(ir)
	}

	if m.debug {
		m.debugLogFrame()
	}
}

func overridable(t InteractorInputType) bool {
	return t&(InputBothHands|InputMouse) != 0
}

// arbitrateDevices disables hand and mouse interactors while any mobile
// interactor is active. The flags are only written when the state changes.
func (m *InteractionManager) arbitrateDevices(ins []Interactor) {
	mobile := false
	for _, ir := range ins {
		if ir.InputType() == InputMobile && ir.IsActive() {
			mobile = true
			break
		}
	}
	if mobile == m.mobileOverride {
		return
	}
	m.mobileOverride = mobile
	for _, ir := range ins {
		if b := ir.base(); overridable(b.inputType) {
			b.overridden = mobile
		}
	}
	if m.debug {
		m.logger.Printf("mobile override %v", mobile)
	}
}

func (m *InteractionManager) notifyChanged(ir Interactor) {
	if len(m.changeHandlers) == 0 {
		return
	}
	prev, cur := ir.PreviousInteractable(), ir.CurrentInteractable()
	for _, h := range slices.Clone(m.changeHandlers) {
		h.fn(ir, prev, cur)
	}
}

// processEvents turns one interactor's frame transition into events.
func (m *InteractionManager) processEvents(ir Interactor) {
	b := ir.base()
	st := &b.dispatch

	if !ir.IsActive() {
		// Forced cancellation: every engaged interactable gets its
		// terminal events, cancel before exit.
		m.endTrigger(ir, EventTriggerCanceled, nil)
		m.exitHover(ir)
		st.pending = 0
		return
	}

	cur := b.CurrentInteractable()

	// Hover.
	if st.hovered != 0 && st.hovered != b.current {
		m.exitHover(ir)
	}
	if cur != nil {
		if st.hovered == cur.id {
			m.send(EventHoverUpdate, cur, ir, nil, mgl64.Vec3{})
		} else {
			m.tryHoverEnter(ir, cur)
		}
	}

	// Trigger.
	prevSel := b.previousTrigger.Selecting()
	curSel := b.currentTrigger.Selecting()
	switch {
	case curSel && !prevSel:
		st.pending = 0
		if cur != nil {
			m.tryTriggerStart(ir, cur)
		}
	case curSel && prevSel:
		switch {
		case st.triggerTarget != 0 && st.triggerTarget == b.current:
			m.send(EventTriggerUpdate, m.interactableByID(st.triggerTarget), ir, nil, mgl64.Vec3{})
			m.dragEvents(ir)
		case st.triggerTarget != 0:
			m.endTrigger(ir, EventTriggerCanceled, nil)
		case st.pending != 0 && st.pending == b.current:
			m.tryTriggerStart(ir, cur)
		}
	case prevSel && !curSel:
		m.endTrigger(ir, EventTriggerEnd, nil)
		st.pending = 0
	}
}

func (m *InteractionManager) tryHoverEnter(ir Interactor, it *Interactable) {
	b := ir.base()
	if !it.registered || it.blocks(b.inputType) {
		return
	}
	b.dispatch.hovered = it.id
	it.addHover(b.inputType)
	m.send(EventHoverEnter, it, ir, nil, mgl64.Vec3{})
}

func (m *InteractionManager) exitHover(ir Interactor) {
	b := ir.base()
	it := m.interactableByID(b.dispatch.hovered)
	b.dispatch.hovered = 0
	if it == nil {
		return
	}
	it.removeHover(b.inputType)
	m.send(EventHoverExit, it, ir, nil, mgl64.Vec3{})
}

func (m *InteractionManager) tryTriggerStart(ir Interactor, it *Interactable) {
	b := ir.base()
	if !it.registered {
		// Destroyed by a callback earlier this frame.
		return
	}
	if it.blocks(b.inputType) {
		b.dispatch.pending = it.id
		return
	}
	b.dispatch.pending = 0
	b.dispatch.triggerTarget = it.id
	b.dispatch.dragging = false
	it.addTrigger(b.inputType)
	m.send(EventTriggerStart, it, ir, nil, mgl64.Vec3{})
}

func (m *InteractionManager) dragEvents(ir Interactor) {
	b := ir.base()
	st := &b.dispatch
	it := m.interactableByID(st.triggerTarget)
	v, ok := b.CurrentDragVector()
	if it == nil || !ok {
		return
	}
	if !st.dragging {
		st.dragging = true
		m.send(EventDragStart, it, ir, nil, v)
		return
	}
	m.send(EventDragUpdate, it, ir, nil, v)
}

// endTrigger delivers a terminal trigger event (and DragEnd while dragging)
// to the interactor's trigger target. State is cleared before dispatch so
// callbacks may destroy either side.
func (m *InteractionManager) endTrigger(ir Interactor, terminal EventType, origin *Interactable) {
	b := ir.base()
	st := &b.dispatch
	it := m.interactableByID(st.triggerTarget)
	dragging := st.dragging
	st.triggerTarget = 0
	st.captured = 0
	st.dragging = false
	if it == nil {
		return
	}
	it.removeTrigger(b.inputType)
	m.send(terminal, it, ir, origin, mgl64.Vec3{})
	if dragging {
		m.send(EventDragEnd, it, ir, origin, mgl64.Vec3{})
	}
}

// CaptureTrigger reroutes ir's in-flight trigger to container, an ancestor
// of the current trigger target. The target receives TriggerCanceled (and
// DragEnd while dragging) up to but excluding container; the remaining
// updates, drags and the final end go to container. Capture releases when
// the trigger ends. It reports whether the capture happened.
func (m *InteractionManager) CaptureTrigger(ir Interactor, container *Interactable) bool {
	if ir == nil || container == nil || !container.registered {
		return false
	}
	b := ir.base()
	st := &b.dispatch
	target := m.interactableByID(st.triggerTarget)
	if target == nil || target == container || !target.node.IsDescendantOf(container.node) {
		return false
	}
	dragging := st.dragging
	target.removeTrigger(b.inputType)
	container.addTrigger(b.inputType)
	st.triggerTarget = container.id
	st.captured = container.id
	st.dragging = false
	m.send(EventTriggerCanceled, target, ir, container, mgl64.Vec3{})
	if dragging {
		m.send(EventDragEnd, target, ir, container, mgl64.Vec3{})
	}
	return true
}

// Captured returns the container holding ir's trigger, or nil.
func (m *InteractionManager) Captured(ir Interactor) *Interactable {
	if ir == nil {
		return nil
	}
	return m.interactableByID(ir.base().dispatch.captured)
}

// DispatchEvent propagates a custom event through req.Target's ancestors.
// It logs a warning and still dispatches when no interactor is given.
func (m *InteractionManager) DispatchEvent(req DispatchRequest) *Propagation {
	if req.Target == nil || !req.Target.registered {
		return &Propagation{}
	}
	if req.Interactor == nil {
		m.logger.Printf("warning: %s dispatched to %q with no interactor", req.Type, req.Target.Name())
	}
	return m.deliver(req)
}

func (m *InteractionManager) send(t EventType, target *Interactable, ir Interactor, origin *Interactable, drag mgl64.Vec3) {
	if target == nil {
		return
	}
	m.deliver(DispatchRequest{Type: t, Target: target, Interactor: ir, Origin: origin, DragVector: drag})
}

func (m *InteractionManager) deliver(req DispatchRequest) *Propagation {
	m.eventCount++
	// A destroyed target still mirrors the terminal events it is owed, and
	// nothing else.
	if req.Target.registered || terminalEvent(req.Type) {
		m.emitInteractionEvent(req)
	}
	return m.dispatcher.Dispatch(req)
}

func terminalEvent(t EventType) bool {
	switch t {
	case EventHoverExit, EventTriggerEnd, EventTriggerCanceled, EventDragEnd:
		return true
	}
	return false
}

// --- ECS bridge ---

func (m *InteractionManager) emitInteractionEvent(req DispatchRequest) {
	if m.store == nil || req.Target.node == nil || req.Target.node.EntityID == 0 {
		return
	}
	ev := InteractionEvent{
		Type:           req.Type,
		EntityID:       req.Target.node.EntityID,
		InteractableID: req.Target.id,
		DragVector:     req.DragVector,
		Frame:          m.frame,
	}
	if req.Interactor != nil {
		ev.InputType = req.Interactor.InputType()
		ev.Trigger = req.Interactor.CurrentTrigger()
		if hit, ok := req.Interactor.CurrentHit(); ok && hit.Interactable == req.Target {
			ev.Position = hit.Hit.Position
		}
	}
	m.store.EmitEvent(ev)
}

func nodeName(n *Node) string {
	if n == nil {
		return ""
	}
	return n.Name
}
