package reach

import "github.com/go-gl/mathgl/mgl64"

// Interactor is one pointing mechanism. The family is closed:
// HandInteractor, MouseInteractor and MobileInteractor.
//
// State accessors reflect the last UpdateState and are read-only to
// consumers. Previous values are exactly the prior frame's current values.
type Interactor interface {
	Name() string
	InputType() InteractorInputType

	// IsActive reports whether the interactor can target this frame: enabled,
	// not overridden by device arbitration, registered, and tracked.
	IsActive() bool
	Enabled() bool
	SetEnabled(enabled bool)

	// UpdateState advances the interactor by one frame. Called by the
	// InteractionManager; widgets never call it.
	UpdateState()

	CurrentInteractable() *Interactable
	PreviousInteractable() *Interactable
	CurrentTrigger() InteractorTriggerType
	PreviousTrigger() InteractorTriggerType
	CurrentDragVector() (mgl64.Vec3, bool)
	PreviousDragVector() (mgl64.Vec3, bool)
	CurrentHit() (InteractableHitInfo, bool)

	// ActiveTargetingMode is the strategy that produced the current target.
	ActiveTargetingMode() TargetingMode
	StartPoint() mgl64.Vec3
	EndPoint() mgl64.Vec3
	Direction() mgl64.Vec3

	// Destroy deregisters the interactor, emitting terminal events for any
	// interaction in flight.
	Destroy()

	base() *interactorBase
	// poll reads the pose source once per frame, before arbitration.
	poll()
	// forget drops provider state that references it.
	forget(it *Interactable)
}

// dispatchState is owned by the InteractionManager: which interactables
// actually received this interactor's enter / start events.
type dispatchState struct {
	hovered       InteractableID // received HoverEnter, not yet HoverExit
	triggerTarget InteractableID // received TriggerStart, not yet End/Canceled
	pending       InteractableID // TriggerStart suppressed by exclusivity
	captured      InteractableID // trigger rerouted by CaptureTrigger
	dragging      bool
}

// interactorBase holds the state shared by every interactor variant.
type interactorBase struct {
	manager   *InteractionManager
	name      string
	inputType InteractorInputType

	enabled    bool
	overridden bool // disabled by device arbitration this frame
	registered bool

	current, previous               InteractableID
	currentTrigger, previousTrigger InteractorTriggerType
	dragVector, prevDragVector      mgl64.Vec3
	hasDrag, prevHasDrag            bool
	hit                             InteractableHitInfo
	hasHit                          bool

	drag   *DragVectorDetector
	active TargetProvider
	// dragDepth is the ray distance captured when a select begins, so ray
	// drags track a point at constant depth.
	dragDepth float64

	dispatch dispatchState
}

func newInteractorBase(m *InteractionManager, name string, t InteractorInputType, dragThreshold float64) interactorBase {
	return interactorBase{
		manager:   m,
		name:      name,
		inputType: t,
		enabled:   true,
		drag:      NewDragVectorDetector(dragThreshold),
	}
}

func (b *interactorBase) base() *interactorBase { return b }

// Name returns the interactor's name.
func (b *interactorBase) Name() string { return b.name }

// InputType returns the interactor's input type.
func (b *interactorBase) InputType() InteractorInputType { return b.inputType }

// Enabled reports whether input is enabled by the application.
func (b *interactorBase) Enabled() bool { return b.enabled }

// SetEnabled enables or disables the interactor. Disabling mid-trigger makes
// the manager cancel the trigger on the next update.
func (b *interactorBase) SetEnabled(enabled bool) { b.enabled = enabled }

func (b *interactorBase) inputEnabled() bool {
	return b.enabled && !b.overridden && b.registered
}

// CurrentInteractable returns this frame's target, or nil.
func (b *interactorBase) CurrentInteractable() *Interactable {
	return b.manager.interactableByID(b.current)
}

// PreviousInteractable returns last frame's target, or nil.
func (b *interactorBase) PreviousInteractable() *Interactable {
	return b.manager.interactableByID(b.previous)
}

// CurrentTrigger returns this frame's trigger.
func (b *interactorBase) CurrentTrigger() InteractorTriggerType { return b.currentTrigger }

// PreviousTrigger returns last frame's trigger.
func (b *interactorBase) PreviousTrigger() InteractorTriggerType { return b.previousTrigger }

// CurrentDragVector returns this frame's drag delta while dragging.
func (b *interactorBase) CurrentDragVector() (mgl64.Vec3, bool) { return b.dragVector, b.hasDrag }

// PreviousDragVector returns last frame's drag delta.
func (b *interactorBase) PreviousDragVector() (mgl64.Vec3, bool) {
	return b.prevDragVector, b.prevHasDrag
}

// CurrentHit returns the hit that produced the current target.
func (b *interactorBase) CurrentHit() (InteractableHitInfo, bool) {
	if !b.hasHit || !b.hit.Interactable.registered {
		return InteractableHitInfo{}, false
	}
	return b.hit, true
}

// ActiveTargetingMode returns the mode of the active provider, or
// TargetingNone when inactive.
func (b *interactorBase) ActiveTargetingMode() TargetingMode {
	if b.active == nil {
		return TargetingNone
	}
	return b.active.TargetingMode()
}

// StartPoint returns the active provider's start point.
func (b *interactorBase) StartPoint() mgl64.Vec3 {
	if b.active == nil {
		return mgl64.Vec3{}
	}
	return b.active.StartPoint()
}

// EndPoint returns the active provider's end point.
func (b *interactorBase) EndPoint() mgl64.Vec3 {
	if b.active == nil {
		return mgl64.Vec3{}
	}
	return b.active.EndPoint()
}

// Direction returns the active provider's direction.
func (b *interactorBase) Direction() mgl64.Vec3 {
	if b.active == nil {
		return mgl64.Vec3{}
	}
	return b.active.Direction()
}

// Destroy deregisters the interactor. Safe to call more than once.
func (b *interactorBase) Destroy() {
	if !b.registered {
		return
	}
	b.manager.deregisterInteractor(b)
}

// --- Per-frame helpers used by the variants ---

// beginFrame snapshots current into previous. Nothing else may touch the
// previous fields.
func (b *interactorBase) beginFrame() {
	b.previous = b.current
	b.previousTrigger = b.currentTrigger
	b.prevDragVector = b.dragVector
	b.prevHasDrag = b.hasDrag
}

// clearFrame drops all current state for an inactive frame.
func (b *interactorBase) clearFrame() {
	b.current = 0
	b.currentTrigger = TriggerNone
	b.hit = InteractableHitInfo{}
	b.hasHit = false
	b.dragVector = mgl64.Vec3{}
	b.hasDrag = false
	b.drag.Clear()
}

// applyHit copies the active provider's hit into the current state.
func (b *interactorBase) applyHit() {
	hit, ok := b.active.CurrentHit()
	if !ok || !hit.Interactable.targetable() {
		b.current = 0
		b.hit = InteractableHitInfo{}
		b.hasHit = false
		return
	}
	b.current = hit.Interactable.id
	b.hit = hit
	b.hasHit = true
}

// lockTriggerTarget keeps an in-flight trigger's target current while the
// select continues, even if the provider's hit drifted off it. CurrentHit
// reports false while the hit is elsewhere.
func (b *interactorBase) lockTriggerTarget() {
	if !b.currentTrigger.Selecting() || !b.previousTrigger.Selecting() {
		return
	}
	target := b.manager.interactableByID(b.dispatch.triggerTarget)
	if target == nil || !target.targetable() || b.current == target.id {
		return
	}
	b.current = target.id
	b.hit = InteractableHitInfo{}
	b.hasHit = false
}

// captureDragDepth records the ray depth at the frame a select begins.
func (b *interactorBase) captureDragDepth(maxDistance float64) {
	if b.currentTrigger.Selecting() && !b.previousTrigger.Selecting() {
		if b.hasHit {
			b.dragDepth = b.hit.Hit.Distance
		} else {
			b.dragDepth = maxDistance
		}
	}
}

// rayDragPoint is the point at the captured depth along the provider's ray.
func (b *interactorBase) rayDragPoint(p *RayTargetProvider) mgl64.Vec3 {
	return p.StartPoint().Add(p.Direction().Mul(b.dragDepth))
}

// updateDrag feeds the detector while selecting and clears it otherwise.
func (b *interactorBase) updateDrag(point mgl64.Vec3) {
	if !b.currentTrigger.Selecting() {
		b.drag.Clear()
		b.dragVector = mgl64.Vec3{}
		b.hasDrag = false
		return
	}
	instant := false
	if it := b.dragInteractable(); it != nil {
		instant = it.EnableInstantDrag
	}
	b.dragVector, b.hasDrag = b.drag.GetDragVector(point, instant)
}

// dragInteractable is the interactable the drag applies to: the trigger
// target when one exists, otherwise the current target.
func (b *interactorBase) dragInteractable() *Interactable {
	if it := b.manager.interactableByID(b.dispatch.triggerTarget); it != nil {
		return it
	}
	return b.CurrentInteractable()
}

// forgetID clears the interactor's handles to id.
func (b *interactorBase) forgetID(id InteractableID) {
	if b.current == id {
		b.current = 0
		b.hit = InteractableHitInfo{}
		b.hasHit = false
	}
	if b.previous == id {
		b.previous = 0
	}
}

// resetProvider clears p's hit if it points at it.
func resetProvider(p TargetProvider, it *Interactable) {
	if hit, ok := p.CurrentHit(); ok && hit.Interactable == it {
		p.Reset()
	}
}
