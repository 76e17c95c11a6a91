package reach

import "github.com/go-gl/mathgl/mgl64"

// HandFrame is one frame of tracked hand pose, already filtered upstream.
type HandFrame struct {
	Tracked bool

	ThumbTip mgl64.Vec3
	IndexTip mgl64.Vec3
	IndexMid mgl64.Vec3
	// PinchStrength is 0 (open) to 1 (fully pinched).
	PinchStrength float64

	// RayOrigin and RayDirection are the targeting ray computed by the
	// ray-origin estimator.
	RayOrigin    mgl64.Vec3
	RayDirection mgl64.Vec3
}

// HandSource delivers tracked poses for one hand.
type HandSource interface {
	HandFrame() HandFrame
}

// HandInteractor combines poke, direct and ray targeting for one tracked hand.
type HandInteractor struct {
	interactorBase

	source HandSource
	frame  HandFrame

	pinch   PinchConfig
	pinched bool

	// modes limits which providers may be used.
	modes TargetingMode

	ray    *RayTargetProvider
	direct *DirectTargetProvider
	poke   *PokeTargetProvider
}

// NewHandInteractor creates a hand interactor and registers it with m.
// handedness must be InputLeftHand or InputRightHand.
func NewHandInteractor(m *InteractionManager, handedness InteractorInputType, source HandSource) (*HandInteractor, error) {
	if handedness != InputLeftHand && handedness != InputRightHand {
		return nil, configError("handedness", "must be left-hand or right-hand")
	}
	if source == nil {
		return nil, ErrNilSource
	}
	cfg := m.cfg
	ray, err := NewRayTargetProvider(m.physics, m, cfg.Ray)
	if err != nil {
		return nil, err
	}
	direct, err := NewDirectTargetProvider(m.physics, m, cfg.Direct)
	if err != nil {
		return nil, err
	}
	poke, err := NewPokeTargetProvider(m.physics, m, cfg.Poke)
	if err != nil {
		return nil, err
	}
	if err := cfg.Pinch.Validate(); err != nil {
		return nil, err
	}
	h := &HandInteractor{
		interactorBase: newInteractorBase(m, handedness.String(), handedness, cfg.Drag.HandThreshold),
		source:         source,
		pinch:          cfg.Pinch,
		modes:          TargetingAll,
		ray:            ray,
		direct:         direct,
		poke:           poke,
	}
	m.registerInteractor(h)
	return h, nil
}

// Handedness returns InputLeftHand or InputRightHand.
func (h *HandInteractor) Handedness() InteractorInputType { return h.inputType }

// TargetingModes returns the strategies the hand may use.
func (h *HandInteractor) TargetingModes() TargetingMode { return h.modes }

// SetTargetingModes limits the strategies the hand may use. An in-flight
// select keeps its provider until it is released.
func (h *HandInteractor) SetTargetingModes(modes TargetingMode) {
	h.modes = modes
}

// RayProvider returns the indirect provider.
func (h *HandInteractor) RayProvider() *RayTargetProvider { return h.ray }

// DirectProvider returns the proximity provider.
func (h *HandInteractor) DirectProvider() *DirectTargetProvider { return h.direct }

// PokeProvider returns the fingertip provider.
func (h *HandInteractor) PokeProvider() *PokeTargetProvider { return h.poke }

// Frame returns the pose read this frame.
func (h *HandInteractor) Frame() HandFrame { return h.frame }

// IsActive implements Interactor.
func (h *HandInteractor) IsActive() bool {
	return h.inputEnabled() && h.frame.Tracked
}

func (h *HandInteractor) poll() {
	h.frame = h.source.HandFrame()
}

func (h *HandInteractor) forget(it *Interactable) {
	resetProvider(h.ray, it)
	resetProvider(h.direct, it)
	resetProvider(h.poke, it)
}

// UpdateState implements Interactor.
func (h *HandInteractor) UpdateState() {
	h.beginFrame()

	if !h.IsActive() {
		h.clearFrame()
		h.pinched = false
		h.active = nil
		h.ray.Reset()
		h.direct.Reset()
		h.poke.Reset()
		return
	}

	f := h.frame
	h.ray.SetRay(f.RayOrigin, f.RayDirection)
	h.direct.SetPoints(f.ThumbTip, f.IndexTip)
	h.poke.SetJoints(f.IndexMid, f.IndexTip)

	if h.previousTrigger.Selecting() && h.active != nil {
		// Frozen mid-select so a drag cannot jump strategies.
		h.active.Update()
		if h.active != TargetProvider(h.poke) && h.modes.Allows(TargetingPoke) {
			h.poke.track()
		}
	} else {
		h.active = h.arbitrate()
	}

	if h.active == nil {
		h.clearFrame()
		h.pinched = false
		return
	}
	h.applyHit()
	h.currentTrigger = h.resolveTrigger(f.PinchStrength)
	h.lockTriggerTarget()
	h.captureDragDepth(h.ray.MaxDistance())
	h.updateDrag(h.dragPoint())
}

// arbitrate updates every allowed provider and returns the one to use:
// poke, then direct, when they have a target, with the ray as fallback.
func (h *HandInteractor) arbitrate() TargetProvider {
	var fallback TargetProvider
	if h.modes.Allows(TargetingPoke) {
		h.poke.Update()
		if h.poke.HasTarget() {
			return h.poke
		}
	} else {
		h.poke.Reset()
	}
	if h.modes.Allows(TargetingDirect) {
		h.direct.Update()
		if h.direct.HasTarget() {
			return h.direct
		}
		fallback = h.direct
	} else {
		h.direct.Reset()
	}
	if h.modes.Allows(TargetingIndirect) {
		h.ray.Update()
		return h.ray
	}
	h.ray.Reset()
	if fallback == nil && h.modes.Allows(TargetingPoke) {
		fallback = h.poke
	}
	return fallback
}

// resolveTrigger returns Poke while the poke provider is engaged, otherwise
// Pinch with press / release hysteresis on the pinch strength.
func (h *HandInteractor) resolveTrigger(strength float64) InteractorTriggerType {
	if h.active == TargetProvider(h.poke) {
		h.pinched = false
		if h.poke.HasTarget() {
			return TriggerPoke
		}
		return TriggerNone
	}
	if h.pinched {
		h.pinched = strength >= h.pinch.Release
	} else {
		h.pinched = strength >= h.pinch.Press
	}
	if h.pinched {
		return TriggerPinch
	}
	return TriggerNone
}

func (h *HandInteractor) dragPoint() mgl64.Vec3 {
	switch h.active {
	case TargetProvider(h.poke):
		return h.frame.IndexTip
	case TargetProvider(h.direct):
		return h.direct.Center()
	default:
		return h.rayDragPoint(h.ray)
	}
}
