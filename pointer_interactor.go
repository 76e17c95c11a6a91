package reach

// PointerFrame is one frame of screen-space pointer input.
type PointerFrame struct {
	// Active is false when no pointer is present (no touch, mouse outside
	// the window).
	Active  bool
	X, Y    float64
	Pressed bool
}

// PointerSource delivers screen-space pointer input for a mouse or touch.
type PointerSource interface {
	PointerFrame() PointerFrame
}

// pointerInteractor is the shared core of the mouse and mobile interactors:
// a camera ray through the pointer position, triggered while pressed.
type pointerInteractor struct {
	interactorBase

	source PointerSource
	camera *Camera
	frame  PointerFrame

	ray *RayTargetProvider
}

func newPointerInteractor(m *InteractionManager, name string, t InteractorInputType, threshold float64, source PointerSource, camera *Camera) (pointerInteractor, error) {
	if source == nil {
		return pointerInteractor{}, ErrNilSource
	}
	if camera == nil {
		return pointerInteractor{}, configError("camera", "must not be nil")
	}
	ray, err := newMouseTargetProvider(m.physics, m, m.cfg.Ray)
	if err != nil {
		return pointerInteractor{}, err
	}
	return pointerInteractor{
		interactorBase: newInteractorBase(m, name, t, threshold),
		source:         source,
		camera:         camera,
		ray:            ray,
	}, nil
}

// Camera returns the camera used to build pointer rays.
func (p *pointerInteractor) Camera() *Camera { return p.camera }

// SetCamera replaces the camera used to build pointer rays.
func (p *pointerInteractor) SetCamera(c *Camera) {
	if c != nil {
		p.camera = c
	}
}

// RayProvider returns the pointer's ray provider.
func (p *pointerInteractor) RayProvider() *RayTargetProvider { return p.ray }

// Frame returns the pointer input read this frame.
func (p *pointerInteractor) Frame() PointerFrame { return p.frame }

// IsActive implements Interactor.
func (p *pointerInteractor) IsActive() bool {
	return p.inputEnabled() && p.frame.Active
}

func (p *pointerInteractor) poll() {
	p.frame = p.source.PointerFrame()
}

func (p *pointerInteractor) forget(it *Interactable) {
	resetProvider(p.ray, it)
}

// UpdateState implements Interactor.
func (p *pointerInteractor) UpdateState() {
	p.beginFrame()
	if !p.IsActive() {
		p.clearFrame()
		p.active = nil
		p.ray.Reset()
		return
	}
	origin, dir := p.camera.ScreenToRay(p.frame.X, p.frame.Y)
	p.ray.SetRay(origin, dir)
	p.ray.Update()
	p.active = p.ray
	p.applyHit()

	if p.frame.Pressed {
		p.currentTrigger = TriggerPinch
	} else {
		p.currentTrigger = TriggerNone
	}
	p.lockTriggerTarget()
	p.captureDragDepth(p.ray.MaxDistance())
	p.updateDrag(p.rayDragPoint(p.ray))
}

// ScreenPosition returns the pointer position read this frame.
func (p *pointerInteractor) ScreenPosition() (x, y float64) {
	return p.frame.X, p.frame.Y
}

// MouseInteractor targets through a camera ray under the mouse cursor. Since
// there is only one pointer it may target every targeting mode.
type MouseInteractor struct {
	pointerInteractor
}

// NewMouseInteractor creates a mouse interactor and registers it with m.
func NewMouseInteractor(m *InteractionManager, source PointerSource, camera *Camera) (*MouseInteractor, error) {
	core, err := newPointerInteractor(m, "mouse", InputMouse, m.cfg.Drag.MouseThreshold, source, camera)
	if err != nil {
		return nil, err
	}
	mi := &MouseInteractor{pointerInteractor: core}
	m.registerInteractor(mi)
	return mi, nil
}

// MobileInteractor targets through a camera ray under a touch point. While
// any mobile interactor is active, hand and mouse interactors are disabled.
type MobileInteractor struct {
	pointerInteractor
}

// NewMobileInteractor creates a touch interactor and registers it with m.
func NewMobileInteractor(m *InteractionManager, source PointerSource, camera *Camera) (*MobileInteractor, error) {
	core, err := newPointerInteractor(m, "mobile", InputMobile, m.cfg.Drag.MobileThreshold, source, camera)
	if err != nil {
		return nil, err
	}
	mi := &MobileInteractor{pointerInteractor: core}
	m.registerInteractor(mi)
	return mi, nil
}
