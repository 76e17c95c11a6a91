package reach

import "log"

// App is the application-level context: it owns the scene, the interaction
// manager and an optional script runner, and drives them from one tick.
type App struct {
	Scene   *Scene
	Manager *InteractionManager

	runner *ScriptRunner
	closed bool
}

// NewApp creates a scene and an interaction manager querying it. The scene
// starts with a camera covering a 640x480 viewport.
func NewApp(cfg Config) (*App, error) {
	scene := NewScene()
	scene.SetCamera(NewCamera(Rect{Width: 640, Height: 480}))
	m, err := NewInteractionManager(scene, cfg)
	if err != nil {
		return nil, err
	}
	return &App{Scene: scene, Manager: m}, nil
}

// Logger returns the logger shared by the app and its manager.
func (a *App) Logger() *log.Logger { return a.Manager.Logger() }

// SetScriptRunner attaches a ScriptRunner. Its step runs at the start of
// every Update, before the manager reads the pose sources.
func (a *App) SetScriptRunner(r *ScriptRunner) {
	a.runner = r
}

// ScriptRunner returns the attached runner, or nil.
func (a *App) ScriptRunner() *ScriptRunner { return a.runner }

// Update advances one frame. Call it once per tick.
func (a *App) Update() {
	if a.closed {
		return
	}
	if a.runner != nil {
		a.runner.step(a.Manager.Logger())
	}
	a.Manager.Update()
}

// Close tears the manager down, delivering terminal events to every
// engaged interactable. Safe to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.Manager.Close()
}

// AddInteractable creates a node named name under parent (the scene root
// when nil) and attaches an interactable to it.
func (a *App) AddInteractable(parent *Node, name string, colliders ...*Collider) (*Interactable, error) {
	if parent == nil {
		parent = a.Scene.Root()
	}
	n := NewNode(name)
	for _, c := range colliders {
		n.AddCollider(c)
	}
	parent.AddChild(n)
	it, err := NewInteractable(a.Manager, n)
	if err != nil {
		n.RemoveFromParent()
		return nil, err
	}
	return it, nil
}

// NewMouseInteractor creates a mouse interactor using the scene camera.
func (a *App) NewMouseInteractor(source PointerSource) (*MouseInteractor, error) {
	return NewMouseInteractor(a.Manager, source, a.Scene.Camera())
}

// NewMobileInteractor creates a touch interactor using the scene camera.
func (a *App) NewMobileInteractor(source PointerSource) (*MobileInteractor, error) {
	return NewMobileInteractor(a.Manager, source, a.Scene.Camera())
}

// NewHandInteractor creates a hand interactor.
func (a *App) NewHandInteractor(handedness InteractorInputType, source HandSource) (*HandInteractor, error) {
	return NewHandInteractor(a.Manager, handedness, source)
}

// NewScriptedMouse creates a scripted pointer driving a mouse interactor and
// binds it as name on the attached script runner, if any.
func (a *App) NewScriptedMouse(name string) (*ScriptedPointer, *MouseInteractor, error) {
	p := NewScriptedPointer()
	mi, err := a.NewMouseInteractor(p)
	if err != nil {
		return nil, nil, err
	}
	if a.runner != nil {
		a.runner.BindPointer(name, p)
	}
	return p, mi, nil
}

// MustApp is like NewApp but panics on error. Intended for static setups.
func MustApp(cfg Config) *App {
	a, err := NewApp(cfg)
	if err != nil {
		panic("reach: " + err.Error())
	}
	return a
}
