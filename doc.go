// Package reach is the targeting and event-propagation core for spatial
// (AR / hand-tracked) interaction.
//
// Every frame it decides which [Interactable] each [Interactor] (a tracked
// hand, a mouse ray, a touch ray) is aimed at or touching, and delivers a
// deterministic sequence of hover, trigger and drag events with DOM-like
// trickle-down / target / bubble-up propagation.
//
// # Quick start
//
// [App] bundles a [Scene] (node tree and spatial queries) with an
// [InteractionManager]. Call [App.Update] once per tick:
//
//	app := reach.MustApp(reach.DefaultConfig())
//	panel, _ := app.AddInteractable(nil, "panel",
//		reach.NewBoxCollider(mgl64.Vec3{}, mgl64.Vec3{10, 10, 0.1}))
//	button, _ := app.AddInteractable(panel.Node(), "button",
//		reach.NewBoxCollider(mgl64.Vec3{0, 0, 0.2}, mgl64.Vec3{2, 1, 0.1}))
//	button.OnTriggerEnd(func(e reach.InteractableEvent) { fmt.Println("pressed") })
//
//	mouse, _ := app.NewMouseInteractor(source)
//	for running {
//		app.Update()
//	}
//
// The reach/ebitenio package supplies an [ebiten.Game] that drives the App
// from ebiten's tick with mouse and touch sources.
//
// # Targeting
//
// Each interactor owns [TargetProvider] strategies. [RayTargetProvider] casts
// a ray and falls back to growing sphere casts; [DirectTargetProvider] probes
// between two fingertips with enter / exit hysteresis; [PokeTargetProvider]
// sweeps a fingertip and only accepts targets it is travelling into. Among
// several hits the nearest wins, except that a descendant interactable
// replaces its ancestor (a button beats the panel it sits on).
//
// A [HandInteractor] prefers poke, then direct, then ray, and never switches
// strategy while a pinch or poke is held.
//
// # Events
//
// The manager compares each interactor's previous and current state and
// emits HoverEnter / HoverUpdate / HoverExit, TriggerStart / TriggerUpdate /
// TriggerEnd / TriggerCanceled and DragStart / DragUpdate / DragEnd. Every
// TriggerStart is followed by exactly one TriggerEnd or TriggerCanceled, even
// when the interactor is lost or destroyed. Callbacks return a
// [CallbackHandle]; call Remove to unsubscribe.
//
// A container may take over a child's trigger with
// [InteractionManager.CaptureTrigger], the mechanism scroll views use to turn
// a drag into their own gesture.
//
// # Scripted input
//
// [ScriptedPointer] and [ScriptedHand] are sources fed from a per-frame
// queue, and [LoadScript] runs YAML scenarios against them.
//
// # ECS integration
//
// Events on nodes with an EntityID are mirrored to an [EntityStore]; the
// reach/ecs package publishes them into a [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package reach
