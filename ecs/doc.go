// Package ecs mirrors reach interaction events into an ECS world.
//
// A [Donburi] world receives one [reach.InteractionEvent] per target-phase
// hover, trigger or drag dispatch on an interactable whose node has a
// non-zero EntityID. Each record carries the entity, the interactor's input
// type and trigger, the world hit position and, for drags, the frame's drag
// vector. Events queue on [InteractionEventType] until the world's systems
// drain them:
//
//	app.Manager.SetEntityStore(ecs.NewDonburiStore(world))
//	ecs.InteractionEventType.Subscribe(world, onInteraction)
//	// each tick, after app.Update:
//	ecs.InteractionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
