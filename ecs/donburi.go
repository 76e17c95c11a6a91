package ecs

import (
	"github.com/phanxgames/reach"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType queues reach hover, trigger and drag records for a
// world. A forced cancellation arrives as TriggerCanceled followed by
// DragEnd and HoverExit, in that order.
var InteractionEventType = events.NewEventType[reach.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore returns a reach.EntityStore that publishes into world.
func NewDonburiStore(world donburi.World) reach.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(e reach.InteractionEvent) {
	InteractionEventType.Publish(s.world, e)
}
