package ecs

import (
	"github.com/phanxgames/trellis"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for trellis interaction
// events. Subscribe to this in your ECS systems to receive pointer, key and
// focus events.
var InteractionEventType = events.NewEventType[trellis.InteractionEvent]()

type donburiSink struct {
	world  donburi.World
	filter func(trellis.InteractionEvent) bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) trellis.EventSink {
	return &donburiSink{world: world}
}

// NewFilteredDonburiSink is NewDonburiSink restricted to the events for
// which keep returns true. Pointer moves are frequent; most systems only
// care about clicks and keys.
func NewFilteredDonburiSink(world donburi.World, keep func(trellis.InteractionEvent) bool) trellis.EventSink {
	return &donburiSink{world: world, filter: keep}
}

func (s *donburiSink) EmitEvent(event trellis.InteractionEvent) {
	if s.filter != nil && !s.filter(event) {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
