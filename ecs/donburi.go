package ecs

import (
	"github.com/phanxgames/sakura"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for sakura scene events.
var SceneEventType = events.NewEventType[sakura.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) sakura.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event sakura.Event) {
	SceneEventType.Publish(s.world, event)
}
