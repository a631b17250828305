// Package ecs bridges sakura scene lifecycle events into ECS worlds.
//
// The primary adapter is [NewDonburiSink], which publishes every
// [sakura.Event] (start, generated, bloomed, reset) into a [Donburi] world as
// a typed event. Subscribe to [SceneEventType] in your ECS systems to react
// to the tree blooming or the viewport resetting.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
