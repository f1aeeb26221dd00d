// Package ecs provides ECS adapters for trellis's interaction event system.
//
// The primary adapter is [NewDonburiSink], which bridges trellis interaction
// events (pointer, click, wheel, key, focus) into a [Donburi] world as typed
// events. Subscribe to [InteractionEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	display.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
