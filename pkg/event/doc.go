// Package event provides minimal named callback lists for engine
// lifecycle notifications.
//
// An Event invokes its callbacks synchronously, in registration order, on
// each Emit. There is no isolation between callbacks and no concurrency:
// events exist so hosts can react to register creation, blueprint reloads
// and interruptions, not as a general pub/sub bus.
package event
