// Package events provides the in-process event bus battles, the
// coordinator, the scheduler, and the webhook dispatcher use to observe
// each other without importing each other.
//
// Purpose:
// The coordinator and scheduler need to announce that a battle advanced
// or timed out without knowing who, if anyone, is listening. They publish
// a webhook.DispatchEvent onto the bus; internal/webhook subscribes and
// turns it into outbound HTTP deliveries. The coordinator tests observe a
// turn's output through a Dispatcher subscribed to the bus and httptest
// endpoints.
//
// Scope:
//   - Bus: a synchronous pub/sub bus routing by *core.Ref pointer identity
//   - Event interface and BaseEvent, the embeddable base a domain event
//     (webhook.DispatchEvent is the only one so far) builds on
//   - EventContext, a typed key/value bag attached to each event for
//     passing data (damage dealt and its type) to handlers without
//     widening the Event interface
//   - Cascade-depth protection: PublishWithContext refuses to recurse past
//     DefaultMaxDepth, so a handler that republishes can't loop forever
//
// Non-Goals:
//   - Event persistence: internal/store is the durable record; the bus is
//     transient, in-memory fan-out only
//   - Network transport: internal/webhook is what carries an event outside
//     the process
//   - Event ordering across subscribers, replay, or retry: a failed
//     handler returns an error and stops that publish, nothing more
//
// Integration:
//   - internal/coordinator and internal/scheduler both hold a *Bus and
//     publish turn-resolution and timeout events
//   - internal/webhook.Dispatcher subscribes to the bus and turns events
//     into signed HTTP deliveries
//   - cmd/clawcombat-server wires one bus into the coordinator, the
//     dispatcher, the scheduler and internal/httpapi at startup
package events
