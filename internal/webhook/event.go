package webhook

import (
	"github.com/MoJuiceX/clawcombat-sub000/internal/core"
	"github.com/MoJuiceX/clawcombat-sub000/internal/events"
)

// dispatchRef is the single bus ref every DispatchEvent publishes against.
// The bus routes by exact ref pointer identity (see internal/events), so
// this package-level variable, not its string form, is what ties Publish
// and the Dispatcher's Subscribe call together.
var dispatchRef = mustRef("clawcombat", "webhook", "dispatch")

func mustRef(module, typ, value string) *core.Ref {
	ref, err := core.NewRef(core.RefInput{Module: module, Type: typ, Value: value})
	if err != nil {
		panic(err)
	}
	return ref
}

// Delivery is one outbound webhook call still to be attempted: the
// recipient agent's endpoint and secret, the event name for the
// X-ClawCombat-Event header, and the JSON payload body (§4.8, §6).
type Delivery struct {
	AgentID       string
	WebhookURL    string
	WebhookSecret string
	EventName     string
	Payload       map[string]any
}

// DispatchEvent carries a batch of deliveries produced by one coordinator
// or scheduler write onto the bus. Publishing it returns as soon as the
// Dispatcher's handler has enqueued the deliveries — before the first HTTP
// attempt — satisfying §4.8's "dispatch is decoupled from the caller".
type DispatchEvent struct {
	*events.BaseEvent
	Deliveries []Delivery
}

func newDispatchEvent(deliveries []Delivery) *DispatchEvent {
	return &DispatchEvent{BaseEvent: events.NewBaseEvent(dispatchRef), Deliveries: deliveries}
}

// Publish enqueues deliveries onto bus for asynchronous sending. A nil or
// empty bus/deliveries is a no-op, so callers that build a battle with no
// webhook-bearing agents need no special case.
func Publish(bus *events.Bus, deliveries []Delivery) error {
	if bus == nil || len(deliveries) == 0 {
		return nil
	}
	return bus.Publish(newDispatchEvent(deliveries))
}
