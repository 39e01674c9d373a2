// Package coordinator implements the public battle actions (§4.6 C6):
// submitting a move, surrendering, and challenging another agent. Each
// action is one store transaction; terminal transitions additionally
// apply ELO/XP results and enqueue webhook notifications.
package coordinator

import (
	"github.com/MoJuiceX/clawcombat-sub000/internal/dice"
	"github.com/MoJuiceX/clawcombat-sub000/internal/events"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
)

// Rating tuning (§9 Open Question: XP/ELO formulas are left to the
// implementation). eloKFactor is the standard chess-style K-factor. XP
// scales a flat per-battle award by how much stronger the opponent was:
// beating a higher-level opponent is worth more, beating a much weaker one
// less, clamped so a fight is never worth nothing.
const (
	eloKFactor        = 32.0
	baseXPWinner      = 50
	baseXPLoser       = 20
	xpPerLevelDiff    = 0.1
	xpMultiplierFloor = 0.5
	xpMultiplierCeil  = 2.0

	socialTokenTTLSeconds = 24 * 60 * 60 // 24h
)

// Coordinator wires the store, a production dice roller, and the webhook
// bus together to implement submitMove/surrender/challenge/accept.
type Coordinator struct {
	db   *store.DB
	bus  *events.Bus
	now  func() int64
	roll dice.Roller
}

// New builds a Coordinator. now supplies the current Unix timestamp (real
// time in production, a fixed clock in tests); bus may be nil, in which
// case webhook events are silently dropped (useful in tests that don't
// care about delivery).
func New(db *store.DB, bus *events.Bus, now func() int64) *Coordinator {
	return &Coordinator{db: db, bus: bus, now: now, roll: dice.NewRoller()}
}

// WithRoller overrides the dice roller, for deterministic tests.
func (c *Coordinator) WithRoller(r dice.Roller) *Coordinator {
	c.roll = r
	return c
}
