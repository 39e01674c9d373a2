// Package scheduler implements the timeout sweep (§4.7 C7): a periodic
// background loop that forfeits or auto-resolves battles whose waiting
// side(s) missed the turn deadline.
package scheduler

import (
	"context"
	"database/sql"
	"time"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/coordinator"
	"github.com/MoJuiceX/clawcombat-sub000/internal/dice"
	"github.com/MoJuiceX/clawcombat-sub000/internal/events"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

const (
	// tickPeriod is the loop's polling interval (§4.7: "tick period ≤ 10s").
	tickPeriod = 10 * time.Second
	// turnTimeout is the per-turn deadline (§4.7 TURN_TIMEOUT).
	turnTimeout = 30 * time.Second
)

// Logger is the small sink the scheduler warns through on per-battle
// failures that shouldn't stop the sweep. Mirrors webhook.Logger — each
// background-loop package owns its own minimal interface rather than
// sharing one, so none of them forces a dependency on the others.
type Logger interface {
	Warn(msg string, fields ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// Scheduler runs the §4.7 sweep on a fixed tick.
type Scheduler struct {
	db    *store.DB
	bus   *events.Bus
	now   func() int64
	roll  dice.Roller
	log   Logger
	coord *coordinator.Coordinator

	tickPeriod  time.Duration
	turnTimeout time.Duration
}

// New builds a Scheduler. coord supplies CommitResolvedTurn, the same
// persistence + webhook-payload path SubmitMove uses, so a resolved tick
// and a resolved submitMove are indistinguishable to a subscriber.
func New(db *store.DB, bus *events.Bus, coord *coordinator.Coordinator, now func() int64, log Logger) *Scheduler {
	if log == nil {
		log = noopLogger{}
	}
	return &Scheduler{
		db:          db,
		bus:         bus,
		now:         now,
		roll:        dice.NewRoller(),
		log:         log,
		coord:       coord,
		tickPeriod:  tickPeriod,
		turnTimeout: turnTimeout,
	}
}

// WithRoller overrides the dice roller, for deterministic tests.
func (s *Scheduler) WithRoller(r dice.Roller) *Scheduler {
	s.roll = r
	return s
}

// WithIntervals overrides the tick period and turn timeout, for tests that
// can't wait 10s/30s for real.
func (s *Scheduler) WithIntervals(tick, timeout time.Duration) *Scheduler {
	s.tickPeriod = tick
	s.turnTimeout = timeout
	return s
}

// Run blocks, ticking until ctx is cancelled. cmd/clawcombat-server runs
// it as one goroutine of an errgroup.Group alongside the HTTP server.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Warn("scheduler tick failed", "error", err)
			}
		}
	}
}

// Tick runs one sweep of §4.7's algorithm: select stale waiting battles,
// then resolve each in its own write transaction so one battle's failure
// never blocks the rest of the sweep.
func (s *Scheduler) Tick(ctx context.Context) error {
	cutoff := s.now() - int64(s.turnTimeout/time.Second)
	stale, err := store.ListStaleWaitingBattles(ctx, s.db, cutoff)
	if err != nil {
		return err
	}

	for _, b := range stale {
		if err := s.resolveStale(ctx, b.ID); err != nil {
			s.log.Warn("scheduler failed to resolve stale battle", "battleId", b.ID, "error", err)
		}
	}
	return nil
}

// resolveStale implements §4.7 step 2 for one battle: increment/reset
// per-side timeout counters, forfeit on the consecutive-timeout threshold,
// else resolve the timeout tick and commit through the same path
// SubmitMove uses.
func (s *Scheduler) resolveStale(ctx context.Context, battleID string) error {
	var deliveries []webhook.Delivery

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		b, err := store.GetBattle(ctx, tx, battleID)
		if err != nil {
			return err
		}
		// Another tick (or a last-second submitMove) may have already
		// resolved this battle between the select and this transaction.
		if b.Status != store.BattleActive || b.Phase != store.PhaseWaiting {
			return nil
		}

		aSkipped := b.PendingMoveA == nil
		bSkipped := b.PendingMoveB == nil
		if aSkipped {
			b.TimeoutsA++
		} else {
			b.TimeoutsA = 0
		}
		if bSkipped {
			b.TimeoutsB++
		} else {
			b.TimeoutsB = 0
		}

		max := battle.MaxConsecutiveTimeouts()
		if b.TimeoutsA >= max || b.TimeoutsB >= max {
			// If both sides hit the threshold on the same tick, A's
			// timeout is checked first and forfeits the battle to B.
			winner := battle.SideB
			if b.TimeoutsA < max {
				winner = battle.SideA
			}
			agentA, err := store.GetAgentByID(ctx, tx, b.AgentAID)
			if err != nil {
				return err
			}
			agentB, err := store.GetAgentByID(ctx, tx, b.AgentBID)
			if err != nil {
				return err
			}
			deliveries, err = s.coord.ForfeitTimeout(ctx, tx, b, agentA, agentB, winner)
			return err
		}

		state, err := battle.Unmarshal(b.StateBlob)
		if err != nil {
			return err
		}

		var present *battle.Side
		var moveID catalog.MoveID
		switch {
		case aSkipped && bSkipped:
			// Both skipped: present stays nil, ResolveTimeoutTick applies
			// only end-of-turn status damage (§4.7 step 2(a)).
		case aSkipped:
			side := battle.SideB
			present = &side
			moveID = catalog.MoveID(*b.PendingMoveB)
		default:
			side := battle.SideA
			present = &side
			moveID = catalog.MoveID(*b.PendingMoveA)
		}

		turnLog, err := battle.ResolveTimeoutTick(ctx, s.roll, state, present, moveID)
		if err != nil {
			return err
		}

		agentA, err := store.GetAgentByID(ctx, tx, b.AgentAID)
		if err != nil {
			return err
		}
		agentB, err := store.GetAgentByID(ctx, tx, b.AgentBID)
		if err != nil {
			return err
		}

		deliveries, err = s.coord.CommitResolvedTurn(ctx, tx, b, state, turnLog, agentA, agentB)
		return err
	})
	if err != nil {
		return err
	}

	return webhook.Publish(s.bus, deliveries)
}
