// Package matchmaker maintains the queue and pairs queued agents into new
// battles (§4.5 C5): atomic join/leave, and a widening-ELO-window greedy
// pairing scan that runs inside a single write transaction so no two
// concurrent callers can pair the same agent twice.
package matchmaker

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
)

// eloWindows are the widening bands a pairing scan tries in order before
// giving up for this call (§4.5). A negative width means unbounded (∞).
var eloWindows = []int{100, 200, 350, 500, -1}

// Join enqueues an agent, failing if it is already in a non-terminal
// battle (§4.5 joinQueue). Joining twice is a no-op (§8 property 2).
func Join(ctx context.Context, db *store.DB, agentID string, joinedAt int64) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		busy, err := store.IsAgentInNonTerminalBattle(ctx, tx, agentID)
		if err != nil {
			return err
		}
		if busy {
			return clawerr.Conflict("agent already has an active or pending battle")
		}
		return store.JoinQueue(ctx, tx, agentID, joinedAt)
	})
}

// Leave removes an agent's queue entry, if present (§4.5 leaveQueue).
func Leave(ctx context.Context, db *store.DB, agentID string) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		return store.LeaveQueue(ctx, tx, agentID)
	})
}

// Match runs one pairing attempt (§4.5 match()): in a single write
// transaction, it scans the queue ordered by join time across widening ELO
// windows and greedily pairs the first agent it finds within each window to
// the earliest still-unmatched agent whose rating falls inside it, stopping
// at the first successful pair. It returns the newly created battle, or nil
// if no pair could be formed in any window.
func Match(ctx context.Context, db *store.DB, now int64) (*store.Battle, error) {
	var created *store.Battle
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		queue, err := store.ListQueue(ctx, tx)
		if err != nil {
			return err
		}
		if len(queue) < 2 {
			return nil
		}

		a, b := findPair(queue)
		if a == nil {
			return nil
		}

		agentA, err := store.GetAgentByID(ctx, tx, a.AgentID)
		if err != nil {
			return err
		}
		agentB, err := store.GetAgentByID(ctx, tx, b.AgentID)
		if err != nil {
			return err
		}

		state, err := battle.NewBattleState(sideInit(agentA), sideInit(agentB))
		if err != nil {
			return err
		}
		blob, err := battle.Marshal(state)
		if err != nil {
			return err
		}

		if err := store.DeleteQueueEntries(ctx, tx, a.AgentID, b.AgentID); err != nil {
			return err
		}

		displayNumber, err := store.NextDisplayNumber(ctx, tx)
		if err != nil {
			return err
		}

		newBattle := &store.Battle{
			ID:            uuid.NewString(),
			DisplayNumber: displayNumber,
			AgentAID:      agentA.ID,
			AgentBID:      agentB.ID,
			Status:        store.BattleActive,
			Phase:         store.PhaseWaiting,
			TurnNumber:    0,
			StateBlob:     blob,
			TimeoutsA:     0,
			TimeoutsB:     0,
			CreatedAt:     now,
			StartedAt:     &now,
			LastTurnAt:    &now,
		}
		if err := store.InsertBattle(ctx, tx, newBattle); err != nil {
			return err
		}
		created = newBattle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// findPair scans queue, already ordered by joinedAt, across the widening
// ELO windows and returns the first pair found, or (nil, nil) if none of
// the windows produce a match.
func findPair(queue []*store.QueueEntry) (*store.QueueEntry, *store.QueueEntry) {
	for _, window := range eloWindows {
		for i, candidate := range queue {
			for j := i + 1; j < len(queue); j++ {
				other := queue[j]
				if window >= 0 && absInt(candidate.ELO-other.ELO) > window {
					continue
				}
				return candidate, other
			}
		}
	}
	return nil, nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// sideInit derives a battle.SideInit from a persisted agent row.
func sideInit(a *store.Agent) battle.SideInit {
	return battle.SideInit{
		AgentID: a.ID,
		BaseStats: battle.Stats{
			HP:      a.BaseStats[0],
			Attack:  a.BaseStats[1],
			Defense: a.BaseStats[2],
			SpAtk:   a.BaseStats[3],
			SpDef:   a.BaseStats[4],
			Speed:   a.BaseStats[5],
		},
		Level:     a.Level,
		Nature:    a.Nature,
		Type:      a.Type,
		AbilityID: a.AbilityID,
		Moves:     a.Moves[:],
	}
}
