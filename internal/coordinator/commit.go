package coordinator

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

// CommitResolvedTurn persists the outcome of a just-resolved turn (from
// either SubmitMove or the scheduler's timeout tick), clears the pending
// moves, and — only on the transition into a terminal status — applies
// battle results and issues social tokens (§4.6 step 6). It returns the
// webhook deliveries the caller should publish once its transaction
// commits.
func (c *Coordinator) CommitResolvedTurn(ctx context.Context, tx *sql.Tx, b *store.Battle, state *battle.State, turnLog *battle.TurnLog, agentA, agentB *store.Agent) ([]webhook.Delivery, error) {
	blob, err := battle.Marshal(state)
	if err != nil {
		return nil, err
	}

	now := c.now()
	b.StateBlob = blob
	b.TurnNumber = state.TurnNumber
	b.PendingMoveA = nil
	b.PendingMoveB = nil
	b.LastTurnAt = &now

	winner, ended := battleWinner(turnLog)

	eventsJSON, err := json.Marshal(turnLog.Events)
	if err != nil {
		return nil, err
	}
	if err := store.AppendTurnLog(ctx, tx, &store.BattleTurn{
		BattleID:   b.ID,
		TurnNumber: turnLog.TurnNumber,
		MoveA:      turnLog.MoveA,
		MoveB:      turnLog.MoveB,
		EventsJSON: string(eventsJSON),
		HPAfterA:   turnLog.HPAfterA,
		HPAfterB:   turnLog.HPAfterB,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}

	var deliveries []webhook.Delivery
	if ended {
		winnerID := agentA.ID
		if winner == battle.SideB {
			winnerID = agentB.ID
		}
		b.Status = store.BattleFinished
		b.Phase = store.PhaseFinished
		b.WinnerID = &winnerID
		b.EndedAt = &now

		if err := store.UpdateBattle(ctx, tx, b); err != nil {
			return nil, err
		}
		result, err := c.applyBattleResults(ctx, tx, b, agentA, agentB, winner)
		if err != nil {
			return nil, err
		}
		deliveries = c.battleEndDeliveries(ctx, tx, b, state, turnLog, agentA, agentB, winner, result, "")
		return deliveries, nil
	}

	if err := store.UpdateBattle(ctx, tx, b); err != nil {
		return nil, err
	}
	return c.battleTurnDeliveries(b, state, turnLog, agentA, agentB), nil
}

// battleWinner scans a turn log's events for the terminal battle_end
// marker ResolveTurn/ResolveTimeoutTick emit (§4.3 step 4/6).
func battleWinner(turnLog *battle.TurnLog) (battle.Side, bool) {
	for _, e := range turnLog.Events {
		if e.Kind == battle.EventBattleEnd {
			return e.Winner, true
		}
	}
	return "", false
}
