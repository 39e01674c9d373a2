package coordinator

import (
	"context"
	"database/sql"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

// ForfeitTimeout implements the forfeit branch of §4.7 step 2: a side has
// reached MAX_CONSECUTIVE_TIMEOUTS, so the battle ends immediately with the
// opposite side as winner. Exported so internal/scheduler can apply
// results and build deliveries through the same path submitMove and
// surrender use, rather than duplicating that logic.
func (c *Coordinator) ForfeitTimeout(ctx context.Context, tx *sql.Tx, b *store.Battle, agentA, agentB *store.Agent, winner battle.Side) ([]webhook.Delivery, error) {
	winnerID := agentA.ID
	if winner == battle.SideB {
		winnerID = agentB.ID
	}

	now := c.now()
	b.Status = store.BattleFinished
	b.Phase = store.PhaseFinished
	b.WinnerID = &winnerID
	b.EndedAt = &now
	b.PendingMoveA = nil
	b.PendingMoveB = nil
	if err := store.UpdateBattle(ctx, tx, b); err != nil {
		return nil, err
	}

	result, err := c.applyBattleResults(ctx, tx, b, agentA, agentB, winner)
	if err != nil {
		return nil, err
	}

	state, err := battle.Unmarshal(b.StateBlob)
	if err != nil {
		return nil, err
	}
	return c.battleEndDeliveries(ctx, tx, b, state, nil, agentA, agentB, winner, result, "timeout_forfeit"), nil
}
